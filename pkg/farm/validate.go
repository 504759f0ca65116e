package farm

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validation errors. The calculation functions do not check their inputs;
// callers reading plants and farms from outside use these at the boundary.
var (
	ErrNegativeYield    = errors.New("yield must not be negative")
	ErrNegativeQuantity = errors.New("number of crops must not be negative")
	ErrNotFinite        = errors.New("value must be finite")
	ErrMissingCost      = errors.New("plant has no cost")
	ErrMissingSalePrice = errors.New("plant has no sale price")
	ErrMissingFactor    = errors.New("plant has no factor profile for dimension")
	ErrUnknownLevel     = errors.New("unknown environment level")
	ErrUnknownDimension = errors.New("unknown environment dimension")
)

// ParseLevel converts s (case-insensitive) to a Level. The empty string
// yields LevelNone.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l == LevelNone || l.Valid() {
		return l, nil
	}
	return LevelNone, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ParseDimension converts s (case-insensitive) to a known Dimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lookupDimension(d); ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Validate checks the plant's numeric fields.
func (p Plant) Validate() error {
	if err := finite("yield", p.Yield); err != nil {
		return fmt.Errorf("plant %q: %w", p.Name, err)
	}
	if p.Yield < 0 {
		return fmt.Errorf("plant %q: %w", p.Name, ErrNegativeYield)
	}
	if p.Cost != nil {
		if err := finite("cost", *p.Cost); err != nil {
			return fmt.Errorf("plant %q: %w", p.Name, err)
		}
	}
	if p.SalePrice != nil {
		if err := finite("salePrice", *p.SalePrice); err != nil {
			return fmt.Errorf("plant %q: %w", p.Name, err)
		}
	}
	return nil
}

// Validate checks that e satisfies the preconditions of the yield
// calculations and, when finance is set, of the cost, revenue and profit
// calculations too.
func (e CropEntry) Validate(finance bool) error {
	if err := e.Crop.Validate(); err != nil {
		return err
	}
	if e.NumCrops < 0 {
		return fmt.Errorf("plant %q: %w", e.Crop.Name, ErrNegativeQuantity)
	}
	if finance {
		if e.Crop.Cost == nil {
			return fmt.Errorf("plant %q: %w", e.Crop.Name, ErrMissingCost)
		}
		if e.Crop.SalePrice == nil {
			return fmt.Errorf("plant %q: %w", e.Crop.Name, ErrMissingSalePrice)
		}
	}
	if e.EFactor == nil {
		return nil
	}
	for _, d := range dimensions {
		level := d.level(e.EFactor)
		if level == LevelNone {
			continue
		}
		if !level.Valid() {
			return fmt.Errorf("plant %q, %s: %w: %q", e.Crop.Name, d.name, ErrUnknownLevel, level)
		}
		if e.Crop.Factor == nil || d.profile(e.Crop.Factor) == nil {
			return fmt.Errorf("plant %q: %w %s", e.Crop.Name, ErrMissingFactor, d.name)
		}
	}
	return nil
}

// Validate checks every entry of f.
func (f Farm) Validate(finance bool) error {
	for i, e := range f.Crops {
		if err := e.Validate(finance); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrNotFinite)
	}
	return nil
}
