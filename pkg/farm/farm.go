// Package farm computes yield, cost, revenue and profit for crops and farms,
// optionally adjusted by environment factors such as sun and wind exposure.
//
// Every exported calculation is pure and rounds its result to two decimal
// places before returning it. Inputs are never modified.
package farm

// Level is an observed intensity of an environment dimension.
type Level string

// Recognised levels. LevelNone means no level was observed.
const (
	LevelNone   Level = ""
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of low, medium or high.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Dimension names an environment factor.
type Dimension string

const (
	Sun  Dimension = "sun"
	Wind Dimension = "wind"
)

// FactorProfile holds the signed percentage adjustment a plant receives for
// each level of one dimension. A zero percentage means no adjustment.
type FactorProfile struct {
	Low    int `json:"low" yaml:"low"`
	Medium int `json:"medium" yaml:"medium"`
	High   int `json:"high" yaml:"high"`
}

// Percent returns the adjustment for level, or 0 for an unknown level.
func (p *FactorProfile) Percent(level Level) int {
	switch level {
	case LevelLow:
		return p.Low
	case LevelMedium:
		return p.Medium
	case LevelHigh:
		return p.High
	}
	return 0
}

// PlantFactors groups a plant's factor profiles per dimension.
type PlantFactors struct {
	Sun  *FactorProfile `json:"sun,omitempty" yaml:"sun,omitempty"`
	Wind *FactorProfile `json:"wind,omitempty" yaml:"wind,omitempty"`
}

// Plant is the botanical and economic description of a crop.
type Plant struct {
	Name      string        `json:"name" yaml:"name"`
	Yield     float64       `json:"yield" yaml:"yield"`
	Cost      *float64      `json:"cost,omitempty" yaml:"cost,omitempty"`
	SalePrice *float64      `json:"salePrice,omitempty" yaml:"salePrice,omitempty"`
	Factor    *PlantFactors `json:"factor,omitempty" yaml:"factor,omitempty"`
}

// Priced reports whether the plant carries both a cost and a sale price.
func (p Plant) Priced() bool {
	return p.Cost != nil && p.SalePrice != nil
}

// EnvironmentFactor is the observed level per dimension for one planting.
type EnvironmentFactor struct {
	Sun  Level `json:"sun,omitempty" yaml:"sun,omitempty"`
	Wind Level `json:"wind,omitempty" yaml:"wind,omitempty"`
}

// CropEntry is one planting record.
type CropEntry struct {
	Crop     Plant              `json:"crop" yaml:"crop"`
	NumCrops int                `json:"numCrops" yaml:"numCrops"`
	EFactor  *EnvironmentFactor `json:"eFactor,omitempty" yaml:"eFactor,omitempty"`
}

// Farm is a collection of crop entries.
type Farm struct {
	Crops []CropEntry `json:"crops" yaml:"crops"`
}

// Float returns a pointer to v, for filling optional Plant fields.
func Float(v float64) *float64 {
	return &v
}
