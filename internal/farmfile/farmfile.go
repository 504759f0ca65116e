// Package farmfile decodes farm descriptions whose entries reference
// catalog plants by name or carry the plant inline, and resolves them into
// a farm.Farm.
package farmfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/farmyield/pkg/farm"
)

var (
	// ErrNoPlant is returned for an entry naming neither a catalog plant nor an inline one.
	ErrNoPlant = errors.New("entry needs either plant or inline")
	// ErrAmbiguousPlant is returned for an entry naming both.
	ErrAmbiguousPlant = errors.New("entry has both plant and inline")
)

// PlantLookup finds catalog plants by name.
type PlantLookup interface {
	Get(ctx context.Context, name string) (farm.Plant, error)
}

// Entry describes one planting.
type Entry struct {
	Plant    string            `json:"plant,omitempty" yaml:"plant,omitempty"`
	Inline   *farm.Plant       `json:"inline,omitempty" yaml:"inline,omitempty"`
	NumCrops int               `json:"numCrops" yaml:"numCrops"`
	Env      map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// File is a farm description.
type File struct {
	Name    string  `json:"name,omitempty" yaml:"name,omitempty"`
	Notes   string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Parse decodes a YAML farm description. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode farm file: %w", err)
	}
	return f, nil
}

// Load reads and parses the farm description at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read farm file %s: %w", path, err)
	}
	return Parse(data)
}

// Resolve builds the farm, fetching named plants from lookup. The result is
// validated so the yield calculations' preconditions hold; finance
// additionally requires every plant to be priced.
func (f File) Resolve(ctx context.Context, lookup PlantLookup, finance bool) (farm.Farm, error) {
	out := farm.Farm{Crops: make([]farm.CropEntry, 0, len(f.Entries))}
	for i, e := range f.Entries {
		entry, err := e.resolve(ctx, lookup)
		if err != nil {
			return farm.Farm{}, fmt.Errorf("entry %d: %w", i, err)
		}
		out.Crops = append(out.Crops, entry)
	}
	if err := out.Validate(finance); err != nil {
		return farm.Farm{}, err
	}
	return out, nil
}

func (e Entry) resolve(ctx context.Context, lookup PlantLookup) (farm.CropEntry, error) {
	var plant farm.Plant
	switch {
	case e.Plant != "" && e.Inline != nil:
		return farm.CropEntry{}, ErrAmbiguousPlant
	case e.Inline != nil:
		plant = *e.Inline
	case e.Plant != "":
		p, err := lookup.Get(ctx, e.Plant)
		if err != nil {
			return farm.CropEntry{}, err
		}
		plant = p
	default:
		return farm.CropEntry{}, ErrNoPlant
	}

	env, err := ParseEnv(e.Env)
	if err != nil {
		return farm.CropEntry{}, err
	}

	return farm.CropEntry{Crop: plant, NumCrops: e.NumCrops, EFactor: env}, nil
}

// ParseEnv converts a dimension→level map into an environment factor.
// A nil or empty map yields nil: no environmental adjustment.
func ParseEnv(raw map[string]string) (*farm.EnvironmentFactor, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := &farm.EnvironmentFactor{}
	for _, k := range keys {
		dim, err := farm.ParseDimension(k)
		if err != nil {
			return nil, err
		}
		level, err := farm.ParseLevel(raw[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dim, err)
		}
		env.SetLevel(dim, level)
	}
	return env, nil
}
