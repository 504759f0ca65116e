package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/farmyield/pkg/farm"
)

// SupportedVersions is the semver constraint catalog files must satisfy.
const SupportedVersions = "^1"

//go:embed default.yaml
var defaultCatalog []byte

var (
	// ErrUnsupportedVersion is returned for catalog files outside SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported catalog version")
	// ErrDuplicatePlant is returned when a catalog file names a plant twice.
	ErrDuplicatePlant = errors.New("duplicate plant in catalog")
	// ErrMalformedCatalog is returned for documents that do not decode, including unknown keys.
	ErrMalformedCatalog = errors.New("malformed catalog")
)

// File is the YAML catalog document.
type File struct {
	Version string       `yaml:"version"`
	Plants  []farm.Plant `yaml:"plants"`
}

// ParseFile decodes and validates a YAML catalog document. Unknown keys are
// rejected.
func ParseFile(data []byte) (File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}

	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return File{}, fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, f.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return File{}, fmt.Errorf("parse catalog constraint: %w", err)
	}
	if !constraint.Check(v) {
		return File{}, fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}

	seen := make(map[string]bool, len(f.Plants))
	for _, p := range f.Plants {
		if err := validateForStore(p); err != nil {
			return File{}, err
		}
		if seen[p.Name] {
			return File{}, fmt.Errorf("%w: %q", ErrDuplicatePlant, p.Name)
		}
		seen[p.Name] = true
	}

	return f, nil
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return File{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return f, nil
}

// Default returns the built-in catalog.
func Default() File {
	f, err := ParseFile(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return f
}
