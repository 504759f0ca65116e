package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/farmyield/pkg/farm"
)

func TestParseFile(t *testing.T) {
	f, err := ParseFile([]byte(`
version: 1.2.0
plants:
  - name: corn
    yield: 30
    cost: 2
    factor:
      sun: {low: -20, medium: 0, high: 30}
      wind: {low: 15, medium: 0, high: -10}
  - name: pear
    yield: 18
    salePrice: 3.5
`))
	require.NoError(t, err)
	require.Len(t, f.Plants, 2)

	cornPlant := f.Plants[0]
	assert.Equal(t, farm.Float(2), cornPlant.Cost)
	assert.Nil(t, cornPlant.SalePrice)
	assert.Equal(t, 34.5, farm.YieldForPlant(cornPlant, &farm.EnvironmentFactor{Sun: farm.LevelMedium, Wind: farm.LevelLow}))

	assert.Equal(t, farm.Float(3.5), f.Plants[1].SalePrice)
	assert.Nil(t, f.Plants[1].Factor)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "missing version", doc: "plants: []\n", wantErr: ErrUnsupportedVersion},
		{name: "future major", doc: "version: 2.0.0\nplants: []\n", wantErr: ErrUnsupportedVersion},
		{name: "duplicate", doc: "version: 1.0.0\nplants:\n  - {name: a, yield: 1}\n  - {name: a, yield: 2}\n", wantErr: ErrDuplicatePlant},
		{name: "unnamed", doc: "version: 1.0.0\nplants:\n  - {yield: 1}\n", wantErr: ErrMissingName},
		{name: "negative yield", doc: "version: 1.0.0\nplants:\n  - {name: a, yield: -1}\n", wantErr: farm.ErrNegativeYield},
		{name: "misspelled level", doc: "version: 1.0.0\nplants:\n  - name: a\n    yield: 1\n    factor:\n      sun: {lo: 20}\n", wantErr: ErrMalformedCatalog},
		{name: "unknown dimension", doc: "version: 1.0.0\nplants:\n  - name: a\n    yield: 1\n    factor:\n      rain: {low: 50}\n", wantErr: ErrMalformedCatalog},
		{name: "unknown plant key", doc: "version: 1.0.0\nplants:\n  - {name: a, yeild: 1}\n", wantErr: ErrMalformedCatalog},
		{name: "empty document", doc: "", wantErr: ErrMalformedCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\nplants:\n  - {name: fig, yield: 2}\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []farm.Plant{{Name: "fig", Yield: 2}}, f.Plants)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	f := Default()

	names := make([]string, 0, len(f.Plants))
	for _, p := range f.Plants {
		names = append(names, p.Name)
		assert.True(t, p.Priced(), p.Name)
	}
	assert.Equal(t, []string{"corn", "pumpkin", "strawberry", "blueberry", "apple", "pear", "walnut"}, names)
}
