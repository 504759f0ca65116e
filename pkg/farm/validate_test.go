package farm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"":        LevelNone,
		"low":     LevelLow,
		" Medium": LevelMedium,
		"HIGH":    LevelHigh,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("extreme")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("Wind")
	require.NoError(t, err)
	assert.Equal(t, Wind, d)

	_, err = ParseDimension("rain")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestPlantValidate(t *testing.T) {
	assert.NoError(t, Plant{Name: "corn", Yield: 3}.Validate())
	assert.ErrorIs(t, Plant{Name: "corn", Yield: -1}.Validate(), ErrNegativeYield)
	assert.ErrorIs(t, Plant{Name: "corn", Yield: math.NaN()}.Validate(), ErrNotFinite)
	assert.ErrorIs(t, Plant{Name: "corn", Yield: 1, Cost: Float(math.Inf(1))}.Validate(), ErrNotFinite)
}

func TestCropEntryValidate(t *testing.T) {
	priced := Plant{Name: "apple", Yield: 15, Cost: Float(15), SalePrice: Float(3)}

	tests := []struct {
		name    string
		entry   CropEntry
		finance bool
		wantErr error
	}{
		{
			name:  "plain entry",
			entry: CropEntry{Crop: Plant{Name: "corn", Yield: 3}, NumCrops: 2},
		},
		{
			name:    "priced entry with finance",
			entry:   CropEntry{Crop: priced, NumCrops: 2},
			finance: true,
		},
		{
			name:    "negative quantity",
			entry:   CropEntry{Crop: priced, NumCrops: -1},
			wantErr: ErrNegativeQuantity,
		},
		{
			name:    "missing cost",
			entry:   CropEntry{Crop: Plant{Name: "corn", Yield: 3, SalePrice: Float(2)}, NumCrops: 2},
			finance: true,
			wantErr: ErrMissingCost,
		},
		{
			name:    "missing sale price",
			entry:   CropEntry{Crop: Plant{Name: "corn", Yield: 3, Cost: Float(2)}, NumCrops: 2},
			finance: true,
			wantErr: ErrMissingSalePrice,
		},
		{
			name:    "missing factor for observed dimension",
			entry:   CropEntry{Crop: Plant{Name: "corn", Yield: 3}, NumCrops: 2, EFactor: &EnvironmentFactor{Wind: LevelLow}},
			wantErr: ErrMissingFactor,
		},
		{
			name: "unknown level",
			entry: CropEntry{
				Crop:     cornWithFactors(3),
				NumCrops: 2,
				EFactor:  &EnvironmentFactor{Sun: Level("blazing")},
			},
			wantErr: ErrUnknownLevel,
		},
		{
			name: "factor present for observed dimension",
			entry: CropEntry{
				Crop:     cornWithFactors(3),
				NumCrops: 2,
				EFactor:  &EnvironmentFactor{Sun: LevelLow, Wind: LevelHigh},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate(tt.finance)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFarmValidate_ReportsEntryIndex(t *testing.T) {
	f := Farm{Crops: []CropEntry{
		{Crop: Plant{Name: "corn", Yield: 3}, NumCrops: 1},
		{Crop: Plant{Name: "pear", Yield: 3}, NumCrops: 1},
	}}

	require.NoError(t, f.Validate(false))

	err := f.Validate(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCost)
	assert.Contains(t, err.Error(), "entry 0")
}
