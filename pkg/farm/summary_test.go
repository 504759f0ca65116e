package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	blueberry := Plant{Name: "blueberry", Yield: 3, Cost: Float(8), SalePrice: Float(11)}

	got := Summarize(CropEntry{Crop: blueberry, NumCrops: 3})

	assert.Equal(t, EntrySummary{Yield: 9, Costs: 24, Revenue: 99, Profit: 75}, got)
}

func TestSummarizeFarm(t *testing.T) {
	apple := Plant{Name: "apple", Yield: 15, Cost: Float(15), SalePrice: Float(3)}
	pear := Plant{Name: "pear", Yield: 18, Cost: Float(20), SalePrice: Float(3.5)}

	got := SummarizeFarm(Farm{Crops: []CropEntry{{Crop: apple, NumCrops: 3}, {Crop: pear, NumCrops: 5}}})

	assert.Equal(t, []EntrySummary{
		{Yield: 45, Costs: 45, Revenue: 135, Profit: 90},
		{Yield: 90, Costs: 100, Revenue: 315, Profit: 215},
	}, got.Entries)
	assert.Equal(t, EntrySummary{Yield: 135, Costs: 145, Revenue: 450, Profit: 305}, got.Totals)
}

func TestSummarizeFarm_Empty(t *testing.T) {
	got := SummarizeFarm(Farm{})

	assert.Empty(t, got.Entries)
	assert.Equal(t, EntrySummary{}, got.Totals)
}
