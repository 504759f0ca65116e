package farm

// EntrySummary bundles the four per-entry figures.
type EntrySummary struct {
	Yield   float64 `json:"yield"`
	Costs   float64 `json:"costs"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Summarize computes every figure for a priced entry.
func Summarize(e CropEntry) EntrySummary {
	return EntrySummary{
		Yield:   YieldForCrop(e),
		Costs:   CostsForCrop(e),
		Revenue: RevenueForCrop(e),
		Profit:  ProfitForCrop(e),
	}
}

// FarmSummary holds per-entry summaries and the farm totals.
type FarmSummary struct {
	Entries []EntrySummary `json:"entries"`
	Totals  EntrySummary   `json:"totals"`
}

// SummarizeFarm summarizes each entry of f, which must all be priced.
func SummarizeFarm(f Farm) FarmSummary {
	entries := make([]EntrySummary, 0, len(f.Crops))
	for _, e := range f.Crops {
		entries = append(entries, Summarize(e))
	}
	return FarmSummary{
		Entries: entries,
		Totals: EntrySummary{
			Yield:   TotalYield(f),
			Costs:   TotalCosts(f),
			Revenue: TotalRevenue(f),
			Profit:  TotalProfit(f),
		},
	}
}
