// Package report turns a farm into per-entry rows and totals and renders
// them as text, JSON or XLSX.
package report

import "github.com/Simplici0/farmyield/pkg/farm"

// Row is one crop entry of a report. Finance columns are zero when the
// plant is not priced. Env holds only the dimensions with an observed level.
type Row struct {
	Plant    string                        `json:"plant"`
	NumCrops int                           `json:"numCrops"`
	Env      map[farm.Dimension]farm.Level `json:"env,omitempty"`
	Priced   bool                          `json:"priced"`
	Yield    float64                       `json:"yield"`
	Costs    float64                       `json:"costs"`
	Revenue  float64                       `json:"revenue"`
	Profit   float64                       `json:"profit"`
}

// Level returns the observed level for d, or farm.LevelNone.
func (r Row) Level(d farm.Dimension) farm.Level {
	return r.Env[d]
}

// Totals aggregates a report. Yield covers every entry; the finance totals
// cover priced entries only.
type Totals struct {
	Yield   float64 `json:"yield"`
	Costs   float64 `json:"costs"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Report is the computed view of a farm.
type Report struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

// Build computes a report for f.
func Build(f farm.Farm) Report {
	rows := make([]Row, 0, len(f.Crops))
	var priced farm.Farm

	for _, e := range f.Crops {
		row := Row{
			Plant:    e.Crop.Name,
			NumCrops: e.NumCrops,
			Env:      observedLevels(e.EFactor),
			Priced:   e.Crop.Priced(),
		}
		if row.Priced {
			s := farm.Summarize(e)
			row.Yield, row.Costs, row.Revenue, row.Profit = s.Yield, s.Costs, s.Revenue, s.Profit
			priced.Crops = append(priced.Crops, e)
		} else {
			row.Yield = farm.YieldForCrop(e)
		}
		rows = append(rows, row)
	}

	return Report{
		Rows: rows,
		Totals: Totals{
			Yield:   farm.TotalYield(f),
			Costs:   farm.TotalCosts(priced),
			Revenue: farm.TotalRevenue(priced),
			Profit:  farm.TotalProfit(priced),
		},
	}
}

func observedLevels(env *farm.EnvironmentFactor) map[farm.Dimension]farm.Level {
	var levels map[farm.Dimension]farm.Level
	for _, d := range farm.Dimensions() {
		level := env.Level(d)
		if level == farm.LevelNone {
			continue
		}
		if levels == nil {
			levels = make(map[farm.Dimension]farm.Level)
		}
		levels[d] = level
	}
	return levels
}
