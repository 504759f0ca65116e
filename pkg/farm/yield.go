package farm

// YieldForPlant returns the per-unit yield of p under env.
//
// A nil env means no environmental adjustment. Otherwise every dimension
// with an observed level is applied in order (sun, then wind), each step
// consuming the previously adjusted value. The plant must carry a profile
// for every dimension env names.
func YieldForPlant(p Plant, env *EnvironmentFactor) float64 {
	if env == nil {
		return Round2(p.Yield)
	}

	result := p.Yield
	for _, d := range dimensions {
		level := d.level(env)
		if level == LevelNone {
			continue
		}
		result = Adjust(d.profile(p.Factor), level, result)
	}
	return Round2(result)
}

// YieldForCrop returns the environment-adjusted yield of the whole entry.
func YieldForCrop(e CropEntry) float64 {
	return Round2(YieldForPlant(e.Crop, e.EFactor) * float64(e.NumCrops))
}

// CostsForCrop returns the planting cost of the entry. The plant must have a Cost.
func CostsForCrop(e CropEntry) float64 {
	return Round2(*e.Crop.Cost * float64(e.NumCrops))
}

// RevenueForCrop prices the harvested yield of the entry, not the number of
// plantings. The plant must have a SalePrice.
func RevenueForCrop(e CropEntry) float64 {
	return Round2(*e.Crop.SalePrice * YieldForCrop(e))
}

// ProfitForCrop returns revenue minus costs for the entry.
func ProfitForCrop(e CropEntry) float64 {
	return Round2(RevenueForCrop(e) - CostsForCrop(e))
}

// TotalYield sums YieldForCrop over every entry of f.
func TotalYield(f Farm) float64 {
	return total(f, YieldForCrop)
}

// TotalCosts sums CostsForCrop over every entry of f.
func TotalCosts(f Farm) float64 {
	return total(f, CostsForCrop)
}

// TotalRevenue sums RevenueForCrop over every entry of f.
func TotalRevenue(f Farm) float64 {
	return total(f, RevenueForCrop)
}

// TotalProfit sums ProfitForCrop over every entry of f.
func TotalProfit(f Farm) float64 {
	return total(f, ProfitForCrop)
}

func total(f Farm, per func(CropEntry) float64) float64 {
	sum := 0.0
	for _, e := range f.Crops {
		sum += per(e)
	}
	return Round2(sum)
}
