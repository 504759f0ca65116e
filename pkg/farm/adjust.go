package farm

// dimension binds a Dimension to the accessors that read its plant profile
// and its observed level. Adjustments run in table order.
type dimension struct {
	name       Dimension
	profile    func(*PlantFactors) *FactorProfile
	setProfile func(*PlantFactors, *FactorProfile)
	level      func(*EnvironmentFactor) Level
	setLevel   func(*EnvironmentFactor, Level)
}

var dimensions = []dimension{
	{
		name:       Sun,
		profile:    func(f *PlantFactors) *FactorProfile { return f.Sun },
		setProfile: func(f *PlantFactors, p *FactorProfile) { f.Sun = p },
		level:      func(e *EnvironmentFactor) Level { return e.Sun },
		setLevel:   func(e *EnvironmentFactor, l Level) { e.Sun = l },
	},
	{
		name:       Wind,
		profile:    func(f *PlantFactors) *FactorProfile { return f.Wind },
		setProfile: func(f *PlantFactors, p *FactorProfile) { f.Wind = p },
		level:      func(e *EnvironmentFactor) Level { return e.Wind },
		setLevel:   func(e *EnvironmentFactor, l Level) { e.Wind = l },
	},
}

// Dimensions returns the environment dimensions in the order their
// adjustments are applied.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	for i, d := range dimensions {
		out[i] = d.name
	}
	return out
}

func lookupDimension(d Dimension) (dimension, bool) {
	for _, dim := range dimensions {
		if dim.name == d {
			return dim, true
		}
	}
	return dimension{}, false
}

// Profile returns the profile for d, or nil when the plant has none.
func (f *PlantFactors) Profile(d Dimension) *FactorProfile {
	dim, ok := lookupDimension(d)
	if !ok || f == nil {
		return nil
	}
	return dim.profile(f)
}

// SetProfile stores a copy of p as the profile for d. Unknown dimensions are ignored.
func (f *PlantFactors) SetProfile(d Dimension, p FactorProfile) {
	if dim, ok := lookupDimension(d); ok {
		dim.setProfile(f, &p)
	}
}

// Level returns the observed level for d.
func (e *EnvironmentFactor) Level(d Dimension) Level {
	dim, ok := lookupDimension(d)
	if !ok || e == nil {
		return LevelNone
	}
	return dim.level(e)
}

// SetLevel records l as the observed level for d. Unknown dimensions are ignored.
func (e *EnvironmentFactor) SetLevel(d Dimension, l Level) {
	if dim, ok := lookupDimension(d); ok {
		dim.setLevel(e, l)
	}
}

// Adjust applies the percentage profile holds for level to current.
//
// An unrecognised level returns current unchanged. A zero percentage leaves
// the value as is. The result is floored at 0 and rounded to two decimals.
func Adjust(profile *FactorProfile, level Level, current float64) float64 {
	if !level.Valid() {
		return current
	}

	result := current
	if pct := profile.Percent(level); pct != 0 {
		result = result + (result*float64(pct))/100
	}
	if result < 0 {
		result = 0
	}
	return Round2(result)
}
