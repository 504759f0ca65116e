package farm

import "math"

// Round2 rounds x to two decimal places, half up on the scaled value.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
