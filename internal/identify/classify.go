package identify

import "strings"

const (
	// ferrousDensity separates iron and carbon steel from lighter magnetic alloys.
	ferrousDensity = 7.0
	// lightDensity is the ceiling for aluminum among non-magnetic samples.
	lightDensity = 3.5
)

// Density returns weight/volume in g/cc, or 0 when volume is not positive.
func Density(weight, volume float64) float64 {
	if volume > 0 {
		return weight / volume
	}
	return 0
}

// Classify maps the test values to a Metal. Rules apply in order and the
// first match wins: magnetism and density, then color hints, then density.
// Spark and Scratch are ignored.
func Classify(in Input) (Metal, float64) {
	density := Density(in.Weight, in.Volume)
	result := Unknown

	if in.Magnetic {
		if density >= ferrousDensity {
			result = IronOrSteel
		} else {
			result = MagneticStainlessSteel
		}
		return result, density
	}

	color := strings.ToLower(in.Color)
	switch {
	case strings.Contains(color, "red"), strings.Contains(color, "copper"):
		result = Copper
	case strings.Contains(color, "gold"), strings.Contains(color, "yellow"):
		result = BrassOrBronze
	case density < lightDensity:
		result = Aluminum
	default:
		result = Uncertain
	}

	return result, density
}
