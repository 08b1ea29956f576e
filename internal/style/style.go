// Package style maps earthquake magnitudes to display colors and radii.
package style

// RadiusScale converts a magnitude into a circle radius in meters.
const RadiusScale = 25000

// Magnitude bucket colors, warmest first.
const (
	ColorExtreme  = "#800026" // m >= 7
	ColorMajor    = "#bd0026" // m >= 6
	ColorStrong   = "#e31a1c" // m >= 5
	ColorModerate = "#fc4e2a" // m >= 4
	ColorLight    = "#fd8d3c" // m >= 3
	ColorMinor    = "#ffff33" // m >= 2
	ColorMicro    = "#41ab5d"
)

// ColorForMagnitude returns the fill color of the bucket containing m.
// NaN compares false against every threshold and lands in the lowest bucket.
func ColorForMagnitude(m float64) string {
	switch {
	case m >= 7:
		return ColorExtreme
	case m >= 6:
		return ColorMajor
	case m >= 5:
		return ColorStrong
	case m >= 4:
		return ColorModerate
	case m >= 3:
		return ColorLight
	case m >= 2:
		return ColorMinor
	default:
		return ColorMicro
	}
}

// RadiusForMagnitude returns the circle radius in meters. Zero and negative
// magnitudes produce a non-positive radius and are passed through unchanged.
func RadiusForMagnitude(m float64) float64 {
	return m * RadiusScale
}
