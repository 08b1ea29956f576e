package geo

// EarthCircumference is the equatorial circumference in meters.
const EarthCircumference = 40075016.686

// Equirectangular projects a position onto a width x height plate carree canvas.
//
// Longitude [-180..180] maps to x [0..width] and latitude [90..-90] maps to
// y [0..height]. Values outside the valid ranges are not clamped.
func Equirectangular(p LonLat, width, height int) (x, y float64) {
	x = (p.Lon + 180.0) / 360.0 * float64(width)
	y = (90.0 - p.Lat) / 180.0 * float64(height)
	return x, y
}

// MetersToPixels converts an equatorial distance in meters to pixels on a
// canvas of the given width.
func MetersToPixels(meters float64, width int) float64 {
	return meters / (EarthCircumference / float64(width))
}
