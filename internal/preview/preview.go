// Package preview renders a map view as a static equirectangular WebP image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/mapview"

	"github.com/chai2010/webp"
	"golang.org/x/image/vector"
)

const (
	// DefaultWidth of the preview, the height is always half of it.
	DefaultWidth = 1024
	// MinWidth keeps the height at least one pixel.
	MinWidth = 2

	circleSegments = 32
	minRadiusPx    = 1.5
	lineWidthPx    = 1.2
)

var namedColors = map[string]color.NRGBA{
	"black": {0, 0, 0, 255},
	"red":   {255, 0, 0, 255},
	"white": {255, 255, 255, 255},
}

// Renderer draws quake circles and plate lines onto a plain background.
// Base imagery is not fetched, tiles need the browser session.
type Renderer struct {
	Background color.Color
	Width      int
	Quality    float32
}

// NewRenderer creates a renderer producing width x width/2 images.
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(width, MinWidth)

	return &Renderer{
		Width:      width,
		Quality:    85,
		Background: color.NRGBA{R: 0x1b, G: 0x26, B: 0x31, A: 0xff},
	}
}

// ContentType implements mapview.Renderer.
func (r *Renderer) ContentType() string {
	return "image/webp"
}

// Render implements mapview.Renderer.
func (r *Renderer) Render(w io.Writer, v *mapview.MapView) error {
	img, err := r.Draw(v)
	if err != nil {
		return err
	}

	if err := webp.Encode(w, img, &webp.Options{Lossless: false, Quality: r.Quality}); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}

	return nil
}

// Draw rasterizes the visible overlays. Lines are drawn first so quakes
// stay on top, matching the overlay order of the interactive map.
func (r *Renderer) Draw(v *mapview.MapView) (*image.RGBA, error) {
	width := max(r.Width, MinWidth)
	height := width / 2
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(0, 0)

	for _, o := range v.Overlays {
		if !o.Visible {
			continue
		}
		for _, l := range o.Lines {
			col, err := ParseColor(l.StrokeColor)
			if err != nil {
				return nil, err
			}
			r.drawPolyline(z, img, l.Vertices, col)
		}
	}

	for _, o := range v.Overlays {
		if !o.Visible {
			continue
		}
		for _, p := range o.Points {
			// zero, negative and NaN radii are not drawn
			if !(p.Radius > 0) {
				continue
			}
			col, err := ParseColor(p.FillColor)
			if err != nil {
				return nil, err
			}
			col.A = uint8(math.Round(p.FillOpacity * 255))

			x, y := geo.Equirectangular(p.Position, width, height)
			radius := math.Max(geo.MetersToPixels(p.Radius, width), minRadiusPx)
			fillPolygon(z, img, circle(x, y, radius), col)
		}
	}

	return img, nil
}

func (r *Renderer) drawPolyline(z *vector.Rasterizer, img *image.RGBA, vertices []geo.LonLat, col color.NRGBA) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		// skip segments wrapping around the antimeridian
		if math.Abs(b.Lon-a.Lon) > 180 {
			continue
		}

		x0, y0 := geo.Equirectangular(a, width, height)
		x1, y1 := geo.Equirectangular(b, width, height)
		fillPolygon(z, img, segment(x0, y0, x1, y1, lineWidthPx/2), col)
	}
}

// fillPolygon fills a closed path, rasterizing only its clipped bounding box.
func fillPolygon(z *vector.Rasterizer, img *image.RGBA, pts [][2]float64, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}

	clip := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(img.Bounds())
	if clip.Empty() {
		return
	}

	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	z.Reset(clip.Dx(), clip.Dy())
	z.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	z.ClosePath()

	z.Draw(img, clip, image.NewUniform(col), image.Point{})
}

func circle(cx, cy, radius float64) [][2]float64 {
	pts := make([][2]float64, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return pts
}

// segment returns the quad of a line of half width hw.
func segment(x0, y0, x1, y1, hw float64) [][2]float64 {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return circle(x0, y0, hw)
	}

	nx, ny := -dy/length*hw, dx/length*hw
	return [][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
}

// ParseColor accepts "#rrggbb", "#rgb" and the few named colors used by overlays.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q: %w", s, err)
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
