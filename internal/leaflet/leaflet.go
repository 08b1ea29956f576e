// Package leaflet renders a map view as a standalone Leaflet HTML page.
package leaflet

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"

	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/style"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Leaflet distribution loaded by the page.
const (
	LeafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

//go:embed assets/index.html.tpl assets/style.css assets/map.js
var assets embed.FS

type pageData struct {
	Title      string
	LeafletCSS string
	LeafletJS  string
	Container  string
	CSS        string
	JS         string
	View       string
}

// payload is the object the page script reads.
type payload struct {
	*mapview.MapView
	LegendHTML string `json:"legendHTML"`
}

// Renderer produces the HTML document.
type Renderer struct {
	Title string

	tmpl     *template.Template
	minifier *minify.M
	css      string
	js       string
	minified bool
}

// NewRenderer parses the page template. With minified set, the stylesheet
// and script are minified once here and every rendered page is minified.
func NewRenderer(minified bool) (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFunc("text/javascript", js.Minify)

	cssRaw, err := assets.ReadFile("assets/style.css")
	if err != nil {
		return nil, fmt.Errorf("read CSS: %w", err)
	}
	jsRaw, err := assets.ReadFile("assets/map.js")
	if err != nil {
		return nil, fmt.Errorf("read JS: %w", err)
	}
	tplRaw, err := assets.ReadFile("assets/index.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML: %w", err)
	}

	tmpl, err := template.New("index").Parse(string(tplRaw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	r := &Renderer{
		Title:    "Earthquakes and Tectonic Plates",
		tmpl:     tmpl,
		minifier: m,
		css:      string(cssRaw),
		js:       string(jsRaw),
		minified: minified,
	}

	if minified {
		if r.css, err = m.String("text/css", r.css); err != nil {
			return nil, fmt.Errorf("minify CSS: %w", err)
		}
		if r.js, err = m.String("text/javascript", r.js); err != nil {
			return nil, fmt.Errorf("minify JS: %w", err)
		}
	}

	return r, nil
}

// ContentType implements mapview.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements mapview.Renderer.
func (r *Renderer) Render(w io.Writer, v *mapview.MapView) error {
	// json.Marshal escapes <, > and & so the payload cannot close the script tag
	view, err := json.Marshal(payload{MapView: v, LegendHTML: LegendHTML(v.Legend.Entries)})
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}

	var buf bytes.Buffer
	err = r.tmpl.Execute(&buf, pageData{
		Title:      r.Title,
		LeafletCSS: LeafletCSS,
		LeafletJS:  LeafletJS,
		Container:  v.Container,
		CSS:        r.css,
		JS:         r.js,
		View:       string(view),
	})
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if !r.minified {
		_, err = buf.WriteTo(w)
		return err
	}

	if err := r.minifier.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("minify HTML: %w", err)
	}

	return nil
}

// LegendHTML renders the legend rows: a color swatch and the bracket label.
func LegendHTML(entries []style.LegendEntry) string {
	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = `<i style="background:` + html.EscapeString(e.Color) + `"></i> ` + html.EscapeString(e.Label())
	}
	return strings.Join(rows, "<br>")
}
