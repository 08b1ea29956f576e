package style

import (
	"encoding/json"
	"math"
	"strconv"
)

// Breakpoints are the lower bounds of the legend rows.
var Breakpoints = []float64{0, 2, 3, 4, 5, 6}

// LegendEntry is one legend row covering [Lower, Upper).
type LegendEntry struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"` // +Inf on the last row
	Color string  `json:"color" yaml:"color"`
}

// Unbounded reports whether the row has no upper bound.
func (e LegendEntry) Unbounded() bool {
	return math.IsInf(e.Upper, 1)
}

// Label renders "lower–upper", or "lower+" for the open-ended row.
func (e LegendEntry) Label() string {
	if e.Unbounded() {
		return formatBound(e.Lower) + "+"
	}
	return formatBound(e.Lower) + "–" + formatBound(e.Upper)
}

// Legend builds one row per breakpoint. Each row spans up to the next
// breakpoint; the last one is open-ended. Colors come from the row's lower bound.
func Legend(breakpoints []float64) []LegendEntry {
	entries := make([]LegendEntry, len(breakpoints))
	for i, lower := range breakpoints {
		upper := math.Inf(1)
		if i+1 < len(breakpoints) {
			upper = breakpoints[i+1]
		}
		entries[i] = LegendEntry{
			Lower: lower,
			Upper: upper,
			Color: ColorForMagnitude(lower),
		}
	}
	return entries
}

// MarshalJSON encodes the open upper bound as null, JSON has no infinity.
func (e LegendEntry) MarshalJSON() ([]byte, error) {
	var upper *float64
	if !e.Unbounded() {
		upper = &e.Upper
	}

	return json.Marshal(struct {
		Lower float64  `json:"lower"`
		Upper *float64 `json:"upper"`
		Color string   `json:"color"`
		Label string   `json:"label"`
	}{e.Lower, upper, e.Color, e.Label()})
}

// UnmarshalJSON reads a null or missing upper bound back as +Inf.
func (e *LegendEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lower float64  `json:"lower"`
		Upper *float64 `json:"upper"`
		Color string   `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = LegendEntry{Lower: raw.Lower, Upper: math.Inf(1), Color: raw.Color}
	if raw.Upper != nil {
		e.Upper = *raw.Upper
	}

	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
