package style

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegend(t *testing.T) {
	entries := Legend(Breakpoints)
	require.Len(t, entries, 6)

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label()
		assert.Equal(t, ColorForMagnitude(e.Lower), e.Color)
	}

	assert.Equal(t, []string{"0–2", "2–3", "3–4", "4–5", "5–6", "6+"}, labels)

	last := entries[len(entries)-1]
	assert.True(t, last.Unbounded())
	assert.True(t, strings.HasSuffix(last.Label(), "+"))
	for _, e := range entries[:len(entries)-1] {
		assert.False(t, e.Unbounded())
		assert.Contains(t, e.Label(), "–")
	}
}

func TestLegend_Empty(t *testing.T) {
	assert.Empty(t, Legend(nil))
}

func TestLegendEntry_MarshalJSON(t *testing.T) {
	entries := Legend([]float64{5, 6.5})

	raw, err := json.Marshal(entries)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"lower": 5, "upper": 6.5, "color": "#e31a1c", "label": "5–6.5"},
		{"lower": 6.5, "upper": null, "color": "#bd0026", "label": "6.5+"}
	]`, string(raw))
}

func TestLegendEntry_UnmarshalJSON(t *testing.T) {
	want := Legend(Breakpoints)

	raw, err := json.Marshal(want)
	require.NoError(t, err)

	var got []LegendEntry
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, want, got)
	assert.True(t, got[len(got)-1].Unbounded())
	assert.Equal(t, "6+", got[len(got)-1].Label())
}

func TestLegendEntry_UnmarshalJSON_MissingUpper(t *testing.T) {
	var e LegendEntry
	require.NoError(t, json.Unmarshal([]byte(`{"lower": 6, "color": "#bd0026"}`), &e))

	assert.True(t, e.Unbounded())
	assert.Equal(t, "6+", e.Label())
}
