package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pinchlab/internal/session"
)

func sampleResult() *session.Result {
	return &session.Result{
		Ticks: 3,
		Series: map[string][]float64{
			"constraint_error": {0.1, 0.05, 0.02},
			"kinetic_energy":   {1, 2, 3},
		},
		Metrics: map[string]float64{
			"constraint_error": 0.02,
			"kinetic_energy":   2,
		},
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "stacking", 7, sampleResult()))

	var data RunData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	require.Equal(t, "stacking", data.Preset)
	require.Equal(t, int64(7), data.Seed)
	require.Equal(t, 3, data.Ticks)
	require.Len(t, data.Series["kinetic_energy"], 3)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	r := csv.NewReader(strings.NewReader(buf.String()))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 ticks
	require.Equal(t, []string{"tick", "constraint_error", "kinetic_energy"}, rows[0])
	require.Equal(t, "3", rows[3][2])
}

func TestWriteCSV_ShortSeries(t *testing.T) {
	res := sampleResult()
	res.Series["kinetic_energy"] = res.Series["kinetic_energy"][:1]

	var buf bytes.Buffer
	require.Error(t, WriteCSV(&buf, res))
}
