// Package export writes session results to JSON or CSV for offline
// analysis. Simulation state itself is never persisted; only the metric
// series a run produced.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"pinchlab/internal/session"
)

type RunData struct {
	Preset    string               `json:"preset"`
	Seed      int64                `json:"seed"`
	Timestamp time.Time            `json:"timestamp"`
	Ticks     int                  `json:"ticks"`
	Metrics   map[string]float64   `json:"metrics"`
	Series    map[string][]float64 `json:"series"`
}

func newRunData(preset string, seed int64, result *session.Result) RunData {
	return RunData{
		Preset:    preset,
		Seed:      seed,
		Timestamp: time.Now(),
		Ticks:     result.Ticks,
		Metrics:   result.Metrics,
		Series:    result.Series,
	}
}

func WriteJSON(w io.Writer, preset string, seed int64, result *session.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newRunData(preset, seed, result))
}

func SaveJSON(path, preset string, seed int64, result *session.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, preset, seed, result)
}

// WriteCSV emits one row per tick with a column per metric series, in
// stable alphabetical column order.
func WriteCSV(w io.Writer, result *session.Result) error {
	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"tick"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for tick := 0; tick < result.Ticks; tick++ {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.Itoa(tick))
		for _, name := range names {
			series := result.Series[name]
			if tick >= len(series) {
				return fmt.Errorf("export: series %q shorter than run (%d < %d)", name, len(series), result.Ticks)
			}
			row = append(row, strconv.FormatFloat(series[tick], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func SaveCSV(path string, result *session.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, result)
}
