package checker

import (
	"encoding/json"
	"fmt"
	"os"

	"l10n-checker/internal/layout"
	"l10n-checker/internal/replace"
)

// firstMetricChar is the code point of the first entry of a metrics array.
const firstMetricChar = 32

type fontSettings struct {
	// Metrics holds widths for consecutive code points starting at 32.
	// Non-positive widths mean "unknown".
	Metrics      []int          `json:"metrics"`
	ExtraMetrics map[string]int `json:"extra_metrics"`
}

type settingsFile struct {
	Metrics      map[string]fontSettings `json:"metrics"`
	Replacements []string                `json:"replacements"`
	Badnesses    map[string]string       `json:"badnesses"`
}

// Settings is the compiled checker configuration.
type Settings struct {
	// Metrics maps a font family to its character widths.
	Metrics  map[string]layout.Metrics
	Pipeline *replace.Pipeline
}

// ParseSettings compiles settings from their JSON form.
func ParseSettings(data []byte) (*Settings, error) {
	var raw settingsFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	s := &Settings{Metrics: make(map[string]layout.Metrics, len(raw.Metrics))}
	for font, values := range raw.Metrics {
		metrics := make(layout.Metrics)
		for i, size := range values.Metrics {
			if size > 0 {
				metrics[string(rune(i+firstMetricChar))] = size
			}
		}
		for key, size := range values.ExtraMetrics {
			metrics[key] = size
		}
		s.Metrics[font] = metrics
	}

	pipeline, err := replace.NewPipeline(raw.Badnesses, raw.Replacements)
	if err != nil {
		return nil, fmt.Errorf("compile settings: %w", err)
	}
	s.Pipeline = pipeline
	return s, nil
}

// LoadSettings reads settings from a JSON file. An empty path yields empty
// settings: no metrics, so no layout checks.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return ParseSettings([]byte("{}"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}
