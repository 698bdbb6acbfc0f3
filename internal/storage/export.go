package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/neo2035/groundwater-calculator/internal/transport"
)

// ExportData is the flat JSON shape handed to external tools.
type ExportData struct {
	ID             string               `json:"id"`
	Mode           string               `json:"mode"`
	Parameters     transport.Parameters `json:"parameters"`
	StandardLimit  float64              `json:"standard_limit"`
	DetectionLimit float64              `json:"detection_limit"`
	Time           float64              `json:"time,omitempty"`
	Position       float64              `json:"position,omitempty"`
	Samples        []float64            `json:"samples"`
	Concentrations []float64            `json:"concentrations"`
	Stats          map[string]float64   `json:"stats"`
}

func exportData(meta *RunMetadata, samples, conc []float64) ExportData {
	return ExportData{
		ID:             meta.ID,
		Mode:           meta.Mode,
		Parameters:     meta.Parameters,
		StandardLimit:  meta.StandardLimit,
		DetectionLimit: meta.DetectionLimit,
		Time:           meta.Time,
		Position:       meta.Position,
		Samples:        samples,
		Concentrations: conc,
		Stats:          meta.Stats,
	}
}

// ExportJSON writes a run as indented JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, samples, conc []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, samples, conc))
}

// ExportJSONFile writes a run as indented JSON to path.
func ExportJSONFile(path string, meta *RunMetadata, samples, conc []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, samples, conc)
}
