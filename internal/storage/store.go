// Package storage persists analysis runs as one directory per run:
// metadata.json with the parameter set and derived statistics, plus a CSV
// of the sampled concentration field.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/neo2035/groundwater-calculator/internal/transport"
)

// Run modes; they decide whether the CSV sample column holds positions (m)
// or times (d).
const (
	ModeProfile      = "profile"
	ModeBreakthrough = "breakthrough"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string               `json:"id"`
	Mode           string               `json:"mode"`
	Timestamp      time.Time            `json:"timestamp"`
	Parameters     transport.Parameters `json:"parameters"`
	StandardLimit  float64              `json:"standard_limit"`
	DetectionLimit float64              `json:"detection_limit"`
	Time           float64              `json:"time,omitempty"`     // profile runs: evaluation time (d)
	Position       float64              `json:"position,omitempty"` // breakthrough runs: monitoring position (m)
	Stats          map[string]float64   `json:"stats"`
}

// Run bundles what Save needs: the metadata fields plus the parallel
// sample/concentration slices.
type Run struct {
	Mode           string
	Parameters     transport.Parameters
	StandardLimit  float64
	DetectionLimit float64
	Time           float64
	Position       float64
	Samples        []float64
	Concentrations []float64
	Stats          map[string]float64
}

func sampleColumn(mode string) string {
	if mode == ModeBreakthrough {
		return "time"
	}
	return "position"
}

func (s *Store) Save(run *Run) (string, error) {
	if len(run.Samples) != len(run.Concentrations) {
		return "", fmt.Errorf("samples and concentrations differ in length: %d vs %d",
			len(run.Samples), len(run.Concentrations))
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// Scenario steps can save several runs within one second, so a bare
	// unix-stamp ID would collide. os.Mkdir makes the claim atomic; on
	// collision the ID gets a sequence suffix.
	stamp := time.Now().Unix()
	runID := fmt.Sprintf("%s_%d", run.Mode, stamp)
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d_%d", run.Mode, stamp, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:             runID,
		Mode:           run.Mode,
		Timestamp:      time.Now(),
		Parameters:     run.Parameters,
		StandardLimit:  run.StandardLimit,
		DetectionLimit: run.DetectionLimit,
		Time:           run.Time,
		Position:       run.Position,
		Stats:          run.Stats,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "concentrations.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{sampleColumn(run.Mode), "concentration"}); err != nil {
		return "", err
	}
	for i := range run.Samples {
		row := []string{
			strconv.FormatFloat(run.Samples[i], 'f', 6, 64),
			strconv.FormatFloat(run.Concentrations[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads back the sample/concentration columns of a run.
func (s *Store) LoadSamples(runID string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "concentrations.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	samples := make([]float64, 0, len(records)-1)
	conc := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		sv, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		cv, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, sv)
		conc = append(conc, cv)
	}

	return samples, conc, nil
}
