package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/neo2035/groundwater-calculator/internal/transport"
)

func testRun() *Run {
	return &Run{
		Mode: ModeProfile,
		Parameters: transport.Parameters{
			Mass: 100, Area: 2, Porosity: 0.3, Velocity: 0.1, Dispersion: 0.5,
		},
		StandardLimit:  0.5,
		DetectionLimit: 0.05,
		Time:           100,
		Samples:        []float64{-1, 0, 1},
		Concentrations: []float64{0.1, 6.5, 0.2},
		Stats: map[string]float64{
			"peak":          6.5,
			"peak_position": 0,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Mode != ModeProfile {
		t.Errorf("expected mode %q, got %q", ModeProfile, meta.Mode)
	}
	if meta.Parameters.Dispersion != 0.5 {
		t.Errorf("expected dispersion 0.5, got %g", meta.Parameters.Dispersion)
	}
	if meta.Time != 100 {
		t.Errorf("expected time 100, got %g", meta.Time)
	}
	if meta.Stats["peak"] != 6.5 {
		t.Errorf("expected peak stat 6.5, got %g", meta.Stats["peak"])
	}

	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 3 || len(conc) != 3 {
		t.Fatalf("expected 3 samples, got %d/%d", len(samples), len(conc))
	}
	if samples[0] != -1 || math.Abs(conc[1]-6.5) > 1e-9 {
		t.Errorf("samples round-trip mismatch: %v %v", samples, conc)
	}
}

func TestStoreSave_BackToBackKeepsBothRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	first := testRun()
	firstID, err := st.Save(first)
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := testRun()
	second.Samples = []float64{5, 6}
	second.Concentrations = []float64{9, 9}
	secondID, err := st.Save(second)
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if firstID == secondID {
		t.Fatalf("consecutive saves share run id %s", firstID)
	}

	samples, conc, err := st.LoadSamples(firstID)
	if err != nil {
		t.Fatalf("load first run failed: %v", err)
	}
	if len(samples) != 3 || len(conc) != 3 {
		t.Fatalf("first run clobbered: got %v %v", samples, conc)
	}
	if samples[0] != -1 || conc[1] != 6.5 {
		t.Errorf("first run data mismatch: %v %v", samples, conc)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreSave_LengthMismatch(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	run := testRun()
	run.Concentrations = run.Concentrations[:2]
	if _, err := st.Save(run); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save(testRun()); err != nil {
		t.Fatal(err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New("/nonexistent/gwcalc-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir should not fail: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(testRun())
	if err != nil {
		t.Fatal(err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	samples, conc, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, samples, conc); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.ID != runID || data.Mode != ModeProfile {
		t.Errorf("export header mismatch: %+v", data)
	}
	if len(data.Concentrations) != 3 {
		t.Errorf("expected 3 concentrations, got %d", len(data.Concentrations))
	}
}
