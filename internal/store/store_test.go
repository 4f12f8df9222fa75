package store

import (
	"testing"

	"github.com/san-kum/procsim/internal/report"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	rows := []report.SeriesRow{
		{Time: 0, PV: 0.5, Output: 0.5},
		{Time: 0.5, PV: 0.52, Output: 0.61},
		{Time: 1.0, PV: 0.55, Output: 0.64},
	}
	metrics := map[string]float64{"iae": 0.42}

	runID, err := st.Save("pid", 30.0, 60, metrics, rows)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Case != "pid" {
		t.Errorf("expected case pid, got %s", meta.Case)
	}
	if meta.Horizon != 30.0 || meta.Steps != 60 {
		t.Errorf("unexpected grid metadata: %+v", meta)
	}
	if meta.Metrics["iae"] != 0.42 {
		t.Errorf("expected iae 0.42, got %f", meta.Metrics["iae"])
	}

	loaded, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	if len(loaded) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(loaded))
	}
	for i := range rows {
		if loaded[i] != rows[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, rows[i], loaded[i])
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListFindsRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	rows := []report.SeriesRow{{Time: 0, PV: 0.5, Output: 0.5}}
	if _, err := st.Save("pid", 10, 20, nil, rows); err != nil {
		t.Fatalf("save: %v", err)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Case != "pid" {
		t.Errorf("expected case pid, got %s", runs[0].Case)
	}
}
