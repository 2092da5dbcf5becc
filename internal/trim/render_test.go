package trim

import (
	"testing"

	"github.com/ytget/sample-downloader/internal/model"
)

func TestRender_HandlePositions(t *testing.T) {
	engine := NewEngineWithRange(120, 600, 80, model.TrimRange{StartTime: 30, EndTime: 90})

	rm := engine.Render()
	if rm.StartX != 150 {
		t.Errorf("Expected StartX 150, got %v", rm.StartX)
	}
	if rm.EndX != 450 {
		t.Errorf("Expected EndX 450, got %v", rm.EndX)
	}
}

func TestRender_WithWaveform(t *testing.T) {
	engine := NewEngineWithRange(100, 400, 80, model.TrimRange{StartTime: 25, EndTime: 75})
	engine.SetWaveform([]model.WaveformPoint{
		{Min: -1, Max: 1},
		{Min: -0.5, Max: 0.5},
		{Min: -0.25, Max: 0.25},
		{Min: 0, Max: 0},
	})

	rm := engine.Render()
	if len(rm.Columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(rm.Columns))
	}

	// columns at x=50, 150, 250, 350; selection covers [100, 300]
	expectedSelected := []bool{false, true, true, false}
	for i, col := range rm.Columns {
		if col.Selected != expectedSelected[i] {
			t.Errorf("Column %d: Selected = %v, expected %v", i, col.Selected, expectedSelected[i])
		}
	}

	// full-scale column spans the surface height
	if rm.Columns[0].YTop != 0 || rm.Columns[0].YBottom != 80 {
		t.Errorf("Expected full-scale column to span 0..80, got %v..%v",
			rm.Columns[0].YTop, rm.Columns[0].YBottom)
	}

	// silent column collapses to the midline
	if rm.Columns[3].YTop != 40 || rm.Columns[3].YBottom != 40 {
		t.Errorf("Expected silent column at midline 40, got %v..%v",
			rm.Columns[3].YTop, rm.Columns[3].YBottom)
	}
}

func TestRender_PlaceholderWithoutWaveform(t *testing.T) {
	engine := NewEngine(60, 200, 80)

	first := engine.Render()
	if len(first.Columns) == 0 {
		t.Fatal("Expected placeholder columns without waveform data")
	}

	// the placeholder pattern is deterministic
	second := engine.Render()
	for i := range first.Columns {
		if first.Columns[i] != second.Columns[i] {
			t.Fatalf("Placeholder column %d differs between renders", i)
		}
	}
}

func TestRender_ZeroWidthSurface(t *testing.T) {
	engine := NewEngine(60, 0, 80)

	rm := engine.Render()
	if len(rm.Columns) != 0 {
		t.Errorf("Expected no columns for zero-width surface, got %d", len(rm.Columns))
	}
}
