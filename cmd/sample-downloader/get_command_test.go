package main

import (
	"strings"
	"testing"

	"github.com/ytget/sample-downloader/internal/trim"
)

func TestParseTrimRange(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantStart float64
		wantEnd   float64
		wantErr   bool
	}{
		{name: "whole seconds", spec: "12-95", wantStart: 12, wantEnd: 95},
		{name: "fractional", spec: "12.5-95.25", wantStart: 12.5, wantEnd: 95.25},
		{name: "spaces tolerated", spec: " 5 - 10 ", wantStart: 5, wantEnd: 10},
		{name: "missing separator", spec: "12", wantErr: true},
		{name: "non-numeric", spec: "a-b", wantErr: true},
		{name: "reversed", spec: "95-12", wantErr: true},
		{name: "below minimum clip length", spec: "10-10.2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTrimRange(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTrimRange(%q) error = nil, want error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTrimRange(%q) error = %v", tt.spec, err)
			}
			if got.StartTime != tt.wantStart || got.EndTime != tt.wantEnd {
				t.Errorf("parseTrimRange(%q) = [%v, %v], want [%v, %v]",
					tt.spec, got.StartTime, got.EndTime, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRenderLinesShape(t *testing.T) {
	engine := trim.NewEngine(100, 40, float64(waveformRows))

	lines := renderLines(engine.Render())
	if len(lines) != waveformRows {
		t.Fatalf("renderLines() produced %d rows, want %d", len(lines), waveformRows)
	}
	for i, line := range lines {
		if len(line) != 40 {
			t.Errorf("row %d is %d characters wide, want 40", i, len(line))
		}
	}

	// full-span selection: handles sit at both edges
	if !strings.HasPrefix(lines[waveformRows/2], "|") || !strings.HasSuffix(lines[waveformRows/2], "|") {
		t.Errorf("middle row %q missing edge handle markers", lines[waveformRows/2])
	}
}
