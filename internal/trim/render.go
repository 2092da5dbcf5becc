package trim

import (
	"math"

	"github.com/ytget/sample-downloader/internal/model"
)

// Placeholder pattern constants
const (
	placeholderBase      = 0.25
	placeholderAmplitude = 0.35
	placeholderFrequency = 0.37
)

// Column is one rendered waveform column in surface coordinates: a vertical
// extent at pixel x, with Selected marking columns inside the trim interval
type Column struct {
	X        float64
	YTop     float64
	YBottom  float64
	Selected bool
}

// RenderModel describes everything a view needs to draw the control: handle
// positions and per-column extents. Regions outside [StartX, EndX] are meant
// to be de-emphasized by the renderer.
type RenderModel struct {
	Width   float64
	Height  float64
	StartX  float64
	EndX    float64
	Columns []Column
}

// Render produces the current render model. Without sample data a
// deterministic placeholder pattern is generated so the control stays usable
// before the waveform arrives.
func (e *Engine) Render() RenderModel {
	rm := RenderModel{
		Width:  e.width,
		Height: e.height,
		StartX: e.TimeToX(e.startTime),
		EndX:   e.TimeToX(e.endTime),
	}

	points := e.waveform
	if len(points) == 0 {
		points = placeholderPattern(int(e.width))
	}

	if len(points) == 0 || e.width <= 0 {
		return rm
	}

	mid := e.height / 2
	step := e.width / float64(len(points))

	rm.Columns = make([]Column, 0, len(points))
	for i, p := range points {
		x := (float64(i) + 0.5) * step
		rm.Columns = append(rm.Columns, Column{
			X:        x,
			YTop:     mid - float64(p.Max)*mid,
			YBottom:  mid - float64(p.Min)*mid,
			Selected: x >= rm.StartX && x <= rm.EndX,
		})
	}

	return rm
}

// placeholderPattern generates a fixed pseudo-waveform with one point per
// pixel column
func placeholderPattern(columns int) []model.WaveformPoint {
	if columns <= 0 {
		return nil
	}

	points := make([]model.WaveformPoint, columns)
	for i := range points {
		amp := placeholderBase + placeholderAmplitude*math.Abs(math.Sin(float64(i)*placeholderFrequency))
		points[i] = model.WaveformPoint{Min: float32(-amp), Max: float32(amp)}
	}
	return points
}
