package trim

import (
	"math"

	"github.com/ytget/sample-downloader/internal/model"
)

// Interaction constants
const (
	// MinGap is the smallest selectable span in seconds
	MinGap = 0.5

	// HandleTolerancePx is the pointer-down hit radius around a handle
	HandleTolerancePx = 10.0
)

// DragMode represents the current pointer interaction state
type DragMode int

const (
	// DragNone means no handle is being dragged
	DragNone DragMode = iota

	// DragStart means the start handle follows the pointer
	DragStart

	// DragEnd means the end handle follows the pointer
	DragEnd
)

// String returns a short name for the drag mode, used for cursor feedback
func (dm DragMode) String() string {
	switch dm {
	case DragStart:
		return "draggingStart"
	case DragEnd:
		return "draggingEnd"
	default:
		return "none"
	}
}

// Engine maps pointer input over a fixed-width waveform canvas to a
// [start, end] time interval within [0, totalDuration]. It owns no rendering
// and no persistence: the owning context captures the interval through the
// change callback before the engine is discarded.
type Engine struct {
	totalDuration float64
	width         float64
	height        float64

	startTime float64
	endTime   float64
	mode      DragMode

	explicitEnd bool // an initial interval was supplied, survive duration updates

	waveform []model.WaveformPoint
	onChange func(model.TrimRange)
}

// NewEngine creates an engine spanning the full asset by default
func NewEngine(totalDuration, width, height float64) *Engine {
	if totalDuration < 0 {
		totalDuration = 0
	}
	return &Engine{
		totalDuration: totalDuration,
		width:         width,
		height:        height,
		startTime:     0,
		endTime:       totalDuration,
		mode:          DragNone,
	}
}

// NewEngineWithRange creates an engine with a caller-supplied initial
// interval, clamped to the engine invariants
func NewEngineWithRange(totalDuration, width, height float64, initial model.TrimRange) *Engine {
	e := NewEngine(totalDuration, width, height)
	e.explicitEnd = true
	e.endTime = clamp(initial.EndTime, MinGap, totalDuration)
	e.startTime = clamp(initial.StartTime, 0, e.endTime-MinGap)
	return e
}

// SetOnChange registers the callback invoked with the current interval on
// every accepted mutation
func (e *Engine) SetOnChange(callback func(model.TrimRange)) {
	e.onChange = callback
}

// SetWaveform supplies precomputed sample data for rendering. The slice is
// treated as read-only.
func (e *Engine) SetWaveform(points []model.WaveformPoint) {
	e.waveform = points
}

// SetTotalDuration updates the asset length. Without an explicit initial
// interval the selection resets to the full span; otherwise the current
// interval is re-clamped against the new bound.
func (e *Engine) SetTotalDuration(totalDuration float64) {
	if totalDuration < 0 {
		totalDuration = 0
	}
	e.totalDuration = totalDuration

	if !e.explicitEnd {
		e.startTime = 0
		e.endTime = totalDuration
		return
	}

	e.endTime = clamp(e.endTime, MinGap, totalDuration)
	e.startTime = clamp(e.startTime, 0, e.endTime-MinGap)
}

// SetSize updates the rendering surface dimensions used by the coordinate
// mapping
func (e *Engine) SetSize(width, height float64) {
	e.width = width
	e.height = height
}

// Range returns the current trim interval
func (e *Engine) Range() model.TrimRange {
	return model.TrimRange{StartTime: e.startTime, EndTime: e.endTime}
}

// Mode returns the current interaction mode
func (e *Engine) Mode() DragMode {
	return e.mode
}

// TotalDuration returns the asset length in seconds
func (e *Engine) TotalDuration() float64 {
	return e.totalDuration
}

// TimeToX converts a time in seconds to a pixel offset on the canvas
func (e *Engine) TimeToX(t float64) float64 {
	if e.totalDuration <= 0 {
		return 0
	}
	return (t / e.totalDuration) * e.width
}

// XToTime converts a pixel offset to a time in seconds, clamped to
// [0, totalDuration]
func (e *Engine) XToTime(x float64) float64 {
	if e.width <= 0 {
		return 0
	}
	t := (x / e.width) * e.totalDuration
	return clamp(t, 0, e.totalDuration)
}

// PointerDown performs hit testing at pixel x. Within tolerance of a handle
// the matching drag begins; otherwise the handle nearest to the clicked time
// is moved there and dragged, so a single click both relocates a handle and
// starts a drag.
func (e *Engine) PointerDown(x float64) {
	startX := e.TimeToX(e.startTime)
	endX := e.TimeToX(e.endTime)

	switch {
	case math.Abs(x-startX) <= HandleTolerancePx:
		e.mode = DragStart
	case math.Abs(x-endX) <= HandleTolerancePx:
		e.mode = DragEnd
	default:
		t := e.XToTime(clamp(x, 0, e.width))
		if math.Abs(t-e.startTime) <= math.Abs(t-e.endTime) {
			e.mode = DragStart
			e.setStart(t)
		} else {
			e.mode = DragEnd
			e.setEnd(t)
		}
	}
}

// PointerMove updates the dragged handle from pixel x. A no-op unless a drag
// is in progress.
func (e *Engine) PointerMove(x float64) {
	if e.mode == DragNone {
		return
	}

	t := e.XToTime(clamp(x, 0, e.width))
	if e.mode == DragStart {
		e.setStart(t)
	} else {
		e.setEnd(t)
	}
}

// PointerUp ends any drag. Callers must route every pointer release here,
// including releases outside the rendering surface, so a drag never persists
// past release.
func (e *Engine) PointerUp() {
	e.mode = DragNone
}

// SetStartTime applies a direct numeric edit of the start bound. Values that
// would violate the invariants are clamped, not rejected; non-finite input is
// silently ignored.
func (e *Engine) SetStartTime(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	e.setStart(t)
}

// SetEndTime applies a direct numeric edit of the end bound under the same
// clamp rules as SetStartTime
func (e *Engine) SetEndTime(t float64) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return
	}
	e.setEnd(t)
}

// setStart clamps and stores the start bound, then reports the interval
func (e *Engine) setStart(t float64) {
	e.startTime = clamp(t, 0, e.endTime-MinGap)
	e.notifyChange()
}

// setEnd clamps and stores the end bound, then reports the interval
func (e *Engine) setEnd(t float64) {
	e.endTime = clamp(t, e.startTime+MinGap, e.totalDuration)
	e.notifyChange()
}

// notifyChange reports the current interval to the owning context
func (e *Engine) notifyChange() {
	if e.onChange != nil {
		e.onChange(e.Range())
	}
}

// clamp bounds v to [min, max]; when the bounds cross, min wins
func clamp(v, min, max float64) float64 {
	if max < min {
		max = min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
