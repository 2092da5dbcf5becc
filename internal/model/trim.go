package model

// TrimRange represents the user-chosen [start, end] time sub-range of a
// source asset to retain, both bounds in seconds
type TrimRange struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Duration returns the length of the trimmed span in seconds
func (tr TrimRange) Duration() float64 {
	return tr.EndTime - tr.StartTime
}

// WaveformPoint holds the minimum and maximum signal amplitude observed in
// one time bucket of a rendered waveform summary
type WaveformPoint struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}
