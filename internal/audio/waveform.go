package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"

	"github.com/ytget/sample-downloader/internal/model"
)

// PCM extraction constants
const (
	// Waveform decoding downmixes to mono at a modest rate; extent summaries
	// do not need full fidelity
	WaveformSampleRate = 8000
	pcmBytesPerSample  = 2
	pcmScale           = 32768.0
)

// Waveform decodes an audio file and summarizes it into numPoints
// {min, max} buckets of signal extent
func (p *Processor) Waveform(ctx context.Context, filePath string, numPoints int) ([]model.WaveformPoint, error) {
	if numPoints <= 0 {
		return nil, fmt.Errorf("invalid waveform resolution: %d", numPoints)
	}

	args := []string{
		"-v", "error",
		"-i", filePath,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", WaveformSampleRate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)
	raw, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}

	samples := decodePCM16(raw)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", filePath)
	}

	return BucketSamples(samples, numPoints)
}

// BucketSamples reduces a mono sample stream to numPoints buckets, keeping
// the minimum and maximum amplitude seen in each bucket
func BucketSamples(samples []float32, numPoints int) ([]model.WaveformPoint, error) {
	samplesPerPoint := len(samples) / numPoints
	if samplesPerPoint == 0 {
		return nil, fmt.Errorf("audio too short for requested resolution %d", numPoints)
	}

	points := make([]model.WaveformPoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		start := i * samplesPerPoint
		end := (i + 1) * samplesPerPoint
		if end > len(samples) {
			end = len(samples)
		}

		minVal, maxVal := samples[start], samples[start]
		for _, sample := range samples[start+1 : end] {
			if sample < minVal {
				minVal = sample
			}
			if sample > maxVal {
				maxVal = sample
			}
		}

		points = append(points, model.WaveformPoint{Min: minVal, Max: maxVal})
	}
	return points, nil
}

// decodePCM16 converts little-endian 16-bit PCM bytes to normalized float32
// samples
func decodePCM16(raw []byte) []float32 {
	count := len(raw) / pcmBytesPerSample
	samples := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*pcmBytesPerSample:]))
		samples = append(samples, float32(v)/pcmScale)
	}
	return samples
}
