package audio

import "testing"

func TestBucketSamples(t *testing.T) {
	samples := []float32{
		0.1, -0.5, 0.3, 0.2, // bucket 0: min -0.5, max 0.3
		-0.1, 0.9, -0.9, 0.0, // bucket 1: min -0.9, max 0.9
	}

	points, err := BucketSamples(samples, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(points))
	}

	if points[0].Min != -0.5 || points[0].Max != 0.3 {
		t.Errorf("Bucket 0: expected (-0.5, 0.3), got (%v, %v)", points[0].Min, points[0].Max)
	}
	if points[1].Min != -0.9 || points[1].Max != 0.9 {
		t.Errorf("Bucket 1: expected (-0.9, 0.9), got (%v, %v)", points[1].Min, points[1].Max)
	}
}

func TestBucketSamples_TooShort(t *testing.T) {
	if _, err := BucketSamples([]float32{0.1, 0.2}, 10); err == nil {
		t.Error("Expected error for audio shorter than the requested resolution")
	}
}

func TestBucketSamples_ExactDivision(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i%100) / 100
	}

	points, err := BucketSamples(samples, 200)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(points) != 200 {
		t.Errorf("Expected 200 points, got %d", len(points))
	}
}

func TestDecodePCM16(t *testing.T) {
	// 0x0000 = 0, 0x7FFF ~= 1.0, 0x8000 = -1.0
	raw := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}

	samples := decodePCM16(raw)
	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(samples))
	}

	if samples[0] != 0 {
		t.Errorf("Expected 0, got %v", samples[0])
	}
	if samples[1] <= 0.99 || samples[1] > 1.0 {
		t.Errorf("Expected ~1.0, got %v", samples[1])
	}
	if samples[2] != -1.0 {
		t.Errorf("Expected -1.0, got %v", samples[2])
	}
}

func TestDecodePCM16_IgnoresTrailingByte(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x01}
	samples := decodePCM16(raw)
	if len(samples) != 1 {
		t.Errorf("Expected 1 sample, got %d", len(samples))
	}
}
