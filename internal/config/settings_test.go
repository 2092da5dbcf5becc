package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.BitrateKbps != DefaultBitrateKbps {
		t.Errorf("Expected bitrate %d, got %d", DefaultBitrateKbps, settings.BitrateKbps)
	}
	if settings.WaveformPoints != DefaultWaveformPoints {
		t.Errorf("Expected waveform points %d, got %d", DefaultWaveformPoints, settings.WaveformPoints)
	}
	if settings.DownloadDir == "" {
		t.Error("Expected non-empty download directory")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}

	if settings.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("Expected default ffmpeg path, got %q", settings.FFmpegPath)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	settings := DefaultSettings()
	settings.DownloadDir = "/music/samples"
	settings.BitrateKbps = 320

	if err := settings.Save(path); err != nil {
		t.Fatalf("Expected no error saving, got %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error loading, got %v", err)
	}

	if loaded.DownloadDir != "/music/samples" {
		t.Errorf("Expected download dir '/music/samples', got %q", loaded.DownloadDir)
	}
	if loaded.BitrateKbps != 320 {
		t.Errorf("Expected bitrate 320, got %d", loaded.BitrateKbps)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	os.Setenv(EnvDownloadDir, "/from/env")
	os.Setenv(EnvAudioBitrate, "256")
	defer os.Unsetenv(EnvDownloadDir)
	defer os.Unsetenv(EnvAudioBitrate)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.DownloadDir != "/from/env" {
		t.Errorf("Expected env override '/from/env', got %q", settings.DownloadDir)
	}
	if settings.BitrateKbps != 256 {
		t.Errorf("Expected env override 256, got %d", settings.BitrateKbps)
	}
}

func TestLoad_NormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"download_dir": "/x", "bitrate_kbps": 999, "waveform_points": 2, "ffmpeg_path": ""}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if settings.BitrateKbps != DefaultBitrateKbps {
		t.Errorf("Expected bitrate normalized to %d, got %d", DefaultBitrateKbps, settings.BitrateKbps)
	}
	if settings.WaveformPoints != DefaultWaveformPoints {
		t.Errorf("Expected waveform points normalized to %d, got %d", DefaultWaveformPoints, settings.WaveformPoints)
	}
	if settings.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("Expected ffmpeg path normalized, got %q", settings.FFmpegPath)
	}
}
