package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ytget/sample-downloader/internal/platform"
)

// Settings file name inside the user config directory
const SettingsFileName = "settings.json"

// Environment override keys
const (
	EnvDownloadDir    = "SAMPLER_DOWNLOAD_DIR"
	EnvFFmpegPath     = "FFMPEG_PATH"
	EnvFFprobePath    = "FFPROBE_PATH"
	EnvAudioBitrate   = "AUDIO_BITRATE_KBPS"
	EnvWaveformPoints = "WAVEFORM_POINTS"
	EnvLogLevel       = "LOG_LEVEL"
)

// Default values
const (
	DefaultBitrateKbps    = 192
	DefaultWaveformPoints = 200
	DefaultFFmpegPath     = "ffmpeg"
	DefaultFFprobePath    = "ffprobe"
	DefaultLogLevel       = "info"
)

// Settings manages application configuration persisted as JSON under the
// user config directory; environment variables take precedence over the file
type Settings struct {
	DownloadDir    string `json:"download_dir"`
	BitrateKbps    int    `json:"bitrate_kbps"`
	WaveformPoints int    `json:"waveform_points"`
	FFmpegPath     string `json:"ffmpeg_path"`
	FFprobePath    string `json:"ffprobe_path"`
	LogLevel       string `json:"log_level"`
	LogPath        string `json:"log_path,omitempty"`
}

// DefaultSettings returns settings populated with built-in defaults
func DefaultSettings() *Settings {
	downloadDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloadDir = "."
	}

	return &Settings{
		DownloadDir:    downloadDir,
		BitrateKbps:    DefaultBitrateKbps,
		WaveformPoints: DefaultWaveformPoints,
		FFmpegPath:     DefaultFFmpegPath,
		FFprobePath:    DefaultFFprobePath,
		LogLevel:       DefaultLogLevel,
	}
}

// SettingsPath returns the location of the settings file
func SettingsPath() (string, error) {
	dir, err := platform.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// Load reads settings from path, falling back to defaults when the file does
// not exist, then applies environment overrides. A .env file in the working
// directory is honored but never overrides existing environment variables.
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run, keep defaults
	default:
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	settings.applyEnv()
	settings.normalize()
	return settings, nil
}

// Save writes settings as indented JSON, creating parent directories as
// needed
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), platform.DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides file values with environment variables when present
func (s *Settings) applyEnv() {
	s.DownloadDir = getEnv(EnvDownloadDir, s.DownloadDir)
	s.FFmpegPath = getEnv(EnvFFmpegPath, s.FFmpegPath)
	s.FFprobePath = getEnv(EnvFFprobePath, s.FFprobePath)
	s.BitrateKbps = getEnvInt(EnvAudioBitrate, s.BitrateKbps)
	s.WaveformPoints = getEnvInt(EnvWaveformPoints, s.WaveformPoints)
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
}

// normalize clamps values a hand-edited settings file could have broken
func (s *Settings) normalize() {
	if s.BitrateKbps != 128 && s.BitrateKbps != 192 && s.BitrateKbps != 256 && s.BitrateKbps != 320 {
		s.BitrateKbps = DefaultBitrateKbps
	}
	if s.WaveformPoints < 16 {
		s.WaveformPoints = DefaultWaveformPoints
	}
	if s.FFmpegPath == "" {
		s.FFmpegPath = DefaultFFmpegPath
	}
	if s.FFprobePath == "" {
		s.FFprobePath = DefaultFFprobePath
	}
}

// getEnv gets an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a fallback value
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
