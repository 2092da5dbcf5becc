package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/sample-downloader/internal/model"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Characters not allowed in output filenames across supported platforms
const (
	UnsafeFilenameChars = "/\\:*?\"<>|"
	SafeReplacement     = '_'
)

// Output naming constants
const (
	FinalExtension = ".mp3"
	TempExtension  = ".m4a"
	TempSuffix     = "_temp"
)

// SanitizeFilename replaces characters that are unsafe in filenames with
// underscores
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(UnsafeFilenameChars, r) {
			return SafeReplacement
		}
		return r
	}, name)
}

// OutputFileName builds the final artifact filename for a download. Trimmed
// clips carry a time-range suffix so they never collide with the full track.
func OutputFileName(artist, title string, trim *model.TrimRange) string {
	base := fmt.Sprintf("%s - %s", SanitizeFilename(artist), SanitizeFilename(title))
	if trim != nil {
		base += fmt.Sprintf("_%.0f-%.0fs", trim.StartTime, trim.EndTime)
	}
	return base + FinalExtension
}

// TempFileName builds the intermediate m4a filename used before transcoding
func TempFileName(artist, title string) string {
	return fmt.Sprintf("%s - %s%s%s",
		SanitizeFilename(artist), SanitizeFilename(title), TempSuffix, TempExtension)
}

// GetHomeDownloadsDir returns the user's Downloads directory, creating it if
// missing
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	dir := filepath.Join(home, "Downloads")
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}
	return dir, nil
}

// GetConfigDir returns the per-user configuration directory for the app
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, "sample-downloader"), nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
