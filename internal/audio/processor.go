package audio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/sample-downloader/internal/logger"
	"github.com/ytget/sample-downloader/internal/model"
)

// FFmpeg constants for transcode settings
const (
	// Audio codec settings
	AudioCodec = "libmp3lame"

	// Executable and I/O constants
	DefaultFFmpegCommand  = "ffmpeg"
	DefaultFFprobeCommand = "ffprobe"
	FFprobeLogLevel       = "error"
	FFprobeShowEntries    = "format=duration"
	FFprobeOutputFormat   = "csv=p=0"
	ProgressPipeTarget    = "pipe:2"
	ProgressTimePrefix    = "out_time_us="

	// Supported MP3 bitrates in kbps; anything else falls back to the default
	DefaultBitrateKbps = 192
)

// ConvertOptions controls a single transcode run
type ConvertOptions struct {
	// Trim, when non-nil, keeps only the [StartTime, EndTime] span
	Trim *model.TrimRange

	// ID3 metadata written into the output
	Title  string
	Artist string

	// CoverPath, when non-empty, is embedded as front cover art
	CoverPath string
}

// Processor shells out to ffmpeg/ffprobe for transcoding and probing
type Processor struct {
	ffmpegPath  string
	ffprobePath string
	bitrateKbps int
}

// NewProcessor creates a processor with explicit tool paths and bitrate
func NewProcessor(ffmpegPath, ffprobePath string, bitrateKbps int) *Processor {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobeCommand
	}
	switch bitrateKbps {
	case 128, 192, 256, 320:
	default:
		bitrateKbps = DefaultBitrateKbps
	}
	return &Processor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		bitrateKbps: bitrateKbps,
	}
}

// Convert transcodes inputPath to an MP3 at outputPath, applying the trim
// span and ID3 metadata from opts. onProgress, when non-nil, receives the
// completed fraction in [0, 1].
func (p *Processor) Convert(ctx context.Context, inputPath, outputPath string, opts ConvertOptions, onProgress func(fraction float64)) error {
	totalDuration, err := p.ProbeDuration(inputPath)
	if err != nil {
		logger.Warn("duration probe failed, progress reporting disabled", zap.Error(err))
		totalDuration = 0
	}
	if opts.Trim != nil {
		totalDuration = opts.Trim.Duration()
	}

	args := p.BuildConvertArgs(inputPath, outputPath, opts)
	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		monitorProgress(stderr, totalDuration, onProgress)
	}()

	err = cmd.Wait()
	<-done

	if err != nil {
		// partial output is useless, remove it
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// BuildConvertArgs builds the ffmpeg command arguments for a transcode run
func (p *Processor) BuildConvertArgs(inputPath, outputPath string, opts ConvertOptions) []string {
	args := []string{"-y"}

	// Seek flags before the input make the trim a cheap demuxer-level seek
	if opts.Trim != nil {
		args = append(args,
			"-ss", formatSeconds(opts.Trim.StartTime),
			"-to", formatSeconds(opts.Trim.EndTime),
		)
	}

	args = append(args, "-i", inputPath)

	if opts.CoverPath != "" {
		args = append(args,
			"-i", opts.CoverPath,
			"-map", "0:a",
			"-map", "1:0",
			"-c:v", "mjpeg",
			"-disposition:v", "attached_pic",
			"-metadata:s:v", "title=Cover",
		)
	} else {
		args = append(args, "-map", "0:a")
	}

	args = append(args,
		"-c:a", AudioCodec,
		"-b:a", fmt.Sprintf("%dk", p.bitrateKbps),
		"-id3v2_version", "4",
	)

	if opts.Title != "" {
		args = append(args, "-metadata", "title="+opts.Title)
	}
	if opts.Artist != "" {
		args = append(args, "-metadata", "artist="+opts.Artist)
	}

	args = append(args,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	)
	return args
}

// ProbeDuration returns the duration of a media file in seconds using ffprobe
func (p *Processor) ProbeDuration(filePath string) (float64, error) {
	cmd := exec.Command(p.ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}
	return duration, nil
}

// monitorProgress parses ffmpeg -progress output lines (out_time_us=N) and
// reports completed fractions
func monitorProgress(r io.Reader, totalDuration float64, onProgress func(fraction float64)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}

		timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}

		if onProgress == nil || totalDuration <= 0 {
			continue
		}

		fraction := float64(timeMicroseconds) / 1e6 / totalDuration
		if fraction > 1.0 {
			fraction = 1.0
		}
		onProgress(fraction)
	}
}

// formatSeconds renders a second offset the way ffmpeg seek flags expect
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
