package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/sample-downloader/internal/model"
	"github.com/ytget/sample-downloader/internal/trim"
)

const waveformRows = 8

func newWaveformCommand(ctx *commandContext) *cobra.Command {
	var widthFlag int
	var trimFlag string

	cmd := &cobra.Command{
		Use:   "waveform <audio-file>",
		Short: "Print an amplitude preview of a local audio file",
		Long:  "Decodes the file, buckets its samples and prints a character waveform.\nWith --trim, the selected clip range is marked.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, _, err := ctx.newProcessor()
			if err != nil {
				return err
			}

			points, err := processor.Waveform(cmd.Context(), args[0], widthFlag)
			if err != nil {
				return err
			}

			duration, err := processor.ProbeDuration(args[0])
			if err != nil {
				return err
			}

			engine := trim.NewEngine(duration, float64(widthFlag), waveformRows)
			engine.SetWaveform(points)
			if trimFlag != "" {
				trimRange, err := parseTrimRange(trimFlag)
				if err != nil {
					return err
				}
				engine.SetStartTime(trimRange.StartTime)
				engine.SetEndTime(trimRange.EndTime)
			}

			out := cmd.OutOrStdout()
			for _, line := range renderLines(engine.Render()) {
				fmt.Fprintln(out, line)
			}
			selected := engine.Range()
			fmt.Fprintf(out, "%s of %s selected\n",
				model.FormatDuration(int64(selected.Duration())),
				model.FormatDuration(int64(duration)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&widthFlag, "width", "w", 80, "preview width in characters")
	cmd.Flags().StringVarP(&trimFlag, "trim", "t", "", `clip range in seconds, "start-end"`)
	return cmd
}

// renderLines turns a render model into text rows: '#' inside the selection,
// '.' outside, '|' at the handle columns
func renderLines(rm trim.RenderModel) []string {
	rows := int(rm.Height)
	cols := len(rm.Columns)
	if rows <= 0 || cols == 0 {
		return nil
	}

	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		y := float64(row) + 0.5
		for _, col := range rm.Columns {
			switch {
			case y < col.YTop || y > col.YBottom:
				b.WriteByte(' ')
			case col.Selected:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		line := []byte(b.String())
		for _, x := range []float64{rm.StartX, rm.EndX} {
			i := int(x)
			if i >= len(line) {
				i = len(line) - 1
			}
			if i >= 0 {
				line[i] = '|'
			}
		}
		lines[row] = string(line)
	}
	return lines
}
