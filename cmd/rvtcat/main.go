// Command rvtcat feeds a byte stream through the rvt terminal emulator and
// writes out either a rendered screen snapshot or a ttyrec transcript.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rvtlib/rvt"
)

// zapLogProvider adapts a zap.Logger to rvt.LogProvider, logging every
// malformed-sequence diagnostic as a warning.
type zapLogProvider struct {
	logger *zap.Logger
}

func (p zapLogProvider) Log(message string) {
	p.logger.Warn(message)
}

var _ rvt.LogProvider = zapLogProvider{}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "rvtcat",
		Short:         "Render or replay a VT byte stream through the rvt terminal emulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRenderCmd(logger))
	root.AddCommand(newTranscriptCmd(logger))
	return root
}

func newRenderCmd(logger *zap.Logger) *cobra.Command {
	var format string
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Feed a byte stream (or stdin) through the emulator and render the resulting screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			screen := rvt.NewScreen(rows, cols)
			emu := rvt.NewEmulator(screen,
				rvt.WithLogProvider(zapLogProvider{logger}),
				rvt.WithResponseProvider(io.Discard),
			)
			emu.Feed(data)

			sink := rvt.NewGrowableSink(nil)
			switch format {
			case "json":
				err = rvt.RenderJSON(emu.WindowTitle(), screen, rvt.XtermPalette, sink, nil)
			case "ansi":
				err = rvt.RenderANSI(emu.WindowTitle(), screen, rvt.XtermPalette, sink, nil)
			default:
				return fmt.Errorf("unknown format %q, want json or ansi", format)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(sink.Bytes())
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or ansi")
	cmd.Flags().IntVar(&rows, "rows", 24, "screen height")
	cmd.Flags().IntVar(&cols, "cols", 80, "screen width")
	return cmd
}

func newTranscriptCmd(logger *zap.Logger) *cobra.Command {
	var datetime bool
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "transcript <ttyrec-file>",
		Short: "Replay a ttyrec recording and emit its plain-text transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			screen := rvt.NewScreen(rows, cols)
			emu := rvt.NewEmulator(screen, rvt.WithLogProvider(zapLogProvider{logger}))

			prefix := rvt.PrefixNone
			if datetime {
				prefix = rvt.PrefixDatetime
			}

			sink := rvt.NewGrowableSink(nil)
			if err := rvt.ReplayTtyrec(f, emu, screen, prefix, sink); err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(sink.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVar(&datetime, "datetime", false, "prefix each logical line with the frame's local wall-clock time")
	cmd.Flags().IntVar(&rows, "rows", 24, "screen height")
	cmd.Flags().IntVar(&cols, "cols", 80, "screen width")
	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
