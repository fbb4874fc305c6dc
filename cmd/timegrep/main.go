// Command timegrep extracts contiguous runs of lines from time-stamped log
// files, or from standard input, whose embedded timestamps fall within a
// half-open interval.
//
// Logging:
//   - Base logger is created here with output format and level
//   - No global slog configuration (no slog.SetDefault)
//   - Diagnostics go to standard error; matched lines go to standard output
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"timegrep/internal/argtime"
	"timegrep/internal/filepattern"
	"timegrep/internal/logging"
	"timegrep/internal/namedformat"
	"timegrep/internal/randomaccess"
	"timegrep/internal/status"
	"timegrep/internal/streaming"
	"timegrep/internal/tsextract"
	"timegrep/internal/tsformat"
)

var version = "dev"

func main() {
	logger := logging.Default(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, logger))
}

// options holds the parsed flag values; it exists separately from the
// cobra.Command so run's exit-code logic can inspect them after Execute.
type options struct {
	format      string
	start       string
	stop        string
	seconds     int
	minutes     int
	hours       int
	showVersion bool
	showHelp    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	logger = logging.Default(logger)
	var opts options
	exitCode := 2

	rootCmd := &cobra.Command{
		Use:           "timegrep [flags] [file ...]",
		Short:         "Extract time-ranged lines from time-stamped log files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, fileArgs []string) error {
			if opts.showVersion {
				fmt.Fprintf(stdout, "timegrep %s\n", version)
				exitCode = 0
				return nil
			}

			st, err := execute(fileArgs, opts, stdin, stdout, logger)
			if err != nil {
				exitCode = 2
				return err
			}
			if st == status.Found {
				exitCode = 0
			} else {
				exitCode = 1
			}
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Registering a flag literally named "help" makes cobra skip adding its
	// own --help/-h and instead short-circuit execution through HelpFunc
	// whenever it's set, so the format table is shown here rather than in
	// RunE (which never runs on that path).
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printUsage(stdout)
	})
	rootCmd.Flags().BoolVarP(&opts.showHelp, "help", "?", false, "show usage and the named-format table")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "print program name and version")
	rootCmd.Flags().StringVarP(&opts.format, "format", "e", "default", "named format or literal strptime-style format string")
	rootCmd.Flags().StringVarP(&opts.start, "start", "f", "", "inclusive lower bound (default: the stop time minus the computed offset)")
	rootCmd.Flags().StringVarP(&opts.stop, "stop", "t", "", "exclusive upper bound (default: now)")
	rootCmd.Flags().IntVarP(&opts.seconds, "seconds", "s", 0, "seconds added to the computed offset from now")
	rootCmd.Flags().IntVarP(&opts.minutes, "minutes", "m", 0, "minutes added to the computed offset from now")
	rootCmd.Flags().IntVarP(&opts.hours, "hours", "h", 0, "hours added to the computed offset from now")

	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("timegrep", "error", err)
		return 2
	}
	if opts.showHelp {
		return 0
	}
	return exitCode
}

// execute resolves the active format and time bounds, then dispatches to
// the random-access driver (one region per file argument) or the streaming
// driver (standard input, when no file arguments were given).
func execute(fileArgs []string, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) (status.Status, error) {
	formatString, err := namedformat.Resolve(opts.format)
	if err != nil {
		return status.Error, err
	}

	matcher, err := tsformat.Compile(formatString)
	if err != nil {
		return status.Error, err
	}
	extractor := tsextract.New(matcher, localOffsetSeconds())

	start, stop, err := resolveBounds(opts, formatString, extractor.LocalOffsetSeconds)
	if err != nil {
		return status.Error, err
	}

	if len(fileArgs) == 0 {
		logger.Info("reading from standard input", "format", opts.format)
		return streaming.Run(stdout, stdin, extractor, start, stop, streaming.DefaultChunkSize)
	}

	paths, err := filepattern.Expand(fileArgs)
	if err != nil {
		return status.Error, err
	}

	last := status.NotFound
	for _, path := range paths {
		logger.Info("processing file", "path", path)
		st, err := runFile(stdout, path, extractor, start, stop)
		if err != nil {
			return status.Error, err
		}
		last = st
	}
	return last, nil
}

// runFile mirrors the original tool's per-argument loop: a zero-length file
// produces no output and is reported as NotFound, not an error.
func runFile(stdout io.Writer, path string, extractor *tsextract.Extractor, start, stop int64) (status.Status, error) {
	region, err := randomaccess.Open(path)
	if err != nil {
		if errors.Is(err, randomaccess.ErrEmptyFile) {
			return status.NotFound, nil
		}
		return status.Error, fmt.Errorf("%s: %w", path, err)
	}
	defer region.Close()

	st, err := randomaccess.Run(stdout, region, extractor, start, stop, randomaccess.DefaultChunkSize)
	if err != nil {
		return status.Error, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// resolveBounds computes [start, stop) in epoch seconds. An unspecified stop
// defaults to now, and an unspecified start to stop minus the
// --seconds/--minutes/--hours offset; an explicit value is parsed against
// the active format, falling back to the fixed heuristic chain.
func resolveBounds(opts options, formatString string, localOffsetSeconds int) (int64, int64, error) {
	now := currentEpochSeconds()
	offset := int64(opts.seconds) + int64(opts.minutes)*60 + int64(opts.hours)*3600

	stop := now
	if opts.stop != "" {
		v, err := argtime.Parse(opts.stop, formatString, localOffsetSeconds)
		if err != nil {
			return 0, 0, fmt.Errorf("--stop: %w", err)
		}
		stop = v
	}

	start := stop - offset
	if opts.start != "" {
		v, err := argtime.Parse(opts.start, formatString, localOffsetSeconds)
		if err != nil {
			return 0, 0, fmt.Errorf("--start: %w", err)
		}
		start = v
	}

	return start, stop, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: timegrep [flags] [file ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -e, --format <name|format>  named format or literal strptime-style format (default \"default\")")
	fmt.Fprintln(w, "  -f, --start <datetime>      inclusive lower bound (default: stop minus the offset)")
	fmt.Fprintln(w, "  -t, --stop <datetime>       exclusive upper bound (default: now)")
	fmt.Fprintln(w, "  -s, --seconds <n>           seconds added to the computed offset from now")
	fmt.Fprintln(w, "  -m, --minutes <n>           minutes added to the computed offset from now")
	fmt.Fprintln(w, "  -h, --hours <n>             hours added to the computed offset from now")
	fmt.Fprintln(w, "  -v, --version               print program name and version")
	fmt.Fprintln(w, "  -?, --help                  show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "named formats:")
	for _, name := range namedformat.Names() {
		f, err := namedformat.Resolve(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %-8s %s\n", name, f)
	}
}

// localOffsetSeconds returns the process-wide local-time offset from the
// operating system's time database, computed once at startup.
func localOffsetSeconds() int {
	_, offset := time.Now().Zone()
	return offset
}

func currentEpochSeconds() int64 {
	return time.Now().Unix()
}
