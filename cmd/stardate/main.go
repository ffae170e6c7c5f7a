// Package main provides the CLI entrypoint for stardate.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stardate/internal/config"
	"github.com/verte-zerg/stardate/internal/format"
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/store"
)

const progName = "stardate"

// errInputFailed reports that at least one date could not be converted. The
// per-input messages have already been printed.
var errInputFailed = errors.New("one or more dates could not be converted")

var (
	outStardate  bool
	outJulian    bool
	outGregorian bool
	outQuadcent  bool
	outUnix      bool
	outUnixHex   bool
	outDigits    int
	recordFlag   bool
	verboseFlag  bool

	historyLast  int
	historyKind  string
	historySince string
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(expandDigitsShorthand(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInputFailed) {
			logErrf("%s: %v\n", progName, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   progName + " [flags] [date...]",
		Short: "Convert between stardates and other calendars",
		Long: `Convert dates between stardates, the Julian and Gregorian calendars,
quadcent time and Unix time. With no dates, the current time is shown.

Input formats:
  [issue]integer.fraction   stardate, e.g. [21]00000.00 or [-2]9999.5
  YYYY=MM=DD[Thh:mm[:ss]]   Julian
  YYYY-MM-DD[Thh:mm[:ss]]   Gregorian
  YYYY*MM*DD[Thh:mm[:ss]]   quadcent
  U[-]seconds, U[-]0xhex    Unix time`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvertCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&outStardate, "stardate", "s", false, "output stardate")
	flags.BoolVarP(&outJulian, "julian", "j", false, "output Julian date")
	flags.BoolVarP(&outGregorian, "gregorian", "g", false, "output Gregorian date")
	flags.BoolVarP(&outQuadcent, "quadcent", "q", false, "output quadcent date")
	flags.BoolVarP(&outUnix, "unix", "u", false, "output Unix time")
	flags.BoolVarP(&outUnixHex, "unix-hex", "x", false, "output Unix time in hexadecimal")
	flags.IntVarP(&outDigits, "digits", "d", defaultDigits, "stardate fractional digits (0-6)")
	flags.BoolVar(&recordFlag, "record", false, "store conversions in the history database")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newClockCmd())

	return rootCmd
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, []format.Kind{format.Stardate})
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		now := instant.FromTime(time.Now())
		return writeLine(out, format.Line(now, s.kinds, s.opts))
	}

	var converted []model.Conversion
	failed := false
	for _, arg := range args {
		t, kind, err := format.Parse(arg)
		if err != nil {
			reportInputError(cmd.ErrOrStderr(), err)
			s.logger.Debug("conversion failed", "input", arg, "error", err)
			failed = true
			continue
		}
		s.logger.Debug("converted", "input", arg, "kind", kind.Name(), "instant", t.String())
		if err := writeLine(out, format.Line(t, s.kinds, s.opts)); err != nil {
			return err
		}
		if s.record {
			converted = append(converted, model.Conversion{
				Input:      arg,
				Kind:       kind.Name(),
				Instant:    t,
				RecordedAt: time.Now(),
			})
		}
	}

	if len(converted) > 0 {
		if err := recordConversions(cmd.Context(), s, converted); err != nil {
			return err
		}
	}
	if failed {
		return errInputFailed
	}
	return nil
}

func recordConversions(ctx context.Context, s *settings, converted []model.Conversion) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertConversion(ctx, converted...); err != nil {
		return fmt.Errorf("failed to record conversions: %w", err)
	}
	s.logger.Debug("recorded conversions", "count", len(converted))
	return nil
}

func reportInputError(w io.Writer, err error) {
	if _, werr := fmt.Fprintf(w, "%s: %v\n", progName, err); werr != nil {
		// Best-effort report to stderr.
		_ = werr
	}
}

func writeLine(w io.Writer, line string) error {
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
