package history

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/verte-zerg/stardate/internal/format"
)

const terminalWidthBackup = 80

// Render prints the kind summary followed by the conversion table, clipping
// lines to width columns.
func Render(w io.Writer, report Report, kinds []format.Kind, opts format.Options, width int) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, "No conversions recorded.")
		return err
	}
	if err := RenderSummary(w, report, width); err != nil {
		return err
	}
	return RenderTable(w, report, kinds, opts, width)
}

// RenderSummary prints how many conversions were read in each format.
func RenderSummary(w io.Writer, report Report, width int) error {
	total := 0
	counts := newGrid(column{title: "Read as"}, column{title: "Count", right: true})
	for _, kc := range report.Counts {
		total += kc.Count
		counts.add(kc.Kind, strconv.Itoa(kc.Count))
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Conversions: %d\n", total); err != nil {
		return err
	}
	if daily := DailyCounts(report.Records); len(daily) > 1 {
		line := fmt.Sprintf("Activity: %s", Sparkline(daily))
		if _, err := fmt.Fprintln(w, clip(line, width)); err != nil {
			return err
		}
	}
	for _, line := range counts.lines() {
		if _, err := fmt.Fprintln(w, clip(line, width)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTable prints one row per record with the instant rendered in kinds.
func RenderTable(w io.Writer, report Report, kinds []format.Kind, opts format.Options, width int) error {
	cols := []column{{title: "#", right: true}, {title: "Recorded"}, {title: "Input"}, {title: "Read as"}}
	for _, k := range kinds {
		cols = append(cols, column{title: k.Name()})
	}
	table := newGrid(cols...)
	for _, rec := range report.Records {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.RecordedAt.UTC().Format("2006-01-02 15:04"),
			rec.Input,
			rec.Kind,
		}
		for _, k := range kinds {
			row = append(row, k.Format(rec.Instant, opts))
		}
		table.add(row...)
	}
	if _, err := fmt.Fprintln(w, "Conversions"); err != nil {
		return err
	}
	for _, line := range table.lines() {
		if _, err := fmt.Fprintln(w, clip(line, width)); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth reports the width of the terminal behind f. It returns 0, which
// disables clipping, when f is not a terminal, and 80 columns when the size of
// a terminal cannot be read.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
