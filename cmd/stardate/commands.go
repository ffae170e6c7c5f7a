package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/stardate/internal/config"
	"github.com/verte-zerg/stardate/internal/format"
	"github.com/verte-zerg/stardate/internal/history"
	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/store"
	"github.com/verte-zerg/stardate/internal/tui"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path, err := ensureConfigFile()
	if err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile() (string, error) {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write config: %w", err)
		}
	}
	return path, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded conversions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N conversions")
	cmd.Flags().StringVar(&historyKind, "kind", "", "only conversions read in this format (e.g. gregorian or g)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, []format.Kind{format.Stardate})
	if err != nil {
		return err
	}
	defer s.close()

	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	kindName, err := resolveKindName(historyKind)
	if err != nil {
		return err
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.HistoryConfig{Kind: kindName, Since: sinceTime, Last: historyLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := history.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	width := 0
	if f, ok := out.(*os.File); ok {
		width = history.TerminalWidth(f)
	}
	if err := history.Render(out, report, s.kinds, s.opts, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveKindName accepts a format name or its selector letter.
func resolveKindName(value string) (string, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "", nil
	}
	for _, k := range format.All {
		if value == k.Name() || value == string(k.Selector()) {
			return k.Name(), nil
		}
	}
	return "", fmt.Errorf("unknown format %q", value)
}

func newClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock",
		Short: "Live clock and interactive converter",
		Args:  cobra.NoArgs,
		RunE:  runClockCmd,
	}
}

func runClockCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, format.All)
	if err != nil {
		return err
	}
	defer s.close()

	opts := tui.Options{
		Kinds:  s.kinds,
		Format: s.opts,
		Logger: s.logger.Logger,
	}

	watcher, err := config.Watch(config.DefaultConfigPath(), s.logger.Logger)
	if err != nil {
		s.logger.Warn("config reload disabled", "error", err)
	} else {
		defer func() {
			if cerr := watcher.Close(); cerr != nil {
				logErrf("failed to stop config watcher: %v\n", cerr)
			}
		}()
		opts.Updates = watcher.Updates()
	}

	if s.record {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		opts.Store = st
	}

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run clock TUI: %w", err)
	}
	return nil
}
