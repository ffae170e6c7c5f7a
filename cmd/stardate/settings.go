package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/stardate/internal/config"
	"github.com/verte-zerg/stardate/internal/format"
	"github.com/verte-zerg/stardate/internal/logging"
	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/stardate"
)

const defaultDigits = stardate.DefaultDigits

// settings is the resolved configuration for one command run.
type settings struct {
	kinds   []format.Kind
	opts    format.Options
	record  bool
	logger  *logging.Logger
	fileCfg config.FileConfig
}

func (s *settings) close() {
	if err := s.logger.Close(); err != nil {
		logErrf("failed to close log file: %v\n", err)
	}
}

// loadSettings merges the config file with the command line. Flags win when
// set explicitly; fallback is used when neither selects any format.
func loadSettings(cmd *cobra.Command, fallback []format.Kind) (*settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	digits := outDigits
	record := recordFlag
	applyIntConfig(cmd, "digits", &digits, fileCfg.Output.Digits)
	applyBoolConfig(cmd, "record", &record, fileCfg.History.Record)

	kinds, err := resolveKinds(cmd, fileCfg, fallback)
	if err != nil {
		return nil, err
	}

	run := model.RunConfig{Formats: format.Selectors(kinds), Digits: digits, Record: record}
	if err := validateConfig(run); err != nil {
		return nil, err
	}

	logOpts := logging.Options{}
	applyStringConfig(&logOpts.Level, fileCfg.Log.Level)
	applyStringConfig(&logOpts.Format, fileCfg.Log.Format)
	applyStringConfig(&logOpts.File, fileCfg.Log.File)
	if verboseFlag {
		logOpts.Level = "debug"
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logOpts)
	if err != nil {
		return nil, fmt.Errorf("invalid [log] config: %w", err)
	}

	return &settings{
		kinds:   kinds,
		opts:    format.Options{Digits: run.Digits},
		record:  run.Record,
		logger:  logger,
		fileCfg: fileCfg,
	}, nil
}

var kindFlags = []struct {
	name string
	kind format.Kind
	set  *bool
}{
	{"stardate", format.Stardate, &outStardate},
	{"julian", format.Julian, &outJulian},
	{"gregorian", format.Gregorian, &outGregorian},
	{"quadcent", format.Quadcent, &outQuadcent},
	{"unix", format.Unix, &outUnix},
	{"unix-hex", format.UnixHex, &outUnixHex},
}

func resolveKinds(cmd *cobra.Command, fileCfg config.FileConfig, fallback []format.Kind) ([]format.Kind, error) {
	var kinds []format.Kind
	for _, kf := range kindFlags {
		if *kf.set {
			kinds = append(kinds, kf.kind)
		}
	}
	if len(kinds) > 0 {
		return kinds, nil
	}
	if fileCfg.Output.Formats != nil {
		selected, err := format.ParseSelectors(*fileCfg.Output.Formats)
		if err != nil {
			return nil, fmt.Errorf("invalid output.formats in config: %w", err)
		}
		if len(selected) > 0 {
			return selected, nil
		}
	}
	return fallback, nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringConfig(target, value *string) {
	if value == nil {
		return
	}
	*target = *value
}

func validateConfig(cfg model.RunConfig) error {
	if cfg.Digits < 0 || cfg.Digits > stardate.MaxDigits {
		return fmt.Errorf("--digits must be between 0 and %d", stardate.MaxDigits)
	}
	if cfg.Formats == "" {
		return fmt.Errorf("no output format selected")
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stardate configuration
# Uncomment a value to enable it. CLI flags override config values.

[output]
# formats = "s"           # Formats to print: s j g q u x
# digits = %d              # Stardate fractional digits (0-%d)

[history]
# record = false          # Store every conversion in the history database

[log]
# level = "info"          # debug, info, warn or error
# format = "text"         # text or json
# file = ""               # Also write logs to this rotating file
`,
		defaultDigits,
		stardate.MaxDigits,
	)
}
