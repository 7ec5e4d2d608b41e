package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reflow",
	Short: "Reflow comments in source files",
	Long: `reflow rewraps //, /* */ and /** */ comments in C-family source files
to a line width, keeping doc tags, HTML structure and <pre> blocks intact.

Preferences come from .reflow.yaml, REFLOW_* environment variables (a .env
file is read first) and command-line flags, in increasing precedence.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagWidth     int
)

// Loaded by setup before any subcommand runs.
var (
	cfg    Config
	logger *slog.Logger
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Preferences file (default: "+defaultConfigFile+" if present)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	pf.IntVar(&flagWidth, "width", 0, "Maximum line width")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = flagLogFormat
	}
	if flags.Changed("width") {
		c.LineWidth = flagWidth
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	cfg = c
	logger = newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
