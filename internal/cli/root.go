// Package cli provides the command-line interface for stationpicker.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"stationpicker/internal/config"
)

// rootOptions holds the persistent flags
type rootOptions struct {
	configPath string
	url        string
	logFile    string
	logLevel   string

	fs afero.Fs
}

// NewRootCmd creates the root command for stationpicker
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "stationpicker",
		Short: "Pick a trip between two SEPTA stations",
		Long: `A terminal search form with two station comboboxes. Type to filter,
use the arrow keys or the mouse to pick, and press F1 for the key reference.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.url, "url", "", "station list URL")
	flags.StringVar(&opts.logFile, "log-file", "", `log file, "-" for stderr`)
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")

	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides on top
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if err := config.LoadDotenv(".env"); err != nil {
		return nil, err
	}

	cs := config.NewConfigService(config.WithFs(opts.fs), config.WithPath(opts.configPath))
	cfg, err := cs.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Source.URL = opts.url
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	return cfg, nil
}
