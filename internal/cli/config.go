package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"stationpicker/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs := config.NewConfigService(config.WithFs(opts.fs), config.WithPath(opts.configPath))

			exists, err := afero.Exists(opts.fs, cs.Path())
			if err != nil {
				return fmt.Errorf("failed to stat config file: %w", err)
			}
			if exists && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cs.Path())
			}

			if err := cs.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cs.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cs := config.NewConfigService(config.WithFs(opts.fs), config.WithPath(opts.configPath))
			fmt.Fprintln(cmd.OutOrStdout(), cs.Path())
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
