package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sungur/minitext/internal/config"
	"github.com/sungur/minitext/internal/log"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(loadedConfig)
			if err != nil {
				return err
			}
			log.Write(string(data))
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return initConfig(loadedConfigPath, force)
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			log.Raw(loadedConfigPath)
		},
	}

	cmd.AddCommand(show, initCmd, path)
	return cmd
}

func initConfig(path string, force bool) error {
	if path == "" {
		return fmt.Errorf("cannot determine the config directory; pass --config")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveConfig(path, config.Defaults()); err != nil {
		return err
	}
	log.Success("Wrote " + path)
	return nil
}
