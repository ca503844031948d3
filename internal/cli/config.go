package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := opts.ConfigPath
		if path == "" {
			var err error
			path, err = config.Path()
			if err != nil {
				return err
			}
		}
		fmt.Println(path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file for errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadForInspection(); err != nil {
			return err
		}
		fmt.Println("configuration is valid")
		return nil
	},
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadForInspection()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

func loadForInspection() (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.LoadFromPath(opts.ConfigPath)
	}
	return config.Load()
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPrintCmd)
}
