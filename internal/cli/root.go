// Package cli implements the translucenttb CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/AbhinandAK350/TranslucentTB/internal/app"
)

var opts app.Options

var rootCmd = &cobra.Command{
	Use:   "translucenttb",
	Short: "Make the Windows taskbar translucent",
	Long: `TranslucentTB applies an accent treatment (clear, blur, fluent or a
solid colour) to every taskbar and adjusts it while you work: maximised
windows, peek, search, the start menu and the timeline each get their
own configurable appearance.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(opts)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&opts.NoTray, "no-tray", false, "run without the tray icon")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
