package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/screentime/internal/chart"
	"github.com/MeKo-Tech/screentime/internal/config"
)

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and generate configuration",
}

// configInitCmd writes a default configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := ""
		if len(args) > 0 {
			filename = args[0]
		}
		if err := config.GenerateDefaultConfigFile(filename); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		if filename == "" {
			filename = "screentime.yaml"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filename)
		return nil
	},
}

// configCalibrationCmd dumps the built-in color calibration so users
// can tune it for other themes.
var configCalibrationCmd = &cobra.Command{
	Use:   "calibration <file>",
	Short: "Write the default chart color calibration to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := chart.WriteCalibration(chart.DefaultCalibration(), args[0]); err != nil {
			return fmt.Errorf("writing calibration file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}

// configInfoCmd prints the resolved configuration sources.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration file and search paths",
	Run: func(cmd *cobra.Command, args []string) {
		GetConfigLoader().PrintConfigInfo()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCalibrationCmd)
	configCmd.AddCommand(configInfoCmd)
}
