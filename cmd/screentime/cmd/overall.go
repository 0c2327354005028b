package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/screentime/internal/batch"
)

// overallCmd extracts overall summary screenshots.
var overallCmd = &cobra.Command{
	Use:   "overall <image> [images...]",
	Short: "Extract the full summary from overall screenshots",
	Long: `Extract total screen time, category breakdown, most used apps, and
the hourly usage chart from overall summary screenshots.

Examples:
  screentime overall summary.png
  screentime overall *.png --format json
  screentime overall summary.png --format csv -o summary.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtraction(cmd, args, batch.ModeOverall)
	},
}

// categoryCmd extracts category detail screenshots.
var categoryCmd = &cobra.Command{
	Use:   "category <image> [images...]",
	Short: "Extract the per-app breakdown from category detail screenshots",
	Long: `Extract the category name, its total time, and the ranked per-app
breakdown from category detail screenshots.

Examples:
  screentime category social.png
  screentime category social.png entertainment.png --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtraction(cmd, args, batch.ModeCategory)
	},
}

// runExtraction processes the named screenshots sequentially and writes
// the formatted results.
func runExtraction(cmd *cobra.Command, args []string, mode batch.Mode) error {
	ex, err := buildExtractor(cmd)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}

	bcfg := batch.DefaultConfig()
	bcfg.Mode = mode
	bcfg.Format = format
	bcfg.Workers = 1
	bcfg.ContinueOnError = false

	result, err := batch.ProcessBatch(cmd.Context(), ex, args, bcfg)
	if err != nil {
		return err
	}
	return result.SaveResults(format, outputFile, false)
}

func init() {
	rootCmd.AddCommand(overallCmd)
	rootCmd.AddCommand(categoryCmd)

	for _, c := range []*cobra.Command{overallCmd, categoryCmd} {
		c.Flags().StringP("format", "f", "text", "output format: text, json, or csv")
		c.Flags().StringP("output", "o", "", "output file (default stdout)")
	}
}
