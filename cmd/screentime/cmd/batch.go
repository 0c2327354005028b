package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/screentime/internal/batch"
)

// batchCmd processes whole directories of screenshots in parallel.
var batchCmd = &cobra.Command{
	Use:   "batch <path> [paths...]",
	Short: "Process many screenshots in parallel",
	Long: `Discover screenshot files under the given paths and extract them with
a pool of parallel workers. A failing image is reported and skipped;
the rest of the batch continues.

Examples:
  screentime batch ./screenshots
  screentime batch ./screenshots --recursive --workers 8
  screentime batch ./a ./b --include "*.png" --format csv -o report.csv
  screentime batch ./details --mode category --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := buildExtractor(cmd)
		if err != nil {
			return err
		}

		cfg := GetConfig()
		bcfg := batch.DefaultConfig()
		bcfg.Workers = cfg.Batch.Workers
		bcfg.Recursive = cfg.Batch.Recursive
		bcfg.ContinueOnError = cfg.Batch.ContinueOnError
		bcfg.Format = cfg.Output.Format

		if cmd.Flags().Changed("mode") {
			mode, _ := cmd.Flags().GetString("mode")
			bcfg.Mode = batch.Mode(mode)
		}
		if cmd.Flags().Changed("workers") {
			bcfg.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("recursive") {
			bcfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		}
		if cmd.Flags().Changed("continue-on-error") {
			bcfg.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
		}
		if cmd.Flags().Changed("format") {
			bcfg.Format, _ = cmd.Flags().GetString("format")
		}
		bcfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
		bcfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		showStats, _ := cmd.Flags().GetBool("stats")

		result, err := batch.ProcessBatch(cmd.Context(), ex, args, bcfg)
		if err != nil {
			return err
		}
		if err := result.SaveResults(bcfg.Format, outputFile, quiet); err != nil {
			return err
		}
		if showStats {
			result.PrintStats(quiet)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("mode", string(batch.ModeOverall), "screenshot kind: overall or category")
	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().Bool("continue-on-error", true, "record failed images and keep going")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of file names to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of file names to exclude")
	batchCmd.Flags().StringP("format", "f", "text", "output format: text, json, or csv")
	batchCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress non-result output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
}
