package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/screentime/internal/chart"
	"github.com/MeKo-Tech/screentime/internal/config"
	"github.com/MeKo-Tech/screentime/internal/extract"
	"github.com/MeKo-Tech/screentime/internal/ocr"
	"github.com/MeKo-Tech/screentime/internal/version"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "screentime",
	Short: "Extract screen-time statistics from phone screenshots",
	Long: `screentime reads phone screen-time screenshots and recovers structured
usage data: total screen time, per-category breakdown, most used apps,
and the hourly usage bar chart.

Text is read with Tesseract OCR over two preprocessing passes; the
hourly chart is reconstructed directly from its pixels.

Examples:
  screentime overall summary.png
  screentime category social.png --format json
  screentime batch ./screenshots --recursive --format csv -o report.csv
  screentime serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "screentime version %s\n", ver)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags that apply to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/screentime, /etc/screentime)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("language", "eng", "Tesseract language code")
	rootCmd.PersistentFlags().String("calibration", "",
		"YAML color calibration file for themes the built-in table does not match")

	// Version flag for tests and usability
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("extraction.language", rootCmd.PersistentFlags().Lookup("language"))
	_ = viper.BindPFlag("extraction.calibration_file", rootCmd.PersistentFlags().Lookup("calibration"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Reload so late flag bindings are reflected.
	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}

	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}

// buildExtractor assembles the extraction pipeline from configuration
// and command flags.
func buildExtractor(cmd *cobra.Command) (*extract.Extractor, error) {
	cfg := GetConfig()

	ecfg, err := cfg.ExtractConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("calibration") {
		path, _ := cmd.Flags().GetString("calibration")
		cal, err := chart.LoadCalibration(path)
		if err != nil {
			return nil, fmt.Errorf("loading calibration: %w", err)
		}
		ecfg.Calibration = cal
	}

	language := cfg.Extraction.Language
	if cmd.Flags().Changed("language") {
		language, _ = cmd.Flags().GetString("language")
	}
	ecfg.Engine = ocr.NewTesseract(language)

	return extract.New(ecfg)
}
