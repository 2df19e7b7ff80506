package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-recon/internal/report"
)

const defaultConfigName = ".seca-recon"

var cfgFile string
var outputDir string
var verbose bool
var noProgress bool
var noColor bool

var rootCmd = &cobra.Command{
	Use:   "seca-recon",
	Short: "Reconnaissance helpers for web security assessments (authorized testing only)",
	Long: `seca-recon bundles three independent reconnaissance utilities:

  headers     audit HTTP security response headers
  subdomains  enumerate subdomains from certificate transparency logs
  tech        fingerprint web technology stacks`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(defaultConfigName)
			viper.SetConfigType("yaml")
		}
		configErr := viper.ReadInConfig()

		applyConfigDefaults(cmd)
		cliConfig.ProgressEnabled = !noProgress
		setColorOutput(!noColor)

		// init logger
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialise logger: %w", err)
		}
		logger := l.Sugar()

		if cfgFile != "" && configErr != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, configErr)
		}

		dir := outputDir
		if dir == "" {
			dir = "."
		}
		if err := report.EnsureDir(dir); err != nil {
			return &OutputPathError{Path: dir, Err: err}
		}
		// Make final output dir absolute (for clarity in logs)
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}

		logger.Debugf("output_dir=%s config=%s", dir, viper.ConfigFileUsed())

		storeAppContext(cmd, &AppContext{
			Logger:    logger,
			OutputDir: dir,
			Config:    cliConfig,
		})
		return nil
	},
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM. In-flight
// probes then fail fast on their own deadlines and partial results are still
// reported.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Printf("\n%s Received %s, finalizing partial results...\n", colorWarn("!"), sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seca-recon.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", ".", "directory that receives report files")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// add subcommands
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(subdomainsCmd)
	rootCmd.AddCommand(techCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}
