package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/fingerprint"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show effective configuration and reference tables",
	Long: `Display seca-recon configuration information including:
  - Output directory and configuration file
  - Effective per-command settings
  - Reference security headers and signature technologies`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		cfg := appCtx.Config

		configPath := viper.ConfigFileUsed()
		configExists := "✗ (using defaults)"
		if configPath == "" {
			homeDir, _ := os.UserHomeDir()
			configPath = filepath.Join(homeDir, defaultConfigName+".yaml")
		}
		if _, err := os.Stat(configPath); err == nil {
			configExists = "✓ (exists)"
		}

		outputExists := "✗ (not created yet)"
		if _, err := os.Stat(appCtx.OutputDir); err == nil {
			outputExists = "✓ (exists)"
		}

		resolvers := "system"
		if len(cfg.Subdomains.Resolvers) > 0 {
			resolvers = strings.Join(cfg.Subdomains.Resolvers, ", ")
		}

		// Get output writer (for testing support)
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "SECA-RECON System Information")
		fmt.Fprintln(out, "=============================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Version:              %s\n", Version)
		fmt.Fprintf(out, "Platform:             %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Output Directory:     %s %s\n", appCtx.OutputDir, outputExists)
		fmt.Fprintf(out, "Configuration File:   %s %s\n", configPath, configExists)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "headers:")
		fmt.Fprintf(out, "  Concurrency:        %d\n", cfg.Headers.Concurrency)
		fmt.Fprintf(out, "  Timeout:            %ds\n", cfg.Headers.TimeoutSecs)
		fmt.Fprintln(out, "subdomains:")
		fmt.Fprintf(out, "  Workers:            %d\n", cfg.Subdomains.Workers)
		fmt.Fprintf(out, "  Resolvers:          %s\n", resolvers)
		fmt.Fprintf(out, "  Rate Limit:         %d/s\n", cfg.Subdomains.RateLimit)
		fmt.Fprintln(out, "tech:")
		fmt.Fprintf(out, "  Concurrency:        %d\n", cfg.Tech.Concurrency)
		fmt.Fprintf(out, "  Timeout:            %ds\n", cfg.Tech.TimeoutSecs)
		fmt.Fprintf(out, "  User-Agent:         %s\n", cfg.Tech.UserAgent)
		fmt.Fprintf(out, "  Wappalyzer:         %t\n", cfg.Tech.Wappalyzer)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Reference Headers:")
		for _, ref := range checker.ReferenceHeaders() {
			fmt.Fprintf(out, "  %-26s %s\n", ref.Name, ref.Rationale)
		}
		fmt.Fprintln(out)

		table := fingerprint.DefaultSignatures()
		source := "built-in"
		if cfg.Tech.Signatures != "" {
			loaded, err := fingerprint.LoadSignatures(cfg.Tech.Signatures)
			if err != nil {
				return err
			}
			table = loaded
			source = cfg.Tech.Signatures
		}
		fmt.Fprintf(out, "Signature Technologies (%s):\n", source)
		fmt.Fprintf(out, "  %s\n", strings.Join(table.Technologies(), ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To override defaults, create ~/.seca-recon.yaml with e.g.:")
		fmt.Fprintln(out, "  output_dir: /custom/path/to/reports")
		fmt.Fprintln(out, "  subdomains:")
		fmt.Fprintln(out, "    workers: 20")

		return nil
	},
}
