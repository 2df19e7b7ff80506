package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/report"
)

var (
	headersURL   string
	headersInput string
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Audit HTTP security response headers",
	Long: `Fetch each target once and compare its response headers against the
reference set (CSP, HSTS, X-Frame-Options, X-Content-Type-Options,
Referrer-Policy). Writes headers_report.json and headers_report.md.`,
	Example: `  seca-recon headers --url https://example.com
  seca-recon headers --input targets.txt --concurrency 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		out := cmd.OutOrStdout()

		targets, err := collectTargets(headersURL, headersInput)
		if err != nil {
			return err
		}
		if targets == nil {
			fmt.Fprintln(out, "Provide --url or --input")
			return nil
		}

		cfg := appCtx.Config.Headers
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		auditor := checker.NewHeaderAuditor(time.Duration(cfg.TimeoutSecs)*time.Second, appCtx.zapLogger())
		results := runBatch[checker.HeaderCheckResult](ctx, out, appCtx.Config.ProgressEnabled, auditor, targets, cfg.Concurrency,
			func(r checker.HeaderCheckResult) bool { return !r.Failed() })

		writer, err := report.NewWriter(appCtx.OutputDir)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}
		paths, err := writer.WriteHeadersReport(results)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}

		printHeadersSummary(cmd, results)
		fmt.Fprintf(out, "%s Report written: %s / %s\n", colorSuccess("✓"), paths[0], paths[1])
		appCtx.Logger.Infow("headers audit finished", "targets", len(targets), "output_dir", appCtx.OutputDir)
		return nil
	},
}

func printHeadersSummary(cmd *cobra.Command, results []checker.HeaderCheckResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(out, "  %s %s: %s\n", formatStatusWithColor("error"), r.URL, r.Error)
			continue
		}
		status := "ok"
		if len(r.Missing) > 0 {
			status = "missing"
		}
		fmt.Fprintf(out, "  %s %s (HTTP %d) present:%d missing:%d\n",
			formatStatusWithColor(status), r.URL, r.StatusCode, len(r.Present), len(r.Missing))
	}
}

func init() {
	headersCmd.Flags().StringVar(&headersURL, "url", "", "single URL to check")
	headersCmd.Flags().StringVar(&headersInput, "input", "", "file with URLs, one per line")
	headersCmd.Flags().IntVar(&cliConfig.Headers.Concurrency, "concurrency", cliConfig.Headers.Concurrency, "number of targets checked in parallel")
	headersCmd.Flags().IntVar(&cliConfig.Headers.TimeoutSecs, "timeout", cliConfig.Headers.TimeoutSecs, "per-request timeout in seconds")
}
