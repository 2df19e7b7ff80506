package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-recon/internal/fingerprint"
	"github.com/khanhnv2901/seca-recon/internal/report"
)

var (
	techURL   string
	techInput string
)

var techCmd = &cobra.Command{
	Use:   "tech",
	Short: "Fingerprint web technology stacks",
	Long: `Fetch each target once and match its body, markup and headers against
a regex signature table. Writes <out>.json and <out>.md.`,
	Example: `  seca-recon tech --url https://example.com
  seca-recon tech --input targets.txt --out scan --wappalyzer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		out := cmd.OutOrStdout()

		targets, err := collectTargets(techURL, techInput)
		if err != nil {
			return err
		}
		if targets == nil {
			fmt.Fprintln(out, "Provide --url or --input")
			return nil
		}

		cfg := appCtx.Config.Tech
		table := fingerprint.DefaultSignatures()
		if cfg.Signatures != "" {
			table, err = fingerprint.LoadSignatures(cfg.Signatures)
			if err != nil {
				return err
			}
			appCtx.Logger.Debugf("loaded %d signatures from %s", len(table.Technologies()), cfg.Signatures)
		}

		fp, err := fingerprint.New(fingerprint.Options{
			Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
			UserAgent:  cfg.UserAgent,
			Signatures: table,
			Wappalyzer: cfg.Wappalyzer,
			Logger:     appCtx.zapLogger(),
		})
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		results := runBatch[fingerprint.FingerprintResult](ctx, out, appCtx.Config.ProgressEnabled, fp, targets, cfg.Concurrency,
			func(r fingerprint.FingerprintResult) bool { return !r.Failed() })

		writer, err := report.NewWriter(appCtx.OutputDir)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}
		paths, err := writer.WriteTechReport(cfg.Out, results)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}

		for _, r := range results {
			if r.Failed() {
				fmt.Fprintf(out, "  %s %s\n", formatStatusWithColor("failed"), r.URL)
				continue
			}
			fmt.Fprintf(out, "  %s %s: %d technologies\n", formatStatusWithColor("ok"), r.URL, len(r.Detected))
		}
		fmt.Fprintf(out, "%s Wrote %s and %s\n", colorSuccess("✓"), paths[0], paths[1])
		appCtx.Logger.Infow("tech fingerprint finished", "targets", len(targets), "output_dir", appCtx.OutputDir)
		return nil
	},
}

func init() {
	techCmd.Flags().StringVar(&techURL, "url", "", "single URL to analyze")
	techCmd.Flags().StringVar(&techInput, "input", "", "file with URLs, one per line")
	techCmd.Flags().StringVar(&cliConfig.Tech.Out, "out", cliConfig.Tech.Out, "report base name (writes <out>.json and <out>.md)")
	techCmd.Flags().StringVar(&cliConfig.Tech.UserAgent, "user-agent", cliConfig.Tech.UserAgent, "User-Agent sent with each request")
	techCmd.Flags().StringVar(&cliConfig.Tech.Signatures, "signatures", "", "YAML signature table replacing the built-in one")
	techCmd.Flags().BoolVar(&cliConfig.Tech.Wappalyzer, "wappalyzer", false, "also run the wappalyzer fingerprint engine")
	techCmd.Flags().IntVar(&cliConfig.Tech.Concurrency, "concurrency", cliConfig.Tech.Concurrency, "number of targets fetched in parallel")
	techCmd.Flags().IntVar(&cliConfig.Tech.TimeoutSecs, "timeout", cliConfig.Tech.TimeoutSecs, "per-request timeout in seconds")
}
