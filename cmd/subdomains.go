package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-recon/internal/report"
	"github.com/khanhnv2901/seca-recon/internal/subdomain"
)

var subdomainsDomain string

// newDiscoverer is swapped in tests.
var newDiscoverer = subdomain.NewDiscoverer

var subdomainsCmd = &cobra.Command{
	Use:   "subdomains",
	Short: "Enumerate live subdomains from certificate transparency logs",
	Long: `Query crt.sh for %.<domain>, keep the names that resolve, then keep the
ones that answer HTTP or HTTPS. Writes subdomains.txt (everything
discovered) and alive.txt (survivors).`,
	Example: `  seca-recon subdomains --domain example.com
  seca-recon subdomains --domain example.com --workers 20 --resolver 1.1.1.1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		out := cmd.OutOrStdout()
		cfg := appCtx.Config.Subdomains

		writer, err := report.NewWriter(appCtx.OutputDir)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		discoverer := newDiscoverer(appCtx.zapLogger())
		discoverer.Workers = cfg.Workers
		discoverer.RateLimit = cfg.RateLimit
		if len(cfg.Resolvers) > 0 {
			discoverer.Resolver = subdomain.NewDNSClientResolver(cfg.Resolvers)
			appCtx.Logger.Debugf("using name servers %v", cfg.Resolvers)
		}

		discoverer.OnDiscovered = func(names []string) error {
			path, err := writer.WriteSubdomains(names)
			if err != nil {
				return &OutputPathError{Path: appCtx.OutputDir, Err: err}
			}
			fmt.Fprintf(out, "%s %d subdomains discovered (written to %s)\n", colorInfo("•"), len(names), path)
			return nil
		}

		var progress *progressPrinter
		discoverer.OnStageStart = func(stage string, total int) {
			progress.Stop()
			progress = startProgress(out, appCtx.Config.ProgressEnabled, total, stage)
		}
		discoverer.OnProgress = func(stage string, ok bool, elapsed time.Duration) {
			progress.Increment(ok, elapsed.Seconds())
		}

		result, err := discoverer.Run(ctx, subdomainsDomain)
		progress.Stop()
		if err != nil {
			return err
		}

		alivePath, err := writer.WriteAlive(result.Alive)
		if err != nil {
			return &OutputPathError{Path: appCtx.OutputDir, Err: err}
		}

		appCtx.Logger.Infow("subdomain discovery finished",
			"domain", result.Domain,
			"discovered", len(result.Discovered),
			"resolved", len(result.Resolved),
			"alive", len(result.Alive),
		)
		fmt.Fprintf(out, "%s Found %d subdomains, %d alive (written to %s)\n",
			colorSuccess("✓"), len(result.Discovered), len(result.Alive), alivePath)
		return nil
	},
}

func init() {
	subdomainsCmd.Flags().StringVar(&subdomainsDomain, "domain", "", "apex domain to enumerate (required)")
	subdomainsCmd.Flags().IntVar(&cliConfig.Subdomains.Workers, "workers", cliConfig.Subdomains.Workers, "parallel DNS and HTTP probes")
	subdomainsCmd.Flags().StringSliceVar(&cliConfig.Subdomains.Resolvers, "resolver", cliConfig.Subdomains.Resolvers, "name server ip[:port] to query instead of the system resolver (repeatable)")
	subdomainsCmd.Flags().IntVar(&cliConfig.Subdomains.RateLimit, "rate-limit", cliConfig.Subdomains.RateLimit, "maximum probe starts per second (0 = unlimited)")
	_ = subdomainsCmd.MarkFlagRequired("domain")
}
