package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
)

const (
	defaultHTTPTimeoutSeconds = int(constants.HeaderCheckTimeout / time.Second)
	defaultBatchConcurrency   = 1
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	ProgressEnabled bool
	Headers         HeadersConfig
	Subdomains      SubdomainsConfig
	Tech            TechConfig
}

// HeadersConfig holds flag-driven settings for the headers command.
type HeadersConfig struct {
	Concurrency int
	TimeoutSecs int
}

// SubdomainsConfig holds flag-driven settings for the subdomains command.
type SubdomainsConfig struct {
	Workers   int
	Resolvers []string
	RateLimit int
}

// TechConfig holds flag-driven settings for the tech command.
type TechConfig struct {
	Concurrency int
	TimeoutSecs int
	UserAgent   string
	Signatures  string
	Wappalyzer  bool
	Out         string
}

type configOverrides struct {
	OutputDir        string
	TimeoutSecs      *int
	HeadersConc      *int
	SubdomainWorkers *int
	SubdomainRate    *int
	Resolvers        []string
	TechUserAgent    string
	TechSignatures   string
	TechConcurrency  *int
	TechWappalyzer   *bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		ProgressEnabled: true,
		Headers: HeadersConfig{
			Concurrency: defaultBatchConcurrency,
			TimeoutSecs: defaultHTTPTimeoutSeconds,
		},
		Subdomains: SubdomainsConfig{
			Workers:   constants.DefaultWorkers,
			Resolvers: []string{},
			RateLimit: 0,
		},
		Tech: TechConfig{
			Concurrency: defaultBatchConcurrency,
			TimeoutSecs: int(constants.FingerprintTimeout / time.Second),
			UserAgent:   constants.FingerprintUserAgent,
			Out:         constants.DefaultTechReport,
		},
	}
}

func intPtr(key string) *int {
	if !viper.IsSet(key) {
		return nil
	}
	val := viper.GetInt(key)
	return &val
}

func loadConfigOverrides() configOverrides {
	overrides := configOverrides{
		OutputDir:        viper.GetString("output_dir"),
		TimeoutSecs:      intPtr("defaults.timeout_secs"),
		HeadersConc:      intPtr("headers.concurrency"),
		SubdomainWorkers: intPtr("subdomains.workers"),
		SubdomainRate:    intPtr("subdomains.rate_limit"),
		TechUserAgent:    viper.GetString("tech.user_agent"),
		TechSignatures:   viper.GetString("tech.signatures"),
		TechConcurrency:  intPtr("tech.concurrency"),
	}

	if viper.IsSet("subdomains.resolvers") {
		overrides.Resolvers = viper.GetStringSlice("subdomains.resolvers")
	}

	if viper.IsSet("tech.wappalyzer") {
		val := viper.GetBool("tech.wappalyzer")
		overrides.TechWappalyzer = &val
	}

	return overrides
}

// applyConfigDefaults merges config file values into the runtime config when
// the user did not explicitly set the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	overrides := loadConfigOverrides()

	if overrides.OutputDir != "" {
		setStringFlagIfUnset(cmd.Root().PersistentFlags(), "output-dir", overrides.OutputDir)
	}

	if overrides.TimeoutSecs != nil {
		applyIntDefault(headersCmd.Flags(), "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Headers.TimeoutSecs = v
		})
		applyIntDefault(techCmd.Flags(), "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Tech.TimeoutSecs = v
		})
	}

	if overrides.HeadersConc != nil {
		applyIntDefault(headersCmd.Flags(), "concurrency", *overrides.HeadersConc, func(v int) {
			cliConfig.Headers.Concurrency = v
		})
	}

	if overrides.SubdomainWorkers != nil {
		applyIntDefault(subdomainsCmd.Flags(), "workers", *overrides.SubdomainWorkers, func(v int) {
			cliConfig.Subdomains.Workers = v
		})
	}

	if overrides.SubdomainRate != nil {
		applyIntDefault(subdomainsCmd.Flags(), "rate-limit", *overrides.SubdomainRate, func(v int) {
			cliConfig.Subdomains.RateLimit = v
		})
	}

	if len(overrides.Resolvers) > 0 {
		applyStringSliceDefault(subdomainsCmd.Flags(), "resolver", overrides.Resolvers, func(v []string) {
			cliConfig.Subdomains.Resolvers = v
		})
	}

	if overrides.TechUserAgent != "" {
		setStringFlagIfUnset(techCmd.Flags(), "user-agent", overrides.TechUserAgent)
	}

	if overrides.TechSignatures != "" {
		setStringFlagIfUnset(techCmd.Flags(), "signatures", overrides.TechSignatures)
	}

	if overrides.TechConcurrency != nil {
		applyIntDefault(techCmd.Flags(), "concurrency", *overrides.TechConcurrency, func(v int) {
			cliConfig.Tech.Concurrency = v
		})
	}

	if overrides.TechWappalyzer != nil {
		applyBoolDefault(techCmd.Flags(), "wappalyzer", *overrides.TechWappalyzer, func(v bool) {
			cliConfig.Tech.Wappalyzer = v
		})
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(append([]string(nil), value...))
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
