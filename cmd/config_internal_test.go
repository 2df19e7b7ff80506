package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
)

func TestApplyIntDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("timeout", 0, "")

	var applied int
	applyIntDefault(flags, "timeout", 15, func(v int) {
		applied = v
	})
	if applied != 15 {
		t.Fatalf("expected setter to receive 15, got %d", applied)
	}

	// When flag already set, setter should not run.
	if err := flags.Set("timeout", "7"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	applied = 0
	applyIntDefault(flags, "timeout", 20, func(v int) {
		applied = v
	})
	if applied != 0 {
		t.Fatalf("setter should not run when flag overridden, got %d", applied)
	}
}

func TestApplyBoolDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("wappalyzer", false, "")

	applied := false
	applyBoolDefault(flags, "wappalyzer", true, func(v bool) {
		applied = v
	})
	if !applied {
		t.Fatal("expected setter to run with true")
	}

	if err := flags.Set("wappalyzer", "false"); err != nil {
		t.Fatalf("failed to set bool flag: %v", err)
	}
	applied = true
	applyBoolDefault(flags, "wappalyzer", true, func(v bool) {
		applied = v
	})
	if !applied {
		t.Fatalf("setter should not change value when flag already set")
	}
}

func TestApplyStringSliceDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringSlice("resolver", nil, "")

	var applied []string
	applyStringSliceDefault(flags, "resolver", []string{"1.1.1.1"}, func(v []string) {
		applied = v
	})
	if !reflect.DeepEqual(applied, []string{"1.1.1.1"}) {
		t.Fatalf("expected config resolvers, got %v", applied)
	}

	if err := flags.Set("resolver", "9.9.9.9"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	applied = nil
	applyStringSliceDefault(flags, "resolver", []string{"1.1.1.1"}, func(v []string) {
		applied = v
	})
	if applied != nil {
		t.Fatalf("setter should not run when flag overridden, got %v", applied)
	}
}

func TestSetStringFlagIfUnset(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("user-agent", "", "")

	setStringFlagIfUnset(flags, "user-agent", "config-agent")
	if got := flags.Lookup("user-agent").Value.String(); got != "config-agent" {
		t.Fatalf("expected user-agent to be default, got %s", got)
	}

	if err := flags.Set("user-agent", "user-provided"); err != nil {
		t.Fatalf("failed to set user-agent: %v", err)
	}
	setStringFlagIfUnset(flags, "user-agent", "new-default")
	if got := flags.Lookup("user-agent").Value.String(); got != "user-provided" {
		t.Fatalf("expected user-agent to remain user-provided, got %s", got)
	}
}

func TestNewCLIConfigDefaults(t *testing.T) {
	cfg := newCLIConfig()
	if cfg.Headers.Concurrency != 1 || cfg.Tech.Concurrency != 1 {
		t.Fatalf("batch commands must default to sequential execution: %+v", cfg)
	}
	if cfg.Headers.TimeoutSecs != 8 || cfg.Tech.TimeoutSecs != 8 {
		t.Fatalf("unexpected timeout defaults: %d/%d", cfg.Headers.TimeoutSecs, cfg.Tech.TimeoutSecs)
	}
	if cfg.Subdomains.Workers != constants.DefaultWorkers {
		t.Fatalf("unexpected worker default: %d", cfg.Subdomains.Workers)
	}
	if cfg.Subdomains.RateLimit != 0 {
		t.Fatalf("rate limit should default to unlimited, got %d", cfg.Subdomains.RateLimit)
	}
	if cfg.Tech.UserAgent != constants.FingerprintUserAgent {
		t.Fatalf("unexpected user agent: %s", cfg.Tech.UserAgent)
	}
	if cfg.Tech.Out != "tech_report" {
		t.Fatalf("unexpected report name: %s", cfg.Tech.Out)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("output_dir", "/tmp/reports")
	viper.Set("defaults.timeout_secs", 30)
	viper.Set("headers.concurrency", 4)
	viper.Set("subdomains.workers", 25)
	viper.Set("subdomains.rate_limit", 5)
	viper.Set("subdomains.resolvers", []string{"1.1.1.1", "8.8.8.8:53"})
	viper.Set("tech.user_agent", "custom-agent")
	viper.Set("tech.signatures", "/etc/sigs.yaml")
	viper.Set("tech.concurrency", 3)
	viper.Set("tech.wappalyzer", true)

	overrides := loadConfigOverrides()

	if overrides.OutputDir != "/tmp/reports" {
		t.Fatalf("expected output dir override, got %q", overrides.OutputDir)
	}
	if overrides.TimeoutSecs == nil || *overrides.TimeoutSecs != 30 {
		t.Fatalf("expected timeout override 30, got %+v", overrides.TimeoutSecs)
	}
	if overrides.HeadersConc == nil || *overrides.HeadersConc != 4 {
		t.Fatalf("expected headers concurrency 4, got %+v", overrides.HeadersConc)
	}
	if overrides.SubdomainWorkers == nil || *overrides.SubdomainWorkers != 25 {
		t.Fatalf("expected workers 25, got %+v", overrides.SubdomainWorkers)
	}
	if overrides.SubdomainRate == nil || *overrides.SubdomainRate != 5 {
		t.Fatalf("expected rate limit 5, got %+v", overrides.SubdomainRate)
	}
	if !reflect.DeepEqual(overrides.Resolvers, []string{"1.1.1.1", "8.8.8.8:53"}) {
		t.Fatalf("unexpected resolvers %v", overrides.Resolvers)
	}
	if overrides.TechUserAgent != "custom-agent" || overrides.TechSignatures != "/etc/sigs.yaml" {
		t.Fatalf("unexpected tech overrides %+v", overrides)
	}
	if overrides.TechConcurrency == nil || *overrides.TechConcurrency != 3 {
		t.Fatalf("expected tech concurrency 3, got %+v", overrides.TechConcurrency)
	}
	if overrides.TechWappalyzer == nil || !*overrides.TechWappalyzer {
		t.Fatalf("expected wappalyzer override true, got %+v", overrides.TechWappalyzer)
	}
}

func TestLoadConfigOverridesEmpty(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	overrides := loadConfigOverrides()
	if overrides.TimeoutSecs != nil || overrides.HeadersConc != nil || overrides.Resolvers != nil {
		t.Fatalf("expected no overrides, got %+v", overrides)
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	originalCfg := *cliConfig
	t.Cleanup(func() {
		viper.Reset()
		*cliConfig = originalCfg
	})
	*cliConfig = *newCLIConfig()

	viper.Set("defaults.timeout_secs", 20)
	viper.Set("headers.concurrency", 6)
	viper.Set("subdomains.workers", 40)
	viper.Set("subdomains.resolvers", []string{"9.9.9.9"})
	viper.Set("tech.concurrency", 2)
	viper.Set("tech.wappalyzer", true)

	// Reset flag state to simulate untouched CLI flags.
	for _, name := range []string{"timeout", "concurrency"} {
		if flag := headersCmd.Flags().Lookup(name); flag != nil {
			flag.Changed = false
		}
		if flag := techCmd.Flags().Lookup(name); flag != nil {
			flag.Changed = false
		}
	}
	for _, name := range []string{"workers", "resolver"} {
		if flag := subdomainsCmd.Flags().Lookup(name); flag != nil {
			flag.Changed = false
		}
	}
	if flag := techCmd.Flags().Lookup("wappalyzer"); flag != nil {
		flag.Changed = false
	}

	applyConfigDefaults(rootCmd)

	if cliConfig.Headers.TimeoutSecs != 20 || cliConfig.Tech.TimeoutSecs != 20 {
		t.Fatalf("expected timeouts to update to 20, got %d/%d", cliConfig.Headers.TimeoutSecs, cliConfig.Tech.TimeoutSecs)
	}
	if cliConfig.Headers.Concurrency != 6 {
		t.Fatalf("expected headers concurrency 6, got %d", cliConfig.Headers.Concurrency)
	}
	if cliConfig.Subdomains.Workers != 40 {
		t.Fatalf("expected workers 40, got %d", cliConfig.Subdomains.Workers)
	}
	if !reflect.DeepEqual(cliConfig.Subdomains.Resolvers, []string{"9.9.9.9"}) {
		t.Fatalf("expected resolvers from config, got %v", cliConfig.Subdomains.Resolvers)
	}
	if cliConfig.Tech.Concurrency != 2 || !cliConfig.Tech.Wappalyzer {
		t.Fatalf("unexpected tech config %+v", cliConfig.Tech)
	}
}
