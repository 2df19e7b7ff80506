package subdomain

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// Stage names reported to progress hooks.
const (
	StageResolve  = "resolve"
	StageLiveness = "liveness"
)

// Source lists names known for a domain.
type Source interface {
	Query(ctx context.Context, domain string) ([]string, error)
}

// DiscoveryResult holds the survivors of each stage, each in sorted order.
// Alive is a subset of Resolved, which is a subset of Discovered.
type DiscoveryResult struct {
	Domain     string   `json:"domain"`
	Discovered []string `json:"discovered"`
	Resolved   []string `json:"resolved"`
	Alive      []string `json:"alive"`
}

// Discoverer runs CT discovery, then the resolution filter, then the
// liveness filter. A stage's pool fully drains before the next one starts.
type Discoverer struct {
	Source    Source
	Resolver  Resolver
	Prober    Prober
	Workers   int
	RateLimit int // probe starts per second across each pool (0 = unlimited)
	Logger    *zap.Logger

	// OnDiscovered runs once after discovery, before any probing. An error
	// aborts the run.
	OnDiscovered func(names []string) error
	// OnStageStart and OnProgress feed progress displays.
	OnStageStart func(stage string, total int)
	OnProgress   func(stage string, ok bool, elapsed time.Duration)
}

// NewDiscoverer wires the default CT client, system resolver and liveness
// prober.
func NewDiscoverer(logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		Source:   NewCTClient(),
		Resolver: &SystemResolver{Timeout: constants.DNSLookupTimeout},
		Prober:   NewLivenessProber(constants.LivenessTimeout),
		Workers:  constants.DefaultWorkers,
		Logger:   logger,
	}
}

// Run executes the full pipeline for domain. Source failures are logged and
// treated as an empty discovery; only an empty domain or an OnDiscovered
// error is returned.
func (d *Discoverer) Run(ctx context.Context, domain string) (*DiscoveryResult, error) {
	domain = NormalizeName(domain)
	if domain == "" {
		return nil, sharederrors.ErrEmptyDomain
	}
	logger := d.logger()

	result := &DiscoveryResult{Domain: domain}
	result.Discovered = d.Discover(ctx, domain)
	logger.Info("discovery complete", zap.String("domain", domain), zap.Int("discovered", len(result.Discovered)))

	if d.OnDiscovered != nil {
		if err := d.OnDiscovered(result.Discovered); err != nil {
			return nil, err
		}
	}

	result.Resolved = d.FilterResolvable(ctx, result.Discovered)
	logger.Info("resolution complete", zap.Int("resolved", len(result.Resolved)))

	result.Alive = d.FilterAlive(ctx, result.Resolved)
	logger.Info("liveness complete", zap.Int("alive", len(result.Alive)))

	return result, nil
}

// Discover queries the source and degrades to an empty list on failure.
func (d *Discoverer) Discover(ctx context.Context, domain string) []string {
	source := d.Source
	if source == nil {
		source = NewCTClient()
	}
	names, err := source.Query(ctx, domain)
	if err != nil {
		d.logger().Warn("certificate transparency lookup failed", zap.String("domain", domain), zap.Error(err))
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// FilterResolvable keeps the names that resolve, preserving input order.
func (d *Discoverer) FilterResolvable(ctx context.Context, names []string) []string {
	resolver := d.Resolver
	if resolver == nil {
		resolver = &SystemResolver{Timeout: constants.DNSLookupTimeout}
	}
	return d.filter(ctx, StageResolve, names, func(ctx context.Context, name string) bool {
		addrs, err := resolver.Resolve(ctx, name)
		if err != nil {
			d.logger().Debug("dropped unresolvable name", zap.String("name", name), zap.Error(err))
			return false
		}
		return len(addrs) > 0
	})
}

// FilterAlive keeps the names that answer HTTP or HTTPS, preserving input
// order.
func (d *Discoverer) FilterAlive(ctx context.Context, names []string) []string {
	prober := d.Prober
	if prober == nil {
		prober = NewLivenessProber(constants.LivenessTimeout)
	}
	return d.filter(ctx, StageLiveness, names, func(ctx context.Context, name string) bool {
		answered, err := prober.Probe(ctx, name)
		if err != nil {
			d.logger().Debug("dropped dead host", zap.String("name", name), zap.Error(err))
			return false
		}
		d.logger().Debug("host alive", zap.String("name", name), zap.String("url", answered))
		return true
	})
}

func (d *Discoverer) filter(ctx context.Context, stage string, names []string, keep func(context.Context, string) bool) []string {
	if d.OnStageStart != nil {
		d.OnStageStart(stage, len(names))
	}

	workers := d.Workers
	if workers <= 0 {
		workers = constants.DefaultWorkers
	}
	runner := &checker.Runner{Concurrency: workers, RateLimit: d.RateLimit}

	flags := checker.Map(ctx, runner, names, func(ctx context.Context, name string) bool {
		start := time.Now()
		ok := keep(ctx, name)
		if d.OnProgress != nil {
			d.OnProgress(stage, ok, time.Since(start))
		}
		return ok
	})

	kept := make([]string, 0, len(names))
	for i, ok := range flags {
		if ok {
			kept = append(kept, names[i])
		}
	}
	return kept
}

func (d *Discoverer) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
