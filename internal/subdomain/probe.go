package subdomain

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// Prober decides whether a host answers HTTP.
type Prober interface {
	Probe(ctx context.Context, host string) (string, error)
}

// LivenessProber tries http:// first and falls back to https:// without
// certificate verification. Any HTTP response, whatever its status, counts
// as alive.
type LivenessProber struct {
	Plain    *http.Client
	Insecure *http.Client
}

// NewLivenessProber builds a prober whose attempts are each bounded by timeout.
func NewLivenessProber(timeout time.Duration) *LivenessProber {
	if timeout <= 0 {
		timeout = constants.LivenessTimeout
	}
	return &LivenessProber{
		Plain:    checker.NewHTTPClient(timeout, false),
		Insecure: checker.NewHTTPClient(timeout, true),
	}
}

// Probe returns the URL that answered.
func (p *LivenessProber) Probe(ctx context.Context, host string) (string, error) {
	plainURL := "http://" + host
	plainErr := get(ctx, p.Plain, plainURL)
	if plainErr == nil {
		return plainURL, nil
	}

	secureURL := "https://" + host
	secureErr := get(ctx, p.Insecure, secureURL)
	if secureErr == nil {
		return secureURL, nil
	}
	return "", fmt.Errorf("%w: http: %v; https: %v", sharederrors.ErrNotAlive, plainErr, secureErr)
}

func get(ctx context.Context, client *http.Client, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	checker.DrainAndClose(resp.Body, 64<<10)
	return nil
}
