package subdomain

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// Resolver performs a forward lookup for one host name.
type Resolver interface {
	Resolve(ctx context.Context, host string) ([]string, error)
}

// SystemResolver uses the Go resolver with the host's configuration.
type SystemResolver struct {
	Timeout time.Duration
}

// Resolve returns the host's addresses or an error when it has none.
func (s *SystemResolver) Resolve(ctx context.Context, host string) ([]string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = constants.DNSLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resolver := &net.Resolver{PreferGo: true}
	addrs, err := resolver.LookupHost(lookupCtx, host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrNotResolvable, err)
	}
	if len(addrs) == 0 {
		return nil, sharederrors.ErrNotResolvable
	}
	return addrs, nil
}

// DNSClientResolver queries explicit name servers with a raw DNS client.
// A records are asked first, AAAA only when no A answer came back.
type DNSClientResolver struct {
	Servers []string // host:port; a bare IP gets port 53
	Timeout time.Duration
}

// NewDNSClientResolver normalizes server addresses to host:port form.
func NewDNSClientResolver(servers []string) *DNSClientResolver {
	normalized := make([]string, 0, len(servers))
	for _, server := range servers {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		normalized = append(normalized, withDefaultPort(server))
	}
	return &DNSClientResolver{
		Servers: normalized,
		Timeout: constants.DNSLookupTimeout,
	}
}

func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(strings.Trim(server, "[]"), "53")
}

// Resolve returns the A (or AAAA) addresses of host.
func (d *DNSClientResolver) Resolve(ctx context.Context, host string) ([]string, error) {
	if len(d.Servers) == 0 {
		return nil, fmt.Errorf("%w: no name servers configured", sharederrors.ErrNotResolvable)
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = constants.DNSLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := new(dns.Client)
	c.Timeout = timeout

	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		addrs, err := d.query(lookupCtx, c, host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		if len(addrs) > 0 {
			return addrs, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrNotResolvable, lastErr)
	}
	return nil, sharederrors.ErrNotResolvable
}

func (d *DNSClientResolver) query(ctx context.Context, c *dns.Client, host string, qtype uint16) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	// The first server that answers at all is authoritative for this query;
	// later servers are only tried after a transport error.
	var resp *dns.Msg
	var lastErr error
	for _, server := range d.Servers {
		r, _, err := c.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			continue
		}
		resp = r
		break
	}
	if resp == nil {
		return nil, lastErr
	}

	var addrs []string
	for _, answer := range resp.Answer {
		switch rr := answer.(type) {
		case *dns.A:
			addrs = append(addrs, rr.A.String())
		case *dns.AAAA:
			addrs = append(addrs, rr.AAAA.String())
		}
	}
	return addrs, nil
}
