package subdomain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// ctEntry is the subset of a crt.sh JSON row we consume.
type ctEntry struct {
	NameValue string `json:"name_value"`
}

// CTClient queries a certificate-transparency search endpoint.
type CTClient struct {
	BaseURL      string        // defaults to crt.sh
	Timeout      time.Duration // connect + headers budget, then per-read idle budget
	MaxBodyBytes int64         // 0 = constants.CTMaxBodyBytes
	Client       *http.Client
}

// NewCTClient returns a client for the public crt.sh endpoint.
func NewCTClient() *CTClient {
	return &CTClient{
		BaseURL:      constants.CTSearchURL,
		Timeout:      constants.CTQueryTimeout,
		MaxBodyBytes: constants.CTMaxBodyBytes,
		Client:       checker.NewStreamingHTTPClient(constants.CTQueryTimeout),
	}
}

// Query returns the normalized, sorted names the CT source knows for
// %.<domain>. A non-200 answer, a transport error or a stalled body wraps
// ErrSourceUnavailable, a body over the size guard wraps ErrPayloadTooLarge
// and an undecodable body wraps ErrMalformedPayload; in every failure case the
// returned slice is empty and non-nil.
//
// The timeout never bounds the whole transfer: large answers keep streaming
// as long as each read makes progress within it.
func (c *CTClient) Query(ctx context.Context, domain string) ([]string, error) {
	domain = NormalizeName(domain)
	if domain == "" {
		return []string{}, sharederrors.ErrEmptyDomain
	}

	base := c.BaseURL
	if base == "" {
		base = constants.CTSearchURL
	}
	endpoint, err := url.Parse(base)
	if err != nil {
		return []string{}, fmt.Errorf("parse ct endpoint: %w", err)
	}
	q := url.Values{}
	q.Set("q", "%."+domain)
	q.Set("output", "json")
	endpoint.RawQuery = q.Encode()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = constants.CTQueryTimeout
	}
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = constants.CTMaxBodyBytes
	}
	client := c.Client
	if client == nil {
		client = checker.NewStreamingHTTPClient(timeout)
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	// Fires when connecting, waiting for headers or any single body read
	// takes longer than timeout.
	idle := time.AfterFunc(timeout, cancel)
	defer idle.Stop()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return []string{}, fmt.Errorf("create ct request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return []string{}, fmt.Errorf("%w: %v", sharederrors.ErrSourceUnavailable, err)
	}
	defer checker.DrainAndClose(resp.Body, constants.MaxBodyBytes)

	if resp.StatusCode != http.StatusOK {
		return []string{}, fmt.Errorf("%w: status %d", sharederrors.ErrSourceUnavailable, resp.StatusCode)
	}

	body := &progressReader{r: resp.Body, remaining: limit, idle: idle, timeout: timeout}
	var entries []ctEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		switch {
		case errors.Is(err, sharederrors.ErrPayloadTooLarge):
			return []string{}, fmt.Errorf("%w: over %d bytes", sharederrors.ErrPayloadTooLarge, limit)
		case reqCtx.Err() != nil:
			return []string{}, fmt.Errorf("%w: read body: %v", sharederrors.ErrSourceUnavailable, err)
		default:
			return []string{}, fmt.Errorf("%w: %v", sharederrors.ErrMalformedPayload, err)
		}
	}

	values := make([]string, 0, len(entries))
	for _, entry := range entries {
		values = append(values, entry.NameValue)
	}
	return ExtractNames(values, domain), nil
}

// progressReader re-arms the idle timer on every successful read and refuses
// to read past remaining bytes.
type progressReader struct {
	r         io.Reader
	remaining int64
	idle      *time.Timer
	timeout   time.Duration
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if p.remaining <= 0 {
		return 0, sharederrors.ErrPayloadTooLarge
	}
	if int64(len(buf)) > p.remaining {
		buf = buf[:p.remaining]
	}
	n, err := p.r.Read(buf)
	p.remaining -= int64(n)
	if n > 0 {
		p.idle.Reset(p.timeout)
	}
	return n, err
}
