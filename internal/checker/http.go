package checker

import (
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the client used by all probes. Redirects are followed
// with net/http's default policy. insecure disables certificate verification
// and is only used for the liveness HTTPS fallback.
func NewHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: insecure} // #nosec G402 -- opt-in for liveness probing only
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewStreamingHTTPClient bounds dialing, the TLS handshake and the wait for
// response headers by timeout but leaves the body transfer unbounded, for
// answers too large to arrive within a single deadline.
func NewStreamingHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout
	return &http.Client{Transport: transport}
}

// DrainAndClose discards what is left of body (bounded) and closes it so the
// connection can be reused.
func DrainAndClose(body io.ReadCloser, limit int64) {
	// Ignore errors; this is just cleanup.
	_, _ = io.Copy(io.Discard, io.LimitReader(body, limit))
	_ = body.Close()
}
