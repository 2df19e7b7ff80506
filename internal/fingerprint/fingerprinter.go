package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	wappalyzer "github.com/projectdiscovery/wappalyzergo"
	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// hintHeaders are checked for technology names after pattern matching.
var hintHeaders = []string{"x-powered-by", "server"}

// Detection is one technology and the evidence that matched it.
type Detection struct {
	Technology string
	Matches    []string
}

// Detections keeps signature-table order and serializes as a JSON object in
// that order.
type Detections []Detection

// MarshalJSON writes {"tech": [matches...], ...} preserving order.
func (d Detections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, det := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(det.Technology)
		if err != nil {
			return nil, err
		}
		matches := det.Matches
		if matches == nil {
			matches = []string{}
		}
		value, err := json.Marshal(matches)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the matches recorded for tech.
func (d Detections) Get(tech string) ([]string, bool) {
	for _, det := range d {
		if det.Technology == tech {
			return det.Matches, true
		}
	}
	return nil, false
}

// FingerprintResult is the outcome of fingerprinting one target. When Error
// is set the result serializes to exactly {url, error}.
type FingerprintResult struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    map[string]string
	Cookies    map[string]string
	Detected   Detections
	Wappalyzer []string
	Error      string
}

type fingerprintSuccessJSON struct {
	URL        string            `json:"url"`
	FinalURL   string            `json:"final_url,omitempty"`
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Cookies    map[string]string `json:"cookies"`
	Detected   Detections        `json:"detected"`
	Wappalyzer []string          `json:"wappalyzer,omitempty"`
}

// MarshalJSON emits the error form or the success form.
func (r FingerprintResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			URL   string `json:"url"`
			Error string `json:"error"`
		}{r.URL, r.Error})
	}
	out := fingerprintSuccessJSON{
		URL:        r.URL,
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Cookies:    r.Cookies,
		Detected:   r.Detected,
		Wappalyzer: r.Wappalyzer,
	}
	if r.FinalURL != r.URL {
		out.FinalURL = r.FinalURL
	}
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	if out.Cookies == nil {
		out.Cookies = map[string]string{}
	}
	return json.Marshal(out)
}

// Failed reports whether the target could not be fetched.
func (r FingerprintResult) Failed() bool {
	return r.Error != ""
}

// Analyze matches the page evidence against the table. It performs no I/O.
// headers must use lower-case names.
func (t *SignatureTable) Analyze(body string, headers, cookies map[string]string) Detections {
	blob := ExtractContent(body).Blob(body, headers, cookies)

	found := make(map[string][]string)
	for _, entry := range t.entries {
		for _, p := range entry.patterns {
			if p.re.MatchString(blob) {
				found[entry.technology] = append(found[entry.technology], p.source)
			}
		}
	}

	for _, name := range hintHeaders {
		value, ok := headers[name]
		if !ok || value == "" {
			continue
		}
		lowered := strings.ToLower(value)
		for _, entry := range t.entries {
			if strings.Contains(lowered, strings.ToLower(entry.technology)) {
				found[entry.technology] = append(found[entry.technology], "header:"+name+":"+value)
			}
		}
	}

	detections := make(Detections, 0, len(found))
	for _, entry := range t.entries {
		if matches, ok := found[entry.technology]; ok {
			detections = append(detections, Detection{Technology: entry.technology, Matches: matches})
		}
	}
	return detections
}

// Options configures a Fingerprinter.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Signatures *SignatureTable // defaults to the built-in table
	Wappalyzer bool            // also run the wappalyzergo engine
	Logger     *zap.Logger
}

// Fingerprinter fetches a page once and identifies its technologies.
type Fingerprinter struct {
	client    *http.Client
	userAgent string
	table     *SignatureTable
	wappalyze *wappalyzer.Wappalyze
	logger    *zap.Logger
}

// New builds a Fingerprinter from opts.
func New(opts Options) (*Fingerprinter, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = constants.FingerprintTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = constants.FingerprintUserAgent
	}
	table := opts.Signatures
	if table == nil {
		table = DefaultSignatures()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fingerprinter{
		client:    checker.NewHTTPClient(timeout, false),
		userAgent: userAgent,
		table:     table,
		logger:    logger,
	}
	if opts.Wappalyzer {
		wa, err := wappalyzer.New()
		if err != nil {
			return nil, fmt.Errorf("init wappalyzer: %w", err)
		}
		f.wappalyze = wa
	}
	return f, nil
}

// Name returns the name of this checker
func (f *Fingerprinter) Name() string {
	return "tech"
}

// Check fingerprints a single target. Any transport failure produces the
// fetch_failed result; a 4xx or 5xx answer is still a response and is
// fingerprinted with its status code.
func (f *Fingerprinter) Check(ctx context.Context, target string) FingerprintResult {
	result := FingerprintResult{URL: target}

	info := checker.ParseTarget(target)
	if info.URL == "" {
		result.Error = sharederrors.ErrFetchFailed.Error()
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		f.logger.Debug("fetch failed", append(info.LogFields(), zap.Error(err))...)
		result.Error = sharederrors.ErrFetchFailed.Error()
		return result
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("fetch failed", append(info.LogFields(), zap.Error(err))...)
		result.Error = sharederrors.ErrFetchFailed.Error()
		return result
	}
	defer checker.DrainAndClose(resp.Body, constants.MaxBodyBytes)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxBodyBytes))
	if err != nil {
		f.logger.Debug("fetch failed", append(info.LogFields(), zap.Error(err))...)
		result.Error = sharederrors.ErrFetchFailed.Error()
		return result
	}

	result.StatusCode = resp.StatusCode
	if resp.Request != nil && resp.Request.URL != nil {
		if final := resp.Request.URL.String(); final != info.URL {
			result.FinalURL = final
		}
	}
	result.Headers = flattenHeaders(resp.Header)
	result.Cookies = make(map[string]string)
	for _, c := range resp.Cookies() {
		result.Cookies[c.Name] = c.Value
	}

	body := decodeBody(raw, resp.Header.Get("Content-Type"))
	result.Detected = f.table.Analyze(body, result.Headers, result.Cookies)

	if f.wappalyze != nil {
		result.Wappalyzer = sortedMapKeys(f.wappalyze.Fingerprint(resp.Header, raw))
	}

	f.logger.Debug("fingerprint complete",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("detected", len(result.Detected)),
	)
	return result
}

func flattenHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		key := strings.ToLower(name)
		if prev, ok := out[key]; ok {
			out[key] = prev + ", " + strings.Join(values, ", ")
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
