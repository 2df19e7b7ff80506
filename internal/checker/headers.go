package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// HeaderSpec describes one reference security header.
type HeaderSpec struct {
	Name      string // lower-case header name
	Rationale string
	Validate  func(value string) []string // returns issues for a weak value
}

// referenceHeaders is the fixed, ordered reference set.
var referenceHeaders = []HeaderSpec{
	{
		Name:      "content-security-policy",
		Rationale: "Prevent XSS by specifying allowed sources",
		Validate:  checkCSP,
	},
	{
		Name:      "strict-transport-security",
		Rationale: "Enforce HTTPS (HSTS)",
		Validate:  checkHSTS,
	},
	{
		Name:      "x-frame-options",
		Rationale: "Prevent clickjacking",
		Validate:  checkXFrameOptions,
	},
	{
		Name:      "x-content-type-options",
		Rationale: "Prevent MIME-sniffing",
		Validate:  checkXContentTypeOptions,
	},
	{
		Name:      "referrer-policy",
		Rationale: "Control referrer header info",
		Validate:  checkReferrerPolicy,
	},
}

// ReferenceHeaders returns a copy of the reference table in its fixed order.
func ReferenceHeaders() []HeaderSpec {
	out := make([]HeaderSpec, len(referenceHeaders))
	copy(out, referenceHeaders)
	return out
}

// HeaderCheckResult is the outcome of auditing one target. When Error is set
// the result serializes to exactly {url, error}.
type HeaderCheckResult struct {
	URL        string
	StatusCode int
	Present    map[string]string
	Missing    map[string]string
	Issues     map[string][]string
	CheckedAt  time.Time
	Error      string
}

type headerCheckSuccessJSON struct {
	URL        string              `json:"url"`
	StatusCode int                 `json:"status_code"`
	Present    map[string]string   `json:"present"`
	Missing    map[string]string   `json:"missing"`
	Issues     map[string][]string `json:"issues,omitempty"`
	CheckedAt  time.Time           `json:"checked_at"`
}

type errorJSON struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// MarshalJSON emits the error form or the success form.
func (r HeaderCheckResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(errorJSON{URL: r.URL, Error: r.Error})
	}
	present := r.Present
	if present == nil {
		present = map[string]string{}
	}
	missing := r.Missing
	if missing == nil {
		missing = map[string]string{}
	}
	return json.Marshal(headerCheckSuccessJSON{
		URL:        r.URL,
		StatusCode: r.StatusCode,
		Present:    present,
		Missing:    missing,
		Issues:     r.Issues,
		CheckedAt:  r.CheckedAt,
	})
}

// Failed reports whether the target could not be fetched.
func (r HeaderCheckResult) Failed() bool {
	return r.Error != ""
}

// MissingNames lists missing headers in reference-table order.
func (r HeaderCheckResult) MissingNames() []string {
	names := make([]string, 0, len(r.Missing))
	for _, ref := range referenceHeaders {
		if _, ok := r.Missing[ref.Name]; ok {
			names = append(names, ref.Name)
		}
	}
	return names
}

// AnalyzeHeaders compares response headers against the reference set.
// Lookups are case-insensitive; every reference header lands in exactly one
// of present or missing.
func AnalyzeHeaders(headers http.Header) (present, missing map[string]string, issues map[string][]string) {
	present = make(map[string]string)
	missing = make(map[string]string)
	issues = make(map[string][]string)

	lowered := lowerHeaders(headers)
	for _, ref := range referenceHeaders {
		values, ok := lowered[ref.Name]
		if !ok {
			missing[ref.Name] = ref.Rationale
			continue
		}
		value := strings.Join(values, ", ")
		present[ref.Name] = value
		if ref.Validate != nil {
			if found := ref.Validate(value); len(found) > 0 {
				issues[ref.Name] = found
			}
		}
	}
	return present, missing, issues
}

func lowerHeaders(headers http.Header) map[string][]string {
	out := make(map[string][]string, len(headers))
	for name, values := range headers {
		key := strings.ToLower(name)
		out[key] = append(out[key], values...)
	}
	return out
}

// HeaderAuditor fetches each target once and audits its security headers.
type HeaderAuditor struct {
	Timeout time.Duration
	Client  *http.Client // optional; built from Timeout when nil
	Logger  *zap.Logger
}

// NewHeaderAuditor returns an auditor with the given timeout (0 = default).
func NewHeaderAuditor(timeout time.Duration, logger *zap.Logger) *HeaderAuditor {
	if timeout <= 0 {
		timeout = constants.HeaderCheckTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeaderAuditor{
		Timeout: timeout,
		Client:  NewHTTPClient(timeout, false),
		Logger:  logger,
	}
}

// Name returns the name of this checker
func (a *HeaderAuditor) Name() string {
	return "headers"
}

// Check audits a single target. Failures are reported in the result.
func (a *HeaderAuditor) Check(ctx context.Context, target string) HeaderCheckResult {
	result := HeaderCheckResult{URL: target}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	info := ParseTarget(target)
	if info.URL == "" {
		result.Error = sharederrors.ErrEmptyTarget.Error()
		return result
	}

	client := a.Client
	if client == nil {
		timeout := a.Timeout
		if timeout <= 0 {
			timeout = constants.HeaderCheckTimeout
		}
		client = NewHTTPClient(timeout, false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("header check failed", append(info.LogFields(), zap.Error(err))...)
		result.Error = err.Error()
		return result
	}
	defer DrainAndClose(resp.Body, constants.MaxBodyBytes)

	result.StatusCode = resp.StatusCode
	result.Present, result.Missing, result.Issues = AnalyzeHeaders(resp.Header)
	if len(result.Issues) == 0 {
		result.Issues = nil
	}
	result.CheckedAt = time.Now().UTC()

	logger.Debug("header check complete", append(info.LogFields(),
		zap.Int("status", resp.StatusCode),
		zap.Int("missing", len(result.Missing)),
	)...)
	return result
}

// checkHSTS validates the Strict-Transport-Security header
func checkHSTS(value string) []string {
	var issues []string
	maxAge, ok := directiveValue(value, "max-age")
	if !ok {
		return append(issues, "Missing 'max-age' directive")
	}
	seconds, err := strconv.ParseInt(strings.Trim(maxAge, `"`), 10, 64)
	if err != nil {
		return append(issues, "Invalid 'max-age' value")
	}
	if seconds == 0 {
		issues = append(issues, "max-age is set to 0 (HSTS disabled)")
	}
	return issues
}

func directiveValue(value, name string) (string, bool) {
	for _, part := range strings.Split(value, ";") {
		key, val, _ := strings.Cut(strings.TrimSpace(part), "=")
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(val), true
		}
	}
	return "", false
}

// checkCSP validates the Content-Security-Policy header
func checkCSP(value string) []string {
	var issues []string
	value = strings.ToLower(value)

	if strings.Contains(value, "'unsafe-inline'") {
		issues = append(issues, "Contains 'unsafe-inline' which weakens CSP protection")
	}
	if strings.Contains(value, "'unsafe-eval'") {
		issues = append(issues, "Contains 'unsafe-eval' which allows eval() and similar functions")
	}
	for _, token := range strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == ';' || r == ',' }) {
		if token == "*" {
			issues = append(issues, "Contains wildcard (*) which is too permissive")
			break
		}
	}
	return issues
}

// checkXFrameOptions validates the X-Frame-Options header
func checkXFrameOptions(value string) []string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DENY", "SAMEORIGIN":
		return nil
	}
	return []string{"Should be 'DENY' or 'SAMEORIGIN'"}
}

// checkXContentTypeOptions validates the X-Content-Type-Options header
func checkXContentTypeOptions(value string) []string {
	if strings.EqualFold(strings.TrimSpace(value), "nosniff") {
		return nil
	}
	return []string{"Invalid value, should be 'nosniff'"}
}

// checkReferrerPolicy validates the Referrer-Policy header
func checkReferrerPolicy(value string) []string {
	if strings.Contains(strings.ToLower(value), "unsafe-url") {
		return []string{"Policy may leak sensitive information in referrer"}
	}
	return nil
}
