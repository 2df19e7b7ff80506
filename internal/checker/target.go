package checker

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// TargetInfo contains parsed target information
type TargetInfo struct {
	Original string // Target string as supplied by the operator
	Scheme   string // http or https
	Host     string // Hostname without port
	Port     string // Port if specified
	URL      string // Normalized URL used for requests
}

// ParseTarget parses a URL or bare hostname. Inputs without a scheme are
// treated as http:// targets, so all of these are accepted:
//   - example.com
//   - example.com:8080
//   - https://example.com/path
func ParseTarget(target string) *TargetInfo {
	target = strings.TrimSpace(target)
	info := &TargetInfo{Original: target}
	if target == "" {
		return info
	}

	parsed, err := url.Parse(target)
	// "example.com:8080" parses with scheme "example.com"; schemes never contain dots.
	if err != nil || parsed.Scheme == "" || strings.Contains(parsed.Scheme, ".") {
		parsed, err = url.Parse("http://" + target)
	}
	if err != nil || parsed.Host == "" {
		// Leave URL as-is; the HTTP client reports the failure per target.
		info.URL = target
		return info
	}

	info.Scheme = strings.ToLower(parsed.Scheme)
	info.Host = parsed.Hostname()
	info.Port = parsed.Port()
	info.URL = parsed.String()
	return info
}

// LogFields describes the parsed target for debug logging.
func (t *TargetInfo) LogFields() []zap.Field {
	fields := []zap.Field{
		zap.String("target", t.Original),
		zap.String("url", t.URL),
		zap.String("scheme", t.Scheme),
		zap.String("host", t.Host),
	}
	if t.Port != "" {
		fields = append(fields, zap.String("port", t.Port))
	}
	return fields
}
