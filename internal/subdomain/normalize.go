package subdomain

import (
	"sort"
	"strings"
)

// NormalizeName lower-cases and trims a host name. Trailing dots from
// fully-qualified forms are dropped.
func NormalizeName(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}

// InScope reports whether name is domain itself or one of its subdomains.
// The match is label-aware: "evilexample.com" is not in scope for
// "example.com".
func InScope(name, domain string) bool {
	if name == "" || domain == "" {
		return false
	}
	return name == domain || strings.HasSuffix(name, "."+domain)
}

// ExtractNames turns raw CT name_value fields into the sorted, de-duplicated
// set of in-scope names. A single field may carry several names separated by
// newlines. Wildcard entries such as "*.example.com" are kept verbatim.
func ExtractNames(nameValues []string, domain string) []string {
	domain = NormalizeName(domain)
	set := make(map[string]struct{})
	for _, value := range nameValues {
		for _, raw := range strings.Split(value, "\n") {
			name := NormalizeName(raw)
			if !InScope(name, domain) {
				continue
			}
			set[name] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
