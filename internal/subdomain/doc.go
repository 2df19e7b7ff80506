// Package subdomain enumerates a domain's subdomains from certificate
// transparency logs and filters them down to names that resolve and answer
// HTTP.
package subdomain
