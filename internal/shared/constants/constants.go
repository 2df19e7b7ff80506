package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating report files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// HeaderCheckTimeout bounds the single GET issued per header audit.
	HeaderCheckTimeout = 8 * time.Second
	// FingerprintTimeout bounds the single GET issued per fingerprinted target.
	FingerprintTimeout = 8 * time.Second
	// CTQueryTimeout bounds connecting to the certificate-transparency
	// source, waiting for its headers, and each stalled body read.
	CTQueryTimeout = 10 * time.Second
	// DNSLookupTimeout is the fixed per-name resolution budget.
	DNSLookupTimeout = 5 * time.Second
	// LivenessTimeout bounds each of the http:// and https:// probes.
	LivenessTimeout = 5 * time.Second
)

const (
	// DefaultWorkers sizes the resolution and liveness pools.
	DefaultWorkers = 10
	// MaxBodyBytes caps how much of a response body is read for fingerprinting.
	MaxBodyBytes = 5 << 20
	// CTMaxBodyBytes guards the streamed certificate-transparency answer.
	// Large domains routinely produce tens of megabytes.
	CTMaxBodyBytes = 1 << 30
	// FingerprintUserAgent is sent with every fingerprinting request.
	FingerprintUserAgent = "tech-fingerprint/1.0 (+https://github.com/khanhnv2901/seca-recon)"
	// CTSearchURL is the public crt.sh search endpoint.
	CTSearchURL = "https://crt.sh/"
)

// Report artifact names. Every run overwrites them.
const (
	HeadersJSONFile   = "headers_report.json"
	HeadersMDFile     = "headers_report.md"
	SubdomainsFile    = "subdomains.txt"
	AliveFile         = "alive.txt"
	DefaultTechReport = "tech_report"
)
