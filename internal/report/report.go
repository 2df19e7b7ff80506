package report

import (
	"github.com/khanhnv2901/seca-recon/internal/checker"
	"github.com/khanhnv2901/seca-recon/internal/fingerprint"
	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
)

// WriteHeadersReport writes headers_report.json and headers_report.md.
func (w *Writer) WriteHeadersReport(results []checker.HeaderCheckResult) ([]string, error) {
	if results == nil {
		results = []checker.HeaderCheckResult{}
	}
	jsonPath, err := w.WriteJSON(constants.HeadersJSONFile, results)
	if err != nil {
		return nil, err
	}
	md, err := RenderHeadersMarkdown(results)
	if err != nil {
		return nil, err
	}
	mdPath, err := w.WriteText(constants.HeadersMDFile, md)
	if err != nil {
		return nil, err
	}
	return []string{jsonPath, mdPath}, nil
}

// WriteTechReport writes <base>.json and <base>.md.
func (w *Writer) WriteTechReport(base string, results []fingerprint.FingerprintResult) ([]string, error) {
	if base == "" {
		base = constants.DefaultTechReport
	}
	if results == nil {
		results = []fingerprint.FingerprintResult{}
	}
	jsonPath, err := w.WriteJSON(base+".json", results)
	if err != nil {
		return nil, err
	}
	md, err := RenderTechMarkdown(results)
	if err != nil {
		return nil, err
	}
	mdPath, err := w.WriteText(base+".md", md)
	if err != nil {
		return nil, err
	}
	return []string{jsonPath, mdPath}, nil
}

// WriteSubdomains writes the full discovered list.
func (w *Writer) WriteSubdomains(names []string) (string, error) {
	return w.WriteLines(constants.SubdomainsFile, names)
}

// WriteAlive writes the hosts that answered the liveness probe.
func (w *Writer) WriteAlive(names []string) (string, error) {
	return w.WriteLines(constants.AliveFile, names)
}
