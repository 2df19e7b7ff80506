// Package report writes seca-recon artifacts (JSON, markdown and plain line
// lists) inside a single output directory.
package report
