// Package constants centralizes defaults shared across the CLI.
//
// Timeouts, pool sizes, report file names and file permissions live here so
// cmd/ and the internal pipelines agree on them without import cycles.
package constants
