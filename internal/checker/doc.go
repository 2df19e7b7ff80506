// Package checker holds the shared execution model for seca-recon.
//
//   - Checker[R] is implemented by per-target probes (HeaderAuditor here,
//     fingerprint.Fingerprinter elsewhere). Check never fails; transport
//     errors are encoded in the result value.
//   - Runner and Map run tasks on a bounded goroutine pool with an optional
//     rate limiter and per-task timeout. Results are written by position, so
//     output order always equals input order.
//   - ParseTarget normalizes operator-supplied targets into request URLs.
package checker
