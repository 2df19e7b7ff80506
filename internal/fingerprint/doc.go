// Package fingerprint identifies web technologies from a single HTTP
// response using a regex signature table, header hints and, optionally, the
// wappalyzer fingerprint database.
package fingerprint
