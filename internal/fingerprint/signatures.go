package fingerprint

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

//go:embed signatures.yaml
var defaultSignaturesYAML []byte

// Signature is one technology and the patterns that reveal it.
type Signature struct {
	Technology string   `yaml:"technology"`
	Patterns   []string `yaml:"patterns"`
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

type compiledSignature struct {
	technology string
	patterns   []compiledPattern
}

// SignatureTable is an ordered, compiled signature set. It is immutable once
// built and safe for concurrent use.
type SignatureTable struct {
	entries []compiledSignature
}

// DefaultSignatures returns the built-in table.
func DefaultSignatures() *SignatureTable {
	table, err := ParseSignatures(defaultSignaturesYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in signature table: %v", err))
	}
	return table
}

// LoadSignatures reads a YAML signature table from path.
func LoadSignatures(path string) (*SignatureTable, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied signature file
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}
	return ParseSignatures(data)
}

// ParseSignatures decodes and compiles a YAML list of signatures. Every
// pattern is compiled case-insensitively; a bad pattern rejects the table.
func ParseSignatures(data []byte) (*SignatureTable, error) {
	var raw []Signature
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", sharederrors.ErrInvalidSignature, err)
	}
	return CompileSignatures(raw)
}

// CompileSignatures builds a table from in-memory signatures.
func CompileSignatures(signatures []Signature) (*SignatureTable, error) {
	if len(signatures) == 0 {
		return nil, fmt.Errorf("%w: no signatures defined", sharederrors.ErrInvalidSignature)
	}

	seen := make(map[string]bool, len(signatures))
	table := &SignatureTable{entries: make([]compiledSignature, 0, len(signatures))}
	for _, sig := range signatures {
		name := strings.TrimSpace(sig.Technology)
		if name == "" {
			return nil, fmt.Errorf("%w: signature without technology name", sharederrors.ErrInvalidSignature)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate technology %q", sharederrors.ErrInvalidSignature, name)
		}
		seen[name] = true

		entry := compiledSignature{technology: name}
		for _, pattern := range sig.Patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %s pattern %q: %v", sharederrors.ErrInvalidSignature, name, pattern, err)
			}
			entry.patterns = append(entry.patterns, compiledPattern{source: pattern, re: re})
		}
		table.entries = append(table.entries, entry)
	}
	return table, nil
}

// Technologies lists technology names in table order.
func (t *SignatureTable) Technologies() []string {
	names := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		names = append(names, entry.technology)
	}
	return names
}
