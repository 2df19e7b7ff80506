package fingerprint

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

func TestDefaultSignatures_Order(t *testing.T) {
	want := []string{
		"WordPress", "WooCommerce", "jQuery", "React", "Angular", "Vue",
		"Laravel", "Django", "Express", "PHP", "ASP.NET", "Nginx", "Apache",
	}
	if got := DefaultSignatures().Technologies(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected default table order: %v", got)
	}
}

func TestParseSignatures_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"bad regex", "- technology: Broken\n  patterns:\n    - 'foo(('\n"},
		{"missing name", "- patterns:\n    - 'foo'\n"},
		{"duplicate", "- technology: A\n  patterns: ['a']\n- technology: A\n  patterns: ['b']\n"},
		{"empty", "[]\n"},
		{"not yaml list", "technology: A\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSignatures([]byte(tc.yaml))
			if !errors.Is(err, sharederrors.ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestLoadSignatures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigs.yaml")
	data := "- technology: Hugo\n  patterns:\n    - 'generator\" content=\"hugo'\n    - 'hugo'\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	table, err := LoadSignatures(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	detected := table.Analyze(`<meta name="generator" content="Hugo 0.120">`, nil, nil)
	matches, ok := detected.Get("Hugo")
	if !ok || len(matches) == 0 {
		t.Fatalf("expected Hugo detection, got %+v", detected)
	}

	if _, err := LoadSignatures(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
