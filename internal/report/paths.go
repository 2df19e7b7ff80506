package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/seca-recon/internal/shared/errors"
)

// ResolveOutputPath joins name under dir and refuses any result that would
// land outside dir. The returned path is absolute.
func ResolveOutputPath(dir string, elems ...string) (string, error) {
	if dir == "" {
		return "", errors.New("output directory is required")
	}

	cleanBase, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}

	target, err := filepath.Abs(filepath.Join(append([]string{cleanBase}, elems...)...))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", sharederrors.ErrPathEscape, target)
	}

	return target, nil
}

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}
