package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/khanhnv2901/seca-recon/internal/shared/constants"
)

// Writer places report artifacts inside one output directory. Every write
// overwrites the previous artifact of the same name.
type Writer struct {
	Dir string
}

// NewWriter returns a writer for dir, creating the directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Writer{Dir: dir}, nil
}

// WriteJSON writes v as indented JSON and returns the file path.
func (w *Writer) WriteJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.WriteText(name, string(data))
}

// WriteLines writes one entry per line, each newline terminated.
func (w *Writer) WriteLines(name string, lines []string) (string, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return w.WriteText(name, b.String())
}

// WriteText writes content verbatim and returns the file path.
func (w *Writer) WriteText(name, content string) (string, error) {
	path, err := ResolveOutputPath(w.Dir, name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), constants.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
