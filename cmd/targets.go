package cmd

import (
	"bufio"
	"os"
	"strings"
)

// collectTargets resolves --url / --input into a target list. --url wins
// when both are given. A nil list with a nil error means neither was set.
func collectTargets(url, inputPath string) ([]string, error) {
	if url = strings.TrimSpace(url); url != "" {
		return []string{url}, nil
	}
	if inputPath == "" {
		return nil, nil
	}
	return readTargetsFile(inputPath)
}

// readTargetsFile returns the non-blank, trimmed lines of path in order.
func readTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- operator-supplied target list
	if err != nil {
		return nil, &InputFileError{Path: path, Err: err}
	}
	defer f.Close()

	targets := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &InputFileError{Path: path, Err: err}
	}
	return targets, nil
}
