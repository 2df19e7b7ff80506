package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// statusColors is keyed by lower-cased status word.
var statusColors = map[string]func(a ...interface{}) string{
	"ok":      colorSuccess,
	"success": colorSuccess,
	"pass":    colorSuccess,
	"alive":   colorSuccess,
	"missing": colorWarn,
	"warn":    colorWarn,
	"error":   colorError,
	"fail":    colorError,
	"failed":  colorError,
}

func formatStatusWithColor(status string) string {
	if paint, ok := statusColors[strings.ToLower(status)]; ok {
		return paint(status)
	}
	return status
}

// setColorOutput forces ANSI output off when disabled. Enabling leaves
// fatih/color's terminal detection in charge.
func setColorOutput(enabled bool) {
	if !enabled {
		color.NoColor = true
	}
}
