package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupTestAppContext installs an AppContext writing into a temp directory
// with progress output disabled. The returned func restores prior state.
func setupTestAppContext(t *testing.T) (string, func()) {
	t.Helper()

	originalCtx := globalAppContext
	originalCfg := *cliConfig

	outDir := t.TempDir()
	cfg := newCLIConfig()
	cfg.ProgressEnabled = false
	*cliConfig = *cfg

	globalAppContext = &AppContext{
		Logger:    zap.NewNop().Sugar(),
		OutputDir: outDir,
		Config:    cliConfig,
	}

	return outDir, func() {
		globalAppContext = originalCtx
		*cliConfig = originalCfg
	}
}

// runCommand executes cmd.RunE with output captured.
func runCommand(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})

	err := cmd.RunE(cmd, []string{})
	return buf.String(), err
}
