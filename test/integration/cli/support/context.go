// Package support holds the godog step definitions for the CLI suite.
package support

import (
	"fmt"
	"os"
)

// TestContext holds the state for one scenario.
type TestContext struct {
	// Location of the built CLI binary.
	BinPath string

	// Scratch directory; commands run with this as working directory.
	TempDir string

	// Last command execution state.
	LastOutput   string
	LastExitCode int
	LastError    error
}

// NewTestContext creates a scenario context with a fresh scratch directory.
func NewTestContext(binPath string) (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "translater-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &TestContext{
		BinPath: binPath,
		TempDir: tempDir,
	}, nil
}

// Cleanup removes the scratch directory.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.TempDir != "" {
		return os.RemoveAll(testCtx.TempDir)
	}
	return nil
}
