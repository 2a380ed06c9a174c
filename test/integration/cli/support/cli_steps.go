package support

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/katelkum/translater/internal/testutil"
)

const commandTimeout = 30 * time.Second

// RegisterCLISteps wires the step definitions.
func (testCtx *TestContext) RegisterCLISteps(sc *godog.ScenarioContext) {
	sc.Step(`^a text file "([^"]*)" containing:$`, testCtx.aTextFileContaining)
	sc.Step(`^a scanned page image "([^"]*)"$`, testCtx.aScannedPageImage)
	sc.Step(`^a word document "([^"]*)" containing:$`, testCtx.aWordDocumentContaining)
	sc.Step(`^I run translater with "([^"]*)"$`, testCtx.iRunTranslaterWith)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
}

func (testCtx *TestContext) aTextFileContaining(name string, content *godog.DocString) error {
	return os.WriteFile(filepath.Join(testCtx.TempDir, name), []byte(content.Content), 0o600)
}

func (testCtx *TestContext) aScannedPageImage(name string) error {
	return testutil.WritePNGFixture(filepath.Join(testCtx.TempDir, name), 120, 80)
}

func (testCtx *TestContext) aWordDocumentContaining(name string, content *godog.DocString) error {
	paragraphs := strings.Split(strings.TrimSpace(content.Content), "\n")
	return testutil.WriteDOCXFixture(filepath.Join(testCtx.TempDir, name), paragraphs)
}

// iRunTranslaterWith executes the binary in the scratch directory. The API
// key is stripped from the environment so scenarios behave the same on
// developer machines and CI.
func (testCtx *TestContext) iRunTranslaterWith(arguments string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	args := strings.Fields(arguments)
	cmd := exec.CommandContext(ctx, testCtx.BinPath, args...)
	cmd.Dir = testCtx.TempDir

	env := make([]string, 0, len(os.Environ()))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "GEMINI_API_KEY=") {
			continue
		}
		env = append(env, kv)
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()
	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	testCtx.LastExitCode = -1
	if cmd.ProcessState != nil {
		testCtx.LastExitCode = cmd.ProcessState.ExitCode()
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("command failed (exit %d): %s", testCtx.LastExitCode, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastError == nil {
		return fmt.Errorf("command unexpectedly succeeded: %s", testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastOutput, expected) {
		return fmt.Errorf("output does not contain %q:\n%s", expected, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldNotContain(unexpected string) error {
	if strings.Contains(testCtx.LastOutput, unexpected) {
		return fmt.Errorf("output unexpectedly contains %q:\n%s", unexpected, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldExist(name string) error {
	if _, err := os.Stat(filepath.Join(testCtx.TempDir, name)); err != nil {
		return fmt.Errorf("expected file %s: %w", name, err)
	}
	return nil
}
