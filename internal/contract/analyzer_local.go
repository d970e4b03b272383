package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/huangsam/radonrun/schema"
)

// excludeFlag is the analyzer flag that carries the exclude pattern.
const excludeFlag = "-e"

// LocalAnalyzerClient implements the AnalyzerClient interface by executing the
// analyzer binary installed on the machine.
type LocalAnalyzerClient struct {
	binary string
}

var _ AnalyzerClient = &LocalAnalyzerClient{} // Compile-time check

// NewLocalAnalyzerClient creates a new instance of the local analyzer client.
// An empty binary name falls back to the default analyzer.
func NewLocalAnalyzerClient(binary string) *LocalAnalyzerClient {
	if binary == "" {
		binary = schema.DefaultAnalyzerName
	}
	return &LocalAnalyzerClient{binary: binary}
}

// Binary returns the analyzer executable name or path.
func (c *LocalAnalyzerClient) Binary() string {
	return c.binary
}

// Run executes the analyzer and returns its standard output.
func (c *LocalAnalyzerClient) Run(ctx context.Context, mode schema.AnalyzerMode, projectPath string, exclude *string, args ...string) ([]byte, error) {
	fullArgs := BuildAnalyzerArgs(mode, projectPath, exclude, args...)
	cmd := exec.CommandContext(ctx, c.binary, fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &AnalyzerInvocationError{
			Mode:   string(mode),
			Args:   append([]string{c.binary}, fullArgs...),
			Stderr: strings.TrimSpace(string(exitErr.Stderr)),
			Err:    fmt.Errorf("exit status %d", exitErr.ExitCode()),
		}
	} else if err != nil {
		return nil, &AnalyzerInvocationError{
			Mode: string(mode),
			Args: append([]string{c.binary}, fullArgs...),
			Err:  fmt.Errorf("%w. Ensure %s is installed and available on your PATH", err, c.binary),
		}
	}
	return out, nil
}

// RawReport implements the AnalyzerClient interface.
func (c *LocalAnalyzerClient) RawReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	return c.Run(ctx, schema.RawMode, projectPath, exclude, "-s")
}

// ComplexityReport implements the AnalyzerClient interface.
func (c *LocalAnalyzerClient) ComplexityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	return c.Run(ctx, schema.ComplexityMode, projectPath, exclude, "-s", "-a")
}

// HalsteadReport implements the AnalyzerClient interface.
func (c *LocalAnalyzerClient) HalsteadReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	return c.Run(ctx, schema.HalsteadMode, projectPath, exclude, "-j")
}

// MaintainabilityReport implements the AnalyzerClient interface.
func (c *LocalAnalyzerClient) MaintainabilityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	return c.Run(ctx, schema.MaintainabilityMode, projectPath, exclude, "-j")
}

// BuildAnalyzerArgs returns the analyzer argument list for a mode:
// <mode> <path> [args...] [-e <exclude>].
func BuildAnalyzerArgs(mode schema.AnalyzerMode, projectPath string, exclude *string, args ...string) []string {
	fullArgs := make([]string, 0, len(args)+4)
	fullArgs = append(fullArgs, string(mode), projectPath)
	fullArgs = append(fullArgs, args...)
	if exclude != nil {
		fullArgs = append(fullArgs, excludeFlag, *exclude)
	}
	return fullArgs
}

// AnalyzerAvailable checks that the analyzer binary can be found before any
// run directory is allocated. It returns the resolved path.
func AnalyzerAvailable(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &AnalyzerInvocationError{
			Mode: "preflight",
			Err:  fmt.Errorf("%s not found: %w. Install it with 'pip install radon' or set --analyzer", binary, err),
		}
	}
	return path, nil
}
