package contract

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every fatal condition of a run. Typed errors below wrap
// one of these so callers can match with errors.Is.
var (
	ErrUsage              = errors.New("usage error")
	ErrAnalyzerInvocation = errors.New("analyzer invocation failed")
	ErrParse              = errors.New("report parse error")
	ErrEmptyReport        = errors.New("empty report")
	ErrDirectoryConflict  = errors.New("run directory already exists")
)

// Exit codes returned by the CLI.
const (
	ExitOK                 = 0
	ExitUsage              = 1
	ExitAnalyzerInvocation = 2
	ExitReport             = 3
	ExitDirectoryConflict  = 4
	ExitFailure            = 1
)

// UsageError reports missing or invalid command-line arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Unwrap implements errors.Unwrap.
func (e *UsageError) Unwrap() error { return ErrUsage }

// AnalyzerInvocationError reports an analyzer process that could not be
// started, exited non-zero, or was given unusable arguments.
type AnalyzerInvocationError struct {
	Mode   string
	Args   []string
	Stderr string
	Err    error
}

func (e *AnalyzerInvocationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "analyzer %s invocation failed", e.Mode)
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Args, " "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", e.Stderr)
	}
	return b.String()
}

// Unwrap implements errors.Unwrap.
func (e *AnalyzerInvocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAnalyzerInvocation}
	}
	return []error{ErrAnalyzerInvocation, e.Err}
}

// ParseError reports an expected marker or field missing from a report.
type ParseError struct {
	Report string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %s report: missing %s", e.Report, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error { return ErrParse }

// EmptyReportError reports a structured report without file entries.
type EmptyReportError struct {
	Report string
}

func (e *EmptyReportError) Error() string {
	return fmt.Sprintf("%s report has no file entries, mean is undefined", e.Report)
}

// Unwrap implements errors.Unwrap.
func (e *EmptyReportError) Unwrap() error { return ErrEmptyReport }

// DirectoryConflictError reports a run directory that already exists.
type DirectoryConflictError struct {
	Path string
}

func (e *DirectoryConflictError) Error() string {
	return fmt.Sprintf("run directory %q already exists", e.Path)
}

// Unwrap implements errors.Unwrap.
func (e *DirectoryConflictError) Unwrap() error { return ErrDirectoryConflict }

// ExitCode maps an error onto the CLI exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrAnalyzerInvocation):
		return ExitAnalyzerInvocation
	case errors.Is(err, ErrParse), errors.Is(err, ErrEmptyReport):
		return ExitReport
	case errors.Is(err, ErrDirectoryConflict):
		return ExitDirectoryConflict
	default:
		return ExitFailure
	}
}
