package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	FatalColor = color.New(color.FgRed, color.Bold) // FatalColor marks unrecoverable failures.
	WarnColor  = color.New(color.FgYellow)          // WarnColor marks degraded but non-fatal conditions.
	InfoColor  = color.New(color.FgCyan)            // InfoColor marks informational notices.
)

// Grade colors for metric labels.
var (
	GoodColor = color.New(color.FgGreen)
	FairColor = color.New(color.FgYellow)
	PoorColor = color.New(color.FgRed, color.Bold)
)

// GetColorGrade returns a colored grade label for console output (table).
// Grades A and B are good, C and D are fair, the rest are poor.
func GetColorGrade(grade string) string {
	switch grade {
	case "A", "B":
		return GoodColor.Sprint(grade)
	case "C", "D":
		return FairColor.Sprint(grade)
	default:
		return PoorColor.Sprint(grade)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program with the exit code mapped from err.
func LogFatal(msg string, err error) {
	_, _ = FatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(ExitCode(err))
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = WarnColor.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs an informational message to stderr.
func LogInfo(format string, args ...any) {
	_, _ = InfoColor.Fprintf(os.Stderr, format+"\n", args...)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
