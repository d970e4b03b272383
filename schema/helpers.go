package schema

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeProjectName turns a project path into a filesystem-safe token by
// replacing both kinds of path separators with an underscore.
func NormalizeProjectName(projectPath string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(projectPath)
}

// RunDirName returns the directory name of a run: run_<id>_<normalized>.
func RunDirName(id int, normalized string) string {
	return RunDirPrefix + strconv.Itoa(id) + RunDirSeparator + normalized
}

// ParseRunDirName extracts the run id from a directory name that belongs to
// the given normalized project. It returns false for names of other projects
// and for malformed names whose second segment is not purely numeric.
func ParseRunDirName(name, normalized string) (int, bool) {
	suffix := RunDirSeparator + normalized
	if !strings.HasPrefix(name, RunDirPrefix) || !strings.HasSuffix(name, suffix) {
		return 0, false
	}
	parts := strings.Split(name, RunDirSeparator)
	if len(parts) < 3 || !isDigits(parts[1]) {
		return 0, false
	}
	// The id segment must be directly followed by the project token.
	if RunDirPrefix+parts[1]+suffix != name {
		return 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatMetric renders a float the way the digest shows it: the shortest
// representation that round-trips, always with a fractional part.
func FormatMetric(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
