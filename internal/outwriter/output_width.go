package outwriter

import (
	"os"

	"golang.org/x/term"
)

// Width bounds for the path column of the history table.
const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	minPathWidth     = 15
	maxPathWidth     = 70
)

// GetMaxTablePathWidth calculates the maximum width for project paths in the
// history table based on terminal width.
func GetMaxTablePathWidth() int {
	termWidth := defaultTermWidth
	if detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && detectedWidth > 0 {
		termWidth = detectedWidth
	}
	return pathWidthFor(termWidth)
}

// pathWidthFor returns the space left for the path column in a terminal of the given width.
func pathWidthFor(termWidth int) int {
	// Run + Started + LOC + CC + Effort + MI with borders/padding
	baseWidth := 75

	available := termWidth - baseWidth
	if available < minPathWidth {
		return minPathWidth
	}
	if available > maxPathWidth {
		return maxPathWidth
	}
	return available
}
