// Package extract turns analyzer reports into metric values.
// The text patterns it accepts are a versioned contract with the analyzer.
package extract

import "github.com/huangsam/radonrun/schema"

// Report names used in parse errors.
const (
	RawReport             = "raw"
	ComplexityReport      = "cc"
	HalsteadReport        = "hal"
	MaintainabilityReport = "mi"
)

// Parser extracts scalar metrics from the four analyzer reports.
// Implementations return *contract.ParseError when an expected field is
// missing and *contract.EmptyReportError when a structured report lists no files.
type Parser interface {
	ParseRaw(report []byte) (schema.RawMetrics, error)
	ParseComplexity(report []byte) (schema.ComplexityMetrics, error)
	ParseHalstead(report []byte) (schema.HalsteadMetrics, error)
	ParseMaintainability(report []byte) (schema.MaintainabilityMetrics, error)
}

// ReportParser is the default Parser. It reads the raw and complexity reports
// with regular expressions and decodes the Halstead and maintainability reports as JSON.
type ReportParser struct{}

var _ Parser = ReportParser{} // Compile-time check

// Default is the parser used when none is configured.
var Default Parser = ReportParser{}
