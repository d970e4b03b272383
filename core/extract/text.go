package extract

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

// TotalMarker separates the per-file blocks from the aggregate block of a raw report.
const TotalMarker = "** Total **"

var (
	locRegex        = regexp.MustCompile(`LOC:\s+(\d+)`)
	commentsRegex   = regexp.MustCompile(`Comments:\s+(\d+)`)
	multiRegex      = regexp.MustCompile(`Multi:\s+(\d+)`)
	commentPctRegex = regexp.MustCompile(`\(C \+ M % L\):\s+(\d+)%`)
	avgCCRegex      = regexp.MustCompile(`Average complexity: [A-F] \(([\d.]+)\)`)
)

// ParseRaw reads the aggregate block that follows the total marker.
// The comment count is single-line comments plus multi-line strings.
func (ReportParser) ParseRaw(report []byte) (schema.RawMetrics, error) {
	_, total, found := bytes.Cut(report, []byte(TotalMarker))
	if !found {
		return schema.RawMetrics{}, &contract.ParseError{Report: RawReport, Field: TotalMarker}
	}

	loc, err := matchInt(locRegex, total, "LOC")
	if err != nil {
		return schema.RawMetrics{}, err
	}
	comments, err := matchInt(commentsRegex, total, "Comments")
	if err != nil {
		return schema.RawMetrics{}, err
	}
	multi, err := matchInt(multiRegex, total, "Multi")
	if err != nil {
		return schema.RawMetrics{}, err
	}
	pct, err := matchInt(commentPctRegex, total, "(C + M % L)")
	if err != nil {
		return schema.RawMetrics{}, err
	}

	return schema.RawMetrics{
		LOC:                  loc,
		NumberOfComments:     comments + multi,
		PercentageOfComments: pct,
	}, nil
}

// ParseComplexity reads the average complexity line at the end of the cc report.
func (ReportParser) ParseComplexity(report []byte) (schema.ComplexityMetrics, error) {
	m := avgCCRegex.FindSubmatch(report)
	if m == nil {
		return schema.ComplexityMetrics{}, &contract.ParseError{Report: ComplexityReport, Field: "Average complexity"}
	}
	v, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return schema.ComplexityMetrics{}, &contract.ParseError{Report: ComplexityReport, Field: "Average complexity", Err: err}
	}
	return schema.ComplexityMetrics{MeanPerBlockCC: v}, nil
}

func matchInt(re *regexp.Regexp, block []byte, field string) (int, error) {
	m := re.FindSubmatch(block)
	if m == nil {
		return 0, &contract.ParseError{Report: RawReport, Field: field}
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, &contract.ParseError{Report: RawReport, Field: field, Err: err}
	}
	return v, nil
}
