package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/schema"
)

type halsteadEntry struct {
	Total *struct {
		Effort *float64 `json:"effort"`
	} `json:"total"`
	Error string `json:"error"`
}

type maintainabilityEntry struct {
	MI    *float64 `json:"mi"`
	Error string   `json:"error"`
}

// ParseHalstead averages the total effort of every file in a hal report.
func (ReportParser) ParseHalstead(report []byte) (schema.HalsteadMetrics, error) {
	var values []float64
	err := decodeFileMap(report, HalsteadReport, func(file string, dec *json.Decoder) error {
		var entry halsteadEntry
		if err := dec.Decode(&entry); err != nil {
			return &contract.ParseError{Report: HalsteadReport, Field: file, Err: err}
		}
		if entry.Total == nil || entry.Total.Effort == nil {
			return &contract.ParseError{Report: HalsteadReport, Field: fieldFor(file, "total.effort", entry.Error)}
		}
		values = append(values, *entry.Total.Effort)
		return nil
	})
	if err != nil {
		return schema.HalsteadMetrics{}, err
	}
	mean, err := Mean(values, HalsteadReport)
	if err != nil {
		return schema.HalsteadMetrics{}, err
	}
	return schema.HalsteadMetrics{MeanPerFileEffort: mean}, nil
}

// ParseMaintainability averages the maintainability index of every file in an mi report.
func (ReportParser) ParseMaintainability(report []byte) (schema.MaintainabilityMetrics, error) {
	var values []float64
	err := decodeFileMap(report, MaintainabilityReport, func(file string, dec *json.Decoder) error {
		var entry maintainabilityEntry
		if err := dec.Decode(&entry); err != nil {
			return &contract.ParseError{Report: MaintainabilityReport, Field: file, Err: err}
		}
		if entry.MI == nil {
			return &contract.ParseError{Report: MaintainabilityReport, Field: fieldFor(file, "mi", entry.Error)}
		}
		values = append(values, *entry.MI)
		return nil
	})
	if err != nil {
		return schema.MaintainabilityMetrics{}, err
	}
	mean, err := Mean(values, MaintainabilityReport)
	if err != nil {
		return schema.MaintainabilityMetrics{}, err
	}
	return schema.MaintainabilityMetrics{MeanPerFileMI: mean}, nil
}

// Mean returns the arithmetic mean of values. An empty slice is an
// EmptyReportError rather than zero.
func Mean(values []float64, report string) (float64, error) {
	if len(values) == 0 {
		return 0, &contract.EmptyReportError{Report: report}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// decodeFileMap walks a top-level JSON object in document order and hands each
// file entry to fn, so sums are accumulated in the order the analyzer reported.
func decodeFileMap(report []byte, name string, fn func(file string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(report))
	tok, err := dec.Token()
	if err != nil {
		return &contract.ParseError{Report: name, Field: "JSON object", Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &contract.ParseError{Report: name, Field: "JSON object", Err: fmt.Errorf("unexpected token %v", tok)}
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return &contract.ParseError{Report: name, Field: "file key", Err: err}
		}
		file, _ := tok.(string)
		if err := fn(file, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return &contract.ParseError{Report: name, Field: "closing brace", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &contract.ParseError{Report: name, Field: "end of report", Err: fmt.Errorf("trailing data after JSON object")}
	}
	return nil
}

func fieldFor(file, field, analyzerErr string) string {
	if analyzerErr != "" {
		return fmt.Sprintf("%s for %s (analyzer error: %s)", field, file, analyzerErr)
	}
	return fmt.Sprintf("%s for %s", field, file)
}
