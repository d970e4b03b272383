package extract

import (
	"testing"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHalstead(t *testing.T) {
	report := `{"a.x": {"total": {"effort": 10}}, "b.x": {"total": {"effort": 30}}}`
	m, err := Default.ParseHalstead([]byte(report))
	require.NoError(t, err)
	assert.Equal(t, 20.0, m.MeanPerFileEffort)
}

func TestParseHalstead_FullEntries(t *testing.T) {
	report := `{
  "pkg/a.py": {"total": {"h1": 3, "h2": 4, "effort": 12.5, "bugs": 0.01}, "functions": {"main": {"effort": 1}}},
  "pkg/b.py": {"total": {"h1": 1, "effort": 7.5}, "functions": {}}
}`
	m, err := Default.ParseHalstead([]byte(report))
	require.NoError(t, err)
	assert.Equal(t, 10.0, m.MeanPerFileEffort)
}

func TestParseHalstead_Errors(t *testing.T) {
	tests := []struct {
		name   string
		report string
		target error
	}{
		{"empty object", `{}`, contract.ErrEmptyReport},
		{"malformed", `{"a.x": `, contract.ErrParse},
		{"not an object", `[1, 2]`, contract.ErrParse},
		{"null", `null`, contract.ErrParse},
		{"missing total", `{"a.x": {"functions": {}}}`, contract.ErrParse},
		{"analyzer error entry", `{"a.x": {"error": "invalid syntax"}}`, contract.ErrParse},
		{"wrong entry type", `{"a.x": 5}`, contract.ErrParse},
		{"trailing data", `{"a.x": {"total": {"effort": 1}}} {}`, contract.ErrParse},
		{"empty input", ``, contract.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default.ParseHalstead([]byte(tt.report))
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseMaintainability(t *testing.T) {
	report := `{"a.py": {"mi": 60.5, "rank": "A"}, "b.py": {"mi": 39.5, "rank": "A"}, "c.py": {"mi": 100.0, "rank": "A"}}`
	m, err := Default.ParseMaintainability([]byte(report))
	require.NoError(t, err)
	assert.InDelta(t, 66.66666666666667, m.MeanPerFileMI, 1e-12)
}

func TestParseMaintainability_Errors(t *testing.T) {
	_, err := Default.ParseMaintainability([]byte(`{}`))
	var emptyErr *contract.EmptyReportError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, MaintainabilityReport, emptyErr.Report)

	_, err = Default.ParseMaintainability([]byte(`{"a.py": {"rank": "A"}}`))
	var parseErr *contract.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Field, "a.py")

	_, err = Default.ParseMaintainability([]byte(`{"a.py": {"error": "bad"}}`))
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Field, "analyzer error: bad")

	_, err = Default.ParseMaintainability([]byte(`not json`))
	assert.ErrorIs(t, err, contract.ErrParse)
}

func TestMean(t *testing.T) {
	v, err := Mean([]float64{10, 30}, HalsteadReport)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	_, err = Mean(nil, HalsteadReport)
	assert.ErrorIs(t, err, contract.ErrEmptyReport)
}
