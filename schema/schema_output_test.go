package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexityGrade(t *testing.T) {
	tests := []struct {
		cc   float64
		want string
	}{
		{1, GradeA}, {5, GradeA}, {5.1, GradeB}, {10, GradeB},
		{15, GradeC}, {25, GradeD}, {35, GradeE}, {41, GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComplexityGrade(tt.cc), "cc=%v", tt.cc)
	}
}

func TestMaintainabilityGrade(t *testing.T) {
	assert.Equal(t, GradeA, MaintainabilityGrade(72.4))
	assert.Equal(t, GradeB, MaintainabilityGrade(19))
	assert.Equal(t, GradeB, MaintainabilityGrade(9.5))
	assert.Equal(t, GradeC, MaintainabilityGrade(9))
}

func TestEnrichSummary(t *testing.T) {
	s := Summary{
		Run: 1,
		CC:  ComplexityMetrics{MeanPerBlockCC: 3.5},
		MI:  MaintainabilityMetrics{MeanPerFileMI: 55},
	}
	enriched := EnrichSummary(s)
	assert.Equal(t, GradeA, enriched.CCGrade)
	assert.Equal(t, GradeA, enriched.MIGrade)
	assert.Equal(t, 1, enriched.Run)
}
