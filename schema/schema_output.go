package schema

// Grade labels shared by the complexity and maintainability scales.
const (
	GradeA = "A"
	GradeB = "B"
	GradeC = "C"
	GradeD = "D"
	GradeE = "E"
	GradeF = "F"
)

// EnrichedSummary adds presentation data to a Summary.
type EnrichedSummary struct {
	Summary
	CCGrade string `json:"cc_grade"`
	MIGrade string `json:"mi_grade"`
}

// ComplexityGrade maps a cyclomatic complexity value onto the analyzer's A-F rank scale.
func ComplexityGrade(cc float64) string {
	switch {
	case cc <= 5:
		return GradeA
	case cc <= 10:
		return GradeB
	case cc <= 20:
		return GradeC
	case cc <= 30:
		return GradeD
	case cc <= 40:
		return GradeE
	default:
		return GradeF
	}
}

// MaintainabilityGrade maps a maintainability index onto the analyzer's A-C rank scale.
func MaintainabilityGrade(mi float64) string {
	switch {
	case mi > 19:
		return GradeA
	case mi > 9:
		return GradeB
	default:
		return GradeC
	}
}

// EnrichSummary adds complexity and maintainability grades to a summary.
func EnrichSummary(s Summary) EnrichedSummary {
	return EnrichedSummary{
		Summary: s,
		CCGrade: ComplexityGrade(s.CC.MeanPerBlockCC),
		MIGrade: MaintainabilityGrade(s.MI.MeanPerFileMI),
	}
}
