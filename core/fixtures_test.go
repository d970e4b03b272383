package core

import (
	"github.com/huangsam/radonrun/internal/contract"
	"github.com/stretchr/testify/mock"
)

const (
	rawFixture = `pkg/a.py
    LOC: 70
    Comments: 6
    Multi: 3
        (C + M % L): 13%
** Total **
    LOC: 120
    LLOC: 80
    SLOC: 90
    Comments: 10
    Single comments: 9
    Multi: 5
    Blank: 20
    - Comment Stats
        (C % L): 8%
        (C % S): 11%
        (C + M % L): 12%
`
	ccFixture = `pkg/a.py
    F 1:0 handler - A (3)
    F 9:0 helper - A (4)

2 blocks (classes, functions, methods) analyzed.
Average complexity: A (3.5)
`
	halFixture = `{"pkg/a.py": {"total": {"effort": 10.0}}, "pkg/b.py": {"total": {"effort": 30.0}}}`
	miFixture  = `{"pkg/a.py": {"mi": 60.0, "rank": "A"}, "pkg/b.py": {"mi": 73.0, "rank": "A"}}`
)

// reportFixtures returns an analyzer mock answering every report for projectPath.
func reportFixtures(projectPath string, exclude *string) *contract.MockAnalyzerClient {
	client := &contract.MockAnalyzerClient{}
	client.On("RawReport", mock.Anything, projectPath, exclude).Return([]byte(rawFixture), nil)
	client.On("ComplexityReport", mock.Anything, projectPath, exclude).Return([]byte(ccFixture), nil)
	client.On("HalsteadReport", mock.Anything, projectPath, exclude).Return([]byte(halFixture), nil)
	client.On("MaintainabilityReport", mock.Anything, projectPath, exclude).Return([]byte(miFixture), nil)
	return client
}
