package contract

import (
	"context"

	"github.com/huangsam/radonrun/schema"
	"github.com/stretchr/testify/mock"
)

// MockAnalyzerClient is a mock implementation of AnalyzerClient for testing.
type MockAnalyzerClient struct {
	mock.Mock
}

var _ AnalyzerClient = &MockAnalyzerClient{} // Compile-time check

// Run implements the AnalyzerClient interface.
func (m *MockAnalyzerClient) Run(ctx context.Context, mode schema.AnalyzerMode, projectPath string, exclude *string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, mode, projectPath, exclude}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// RawReport implements the AnalyzerClient interface.
func (m *MockAnalyzerClient) RawReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	ret := m.Called(ctx, projectPath, exclude)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ComplexityReport implements the AnalyzerClient interface.
func (m *MockAnalyzerClient) ComplexityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	ret := m.Called(ctx, projectPath, exclude)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// HalsteadReport implements the AnalyzerClient interface.
func (m *MockAnalyzerClient) HalsteadReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	ret := m.Called(ctx, projectPath, exclude)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// MaintainabilityReport implements the AnalyzerClient interface.
func (m *MockAnalyzerClient) MaintainabilityReport(ctx context.Context, projectPath string, exclude *string) ([]byte, error) {
	ret := m.Called(ctx, projectPath, exclude)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
