package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/radonrun/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockAnalyzerClient_Run ensures the mock records and returns the programmed values.
func TestMockAnalyzerClient_Run(t *testing.T) {
	mockClient := new(MockAnalyzerClient)
	ctx := context.Background()
	exclude := "tests/*"
	expectedErr := errors.New("mocked analyzer error")

	mockClient.
		On("Run", ctx, schema.RawMode, "/proj", &exclude, "-s").
		Return([]byte("output"), expectedErr).
		Once()

	out, err := mockClient.Run(ctx, schema.RawMode, "/proj", &exclude, "-s")
	assert.Equal(t, []byte("output"), out)
	assert.Equal(t, expectedErr, err)
	mockClient.AssertExpectations(t)
}

func TestNewLocalAnalyzerClient(t *testing.T) {
	assert.Equal(t, schema.DefaultAnalyzerName, NewLocalAnalyzerClient("").Binary())
	assert.Equal(t, "/opt/bin/radon", NewLocalAnalyzerClient("/opt/bin/radon").Binary())
}

func TestBuildAnalyzerArgs(t *testing.T) {
	exclude := "*.pyc,build/*"
	tests := []struct {
		name     string
		mode     schema.AnalyzerMode
		exclude  *string
		args     []string
		expected []string
	}{
		{"raw without exclude", schema.RawMode, nil, []string{"-s"}, []string{"raw", "proj", "-s"}},
		{"cc with exclude", schema.ComplexityMode, &exclude, []string{"-s", "-a"}, []string{"cc", "proj", "-s", "-a", "-e", "*.pyc,build/*"}},
		{"hal with exclude", schema.HalsteadMode, &exclude, []string{"-j"}, []string{"hal", "proj", "-j", "-e", "*.pyc,build/*"}},
		{"mi without exclude", schema.MaintainabilityMode, nil, []string{"-j"}, []string{"mi", "proj", "-j"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildAnalyzerArgs(tt.mode, "proj", tt.exclude, tt.args...))
		})
	}
}

func TestLocalAnalyzerClient_MissingBinary(t *testing.T) {
	client := NewLocalAnalyzerClient("radonrun-definitely-missing-binary")
	_, err := client.RawReport(context.Background(), ".", nil)
	require.Error(t, err)

	var invErr *AnalyzerInvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, string(schema.RawMode), invErr.Mode)
	assert.Equal(t, ExitAnalyzerInvocation, ExitCode(err))

	_, err = AnalyzerAvailable("radonrun-definitely-missing-binary")
	assert.ErrorIs(t, err, ErrAnalyzerInvocation)
}

// TestLocalAnalyzerClient_NonZeroExit uses "false" as a stand-in analyzer that always fails.
func TestLocalAnalyzerClient_NonZeroExit(t *testing.T) {
	if _, err := AnalyzerAvailable("false"); err != nil {
		t.Skipf("false binary not found in PATH: %v", err)
	}
	client := NewLocalAnalyzerClient("false")
	_, err := client.HalsteadReport(context.Background(), ".", nil)
	var invErr *AnalyzerInvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, string(schema.HalsteadMode), invErr.Mode)
	assert.Contains(t, invErr.Error(), "exit status 1")
}

// TestLocalAnalyzerClient_Echo uses "echo" as a stand-in analyzer to check argument forwarding.
func TestLocalAnalyzerClient_Echo(t *testing.T) {
	if _, err := AnalyzerAvailable("echo"); err != nil {
		t.Skipf("echo binary not found in PATH: %v", err)
	}
	client := NewLocalAnalyzerClient("echo")
	exclude := "tests/*"
	out, err := client.ComplexityReport(context.Background(), "proj", &exclude)
	require.NoError(t, err)
	assert.Equal(t, "cc proj -s -a -e tests/*\n", string(out))

}
