package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/radonrun/internal/contract"
	"github.com/huangsam/radonrun/internal/iocache"
	"github.com/huangsam/radonrun/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, projectPath string, exclude *string) *contract.Config {
	t.Helper()
	return &contract.Config{
		ProjectPath: projectPath,
		Exclude:     exclude,
		OutputRoot:  filepath.Join(t.TempDir(), "radon_runs"),
		Analyzer:    schema.DefaultAnalyzerName,
		Output:      schema.TextOut,
		Limit:       contract.DefaultHistoryLimit,
	}
}

func TestExecuteRun_PrintsDigest(t *testing.T) {
	cfg := newTestConfig(t, "proj", nil)
	client := reportFixtures("proj", nil)

	var buf bytes.Buffer
	summary, err := executeRun(context.Background(), cfg, client, nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Run)

	expected := "Run: 1\n" +
		"Project path: proj\n" +
		"LOC: 120\n" +
		"Number of comments: 15\n" +
		"Percentage of comments: 12%\n" +
		"Mean per-block CC: 3.5\n" +
		"Mean per-file Halstead effort: 20.0\n" +
		"Mean per-file MI: 66.5\n"
	assert.Equal(t, expected, buf.String())
	assert.FileExists(t, filepath.Join(cfg.OutputRoot, "run_1_proj", schema.SummaryArtifact))
}

func TestRunMetrics_SuccessiveRuns(t *testing.T) {
	exclude := "tests/*"
	cfg := newTestConfig(t, "src/app", &exclude)
	client := reportFixtures("src/app", &exclude)

	first, err := RunMetrics(context.Background(), cfg, client, nil)
	require.NoError(t, err)
	second, err := RunMetrics(context.Background(), cfg, client, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Run)
	assert.Equal(t, 2, second.Run)
	require.NotNil(t, second.Exclude)
	assert.Equal(t, exclude, *second.Exclude)
	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "run_1_src_app"))
	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "run_2_src_app"))
	client.AssertNumberOfCalls(t, "RawReport", 2)
}

func TestRunMetrics_EmptyReportWritesNoSummary(t *testing.T) {
	cfg := newTestConfig(t, "proj", nil)
	client := &contract.MockAnalyzerClient{}
	client.On("RawReport", mock.Anything, "proj", (*string)(nil)).Return([]byte(rawFixture), nil)
	client.On("ComplexityReport", mock.Anything, "proj", (*string)(nil)).Return([]byte(ccFixture), nil)
	client.On("HalsteadReport", mock.Anything, "proj", (*string)(nil)).Return([]byte(halFixture), nil)
	client.On("MaintainabilityReport", mock.Anything, "proj", (*string)(nil)).Return([]byte("{}"), nil)

	store := &iocache.MockHistoryStore{}
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	_, err := RunMetrics(context.Background(), cfg, client, mgr)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrEmptyReport)
	assert.NoFileExists(t, filepath.Join(cfg.OutputRoot, "run_1_proj", schema.SummaryArtifact))
	mgr.AssertNotCalled(t, "GetHistoryStore")
	store.AssertNotCalled(t, "RecordRun", mock.Anything)
}

func TestRunMetrics_RecordsHistory(t *testing.T) {
	cfg := newTestConfig(t, "proj", nil)
	client := reportFixtures("proj", nil)

	store := &iocache.MockHistoryStore{}
	store.On("RecordRun", mock.MatchedBy(func(r schema.RunRecord) bool {
		return r.RunID == 1 && r.ProjectPath == "proj" && r.Exclude == nil &&
			r.LOC == 120 && r.MeanPerFileMI == 66.5 && !r.EndTime.Before(r.StartTime)
	})).Return(int64(42), nil)
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	b, err := NewRunBuilder(context.Background(), cfg, client, mgr).Preflight()
	require.NoError(t, err)
	b, err = b.Allocate()
	require.NoError(t, err)
	b, err = b.Collect()
	require.NoError(t, err)
	b, err = b.Summarize()
	require.NoError(t, err)
	b = b.Record()

	assert.Equal(t, int64(42), b.GetRecordID())
	assert.Equal(t, filepath.Join(b.GetRun().Dir, schema.SummaryArtifact), b.GetSummaryPath())
	assert.GreaterOrEqual(t, b.Duration().Nanoseconds(), int64(0))
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRunMetrics_HistoryFailureDoesNotFailRun(t *testing.T) {
	cfg := newTestConfig(t, "proj", nil)
	client := reportFixtures("proj", nil)

	store := &iocache.MockHistoryStore{}
	store.On("RecordRun", mock.Anything).Return(int64(0), errors.New("database is locked"))
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	summary, err := RunMetrics(context.Background(), cfg, client, mgr)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Run)
	store.AssertExpectations(t)
}

func TestExecuteRun_MissingAnalyzer(t *testing.T) {
	cfg := newTestConfig(t, "proj", nil)
	cfg.Analyzer = "radonrun-missing-analyzer-binary"

	err := ExecuteRun(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrAnalyzerInvocation)

	_, statErr := os.Stat(cfg.OutputRoot)
	assert.True(t, os.IsNotExist(statErr), "no run directory is allocated before the analyzer is found")
}

func TestGetRunHistory(t *testing.T) {
	t.Run("nil manager", func(t *testing.T) {
		_, err := GetRunHistory(nil, "proj", 5)
		assert.ErrorIs(t, err, ErrHistoryDisabled)
	})

	t.Run("disabled store", func(t *testing.T) {
		mgr := &iocache.MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(nil)
		_, err := GetRunHistory(mgr, "proj", 5)
		assert.ErrorIs(t, err, ErrHistoryDisabled)
	})

	t.Run("lists runs", func(t *testing.T) {
		records := []schema.RunRecord{{RecordID: 2, RunID: 2, ProjectPath: "proj"}}
		store := &iocache.MockHistoryStore{}
		store.On("ListRuns", "proj", 5).Return(records, nil)
		mgr := &iocache.MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(store)

		got, err := GetRunHistory(mgr, "proj", 5)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("store error", func(t *testing.T) {
		store := &iocache.MockHistoryStore{}
		store.On("ListRuns", "", 5).Return(nil, errors.New("boom"))
		mgr := &iocache.MockHistoryManager{}
		mgr.On("GetHistoryStore").Return(store)

		_, err := GetRunHistory(mgr, "", 5)
		assert.ErrorContains(t, err, "boom")
	})
}

func TestExecuteHistoryList(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "history.csv")
	cfg := &contract.Config{ProjectPath: "proj", Limit: 3, Output: schema.CSVOut, OutputFile: outputFile}

	store := &iocache.MockHistoryStore{}
	store.On("ListRuns", "proj", 3).Return([]schema.RunRecord{{RecordID: 1, RunID: 1, ProjectPath: "proj"}}, nil)
	mgr := &iocache.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteHistoryList(cfg, mgr))
	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "record_id,run,project_path")
}
