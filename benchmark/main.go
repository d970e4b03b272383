// Package main provides a performance benchmarking tool for the radonrun CLI.
// It measures end-to-end run times across Python projects of different sizes,
// once with history disabled and once with the SQLite history backend,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - radonrun and radon binaries installed and available in PATH
// - Test projects cloned to the specified base directory: flask, requests, django
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test projects
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the average run time per history backend for one project.
type BenchmarkResult struct {
	Repository  string
	NoHistory   string
	WithHistory string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
	Excludes  map[string]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Runs:      3,
		TestRepos: []string{"flask", "requests", "django"},
		Excludes: map[string]string{
			"django": "tests/*,docs/*",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	outputRoot, err := os.MkdirTemp("", "radonrun-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create output root: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(outputRoot) }()

	results := runBenchmarks(config, outputRoot)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the binaries and test projects exist
func checkPrerequisites(config BenchmarkConfig) error {
	for _, bin := range []string{"radonrun", "radon"} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s binary not found in PATH", bin)
		}
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes the run benchmark across configured projects
func runBenchmarks(config BenchmarkConfig, outputRoot string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per backend\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	historyDB := filepath.Join(outputRoot, "history.db")
	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)
		args := []string{repoPath, "--output-root", outputRoot}
		if exclude, ok := config.Excludes[repo]; ok {
			args = append(args, "--exclude", exclude)
		}

		noHistory := runBenchmark(config, append(args, "--history-backend", "none"))
		withHistory := runBenchmark(config, append(args, "--history-backend", "sqlite", "--history-db-connect", historyDB))

		fmt.Printf("  No history: %s, SQLite history: %s\n", noHistory, withHistory)
		results = append(results, BenchmarkResult{
			Repository:  repo,
			NoHistory:   noHistory,
			WithHistory: withHistory,
		})
	}

	return results
}

// runBenchmark executes radonrun several times and returns the average time of successful runs
func runBenchmark(config BenchmarkConfig, args []string) string {
	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "radonrun", args...).Output()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && strings.HasPrefix(string(output), "Run: ") {
			times = append(times, elapsed)
		}
	}

	if len(times) == 0 {
		return "FAILED"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/radonrun_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "no_history_avg", "sqlite_history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.NoHistory, result.WithHistory}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: No history: %s, SQLite history: %s\n", result.Repository, result.NoHistory, result.WithHistory)
	}
}
