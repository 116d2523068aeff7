// Package main provides a performance benchmarking tool for the debtboard CLI.
// It generates synthetic reports of increasing size, runs each command several
// times against them, treats the first successful run as cold and averages the
// rest as warm, and writes the timings to CSV.
//
// Prerequisites:
// - debtboard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated reports and the benchmark archive
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/debtboard/schema"
)

// BenchmarkResult holds the result of one command against one report size.
type BenchmarkResult struct {
	Report   string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	ReportSizes []int
	Commands    map[string][]string // name -> arguments placed before the report path
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		Runs:        4,
		ReportSizes: []int{1_000, 10_000, 100_000},
		Commands: map[string][]string{
			"overview": {"overview"},
			"files":    {"files", "--status", "critical", "--search", "pkg", "--output", "csv"},
			"folders":  {"folders", "--output", "json"},
			"check":    {"check", "--max-debt-ratio=100"},
			"archive":  {"archive", "save"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config)
}

// checkPrerequisites verifies that the debtboard binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("debtboard"); err != nil {
		return fmt.Errorf("debtboard binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks executes every command against every generated report
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d report sizes, %d commands, %d runs, %v timeout\n",
		len(config.ReportSizes), len(config.Commands), config.Runs, config.Timeout)

	for _, size := range config.ReportSizes {
		reportPath := filepath.Join(config.WorkDir, fmt.Sprintf("report_%d.json", size))
		if err := writeSyntheticReport(reportPath, size); err != nil {
			fmt.Printf("Failed to generate report with %d files: %v\n", size, err)
			continue
		}
		fmt.Printf("Benchmarking %s\n", reportPath)

		for _, name := range sortedCommands(config.Commands) {
			args := append(append([]string{}, config.Commands[name]...), reportPath)
			results = append(results, runBenchmarkSuite(config, filepath.Base(reportPath), name, args))
		}
	}

	return results
}

// runBenchmarkSuite times one command and summarizes the runs
func runBenchmarkSuite(config BenchmarkConfig, report, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", command, report, config.Runs)

	coldTime, warmTimes := runBenchmark(config, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Report:   report,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a debtboard command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	archivePath := filepath.Join(config.WorkDir, "benchmark_archive.db")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("debtboard", args...)
		cmd.Env = append(os.Environ(), "DEBTBOARD_ARCHIVE_DB_CONNECT="+archivePath)
		cmd.Stdout = nil // Discard

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// writeSyntheticReport writes a report with size files spread over nested directories.
// The generator is seeded so every run benchmarks the same data.
func writeSyntheticReport(path string, size int) error {
	rng := rand.New(rand.NewPCG(uint64(size), 42))
	statuses := []schema.FileStatus{schema.StatusGood, schema.StatusWarning, schema.StatusCritical}

	report := schema.TechnicalDebtReport{
		Overview: schema.DebtOverview{
			TotalFiles:     size,
			DebtRatio:      float64(rng.IntN(3000)) / 100,
			EstimatedHours: float64(size / 10),
			EstimatedCost:  float64(size * 50),
			Severity:       schema.SeverityMedium,
		},
		Files: make([]schema.FileDebtScore, size),
	}
	for i := range report.Files {
		report.Files[i] = schema.FileDebtScore{
			File:        fmt.Sprintf("pkg/mod%03d/sub%02d/file%06d.go", i%500, i%37, i),
			Score:       float64(rng.IntN(10000)) / 100,
			Complexity:  rng.IntN(60),
			Size:        rng.IntN(2000),
			Duplication: rng.IntN(10) == 0,
			Status:      statuses[rng.IntN(len(statuses))],
		}
	}
	for i := range min(size, 50) {
		report.Recommendations = append(report.Recommendations, schema.Recommendation{
			File:           report.Files[i].File,
			Priority:       schema.PriorityMedium,
			Reason:         "Synthetic recommendation",
			EstimatedHours: 4,
		})
	}

	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// sortedCommands returns the command names in a stable order
func sortedCommands(commands map[string][]string) []string {
	order := []string{"overview", "files", "folders", "check", "archive"}
	var names []string
	for _, name := range order {
		if _, ok := commands[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/debtboard_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"report", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Report, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult, config BenchmarkConfig) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range sortedCommands(config.Commands) {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-20s: Cold: %s, Warm: %s\n", result.Report, result.ColdTime, result.WarmTime)
			}
		}
	}
}
