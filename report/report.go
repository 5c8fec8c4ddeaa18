// Package report summarizes a generation run: table shape, output file
// sizes, and timing.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// bytesPerGiB converts file sizes for operator-facing output.
const bytesPerGiB = 1024 * 1024 * 1024

// OutputFile describes one written artifact.
type OutputFile struct {
	Path  string  `json:"path"`
	Bytes int64   `json:"bytes"`
	GiB   float64 `json:"gib"`
}

// GenerationReport aggregates the results of one generation run.
type GenerationReport struct {
	Rows      int64         `json:"rows"`
	Columns   int64         `json:"columns"`
	Seed      int64         `json:"seed"`
	Parquet   OutputFile    `json:"parquet"`
	CSV       OutputFile    `json:"csv"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// StatFile fills an OutputFile from the file on disk.
func StatFile(path string) (OutputFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return OutputFile{}, fmt.Errorf("failed to stat output file: %w", err)
	}
	return OutputFile{
		Path:  path,
		Bytes: info.Size(),
		GiB:   float64(info.Size()) / bytesPerGiB,
	}, nil
}

// Generator serializes generation reports.
type Generator interface {
	Generate(run GenerationReport) ([]byte, error)
	SaveToFile(run GenerationReport, filePath string) error
}

// JSONGenerator generates JSON reports.
type JSONGenerator struct{}

// Generate serializes the GenerationReport to JSON.
func (j *JSONGenerator) Generate(run GenerationReport) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}

// SaveToFile saves the JSON report to a file.
func (j *JSONGenerator) SaveToFile(run GenerationReport, filePath string) error {
	data, err := j.Generate(run)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// FromFilePath loads a previously saved report.
func (j *JSONGenerator) FromFilePath(path string) (GenerationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationReport{}, err
	}

	var run GenerationReport
	if err := json.Unmarshal(data, &run); err != nil {
		return GenerationReport{}, err
	}
	return run, nil
}

// WriteSummary renders the operator-facing console summary.
func (r GenerationReport) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nDone in %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Shape: (%d, %d)\n", r.Rows, r.Columns)
	fmt.Fprintln(w, "Files created:")
	fmt.Fprintf(w, "  - %s (%.2f GB)\n", r.Parquet.Path, r.Parquet.GiB)
	fmt.Fprintf(w, "  - %s (%.2f GB)\n", r.CSV.Path, r.CSV.GiB)
}
