package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WriteReport writes a timestamped conversion summary into dir.
func WriteReport(dir string, results []Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	name := fmt.Sprintf("report_%s.txt", time.Now().Format("20060102_150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	return writeReport(f, results)
}

func writeReport(w io.Writer, results []Result) error {
	failed := countFailed(results)
	fmt.Fprintf(w, "Conversion report %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Files: %d converted, %d failed\n\n", len(results)-failed, failed)

	for _, r := range results {
		if r.Success() {
			fmt.Fprintf(w, "OK   %-32s %-22s %6d verts %6d faces", r.Name, r.Strategy, r.Vertices, r.Faces)
			if r.Dropped > 0 {
				fmt.Fprintf(w, " (%d degenerate dropped)", r.Dropped)
			}
			fmt.Fprintf(w, "  %s\n", r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "FAIL %-32s %s\n", r.Name, r.Error)
		}
	}
	return nil
}
