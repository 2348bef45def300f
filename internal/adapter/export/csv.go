// Package export serializes the filtered, sorted event stream to CSV.
// It is a pure formatting of the list pipeline's pre-pagination output.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

var header = []string{"id", "title", "category", "severity", "score", "confidence", "impact", "createdAt", "tags"}

// WriteCSV streams events as CSV rows, header first. Tags are joined
// with a pipe inside a single column.
func WriteCSV(w io.Writer, events []domain.Event) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range events {
		row := []string{
			e.ID,
			e.Title,
			string(e.Category),
			string(e.Severity),
			formatNumber(e.Metrics.Score),
			formatNumber(e.Metrics.Confidence),
			formatNumber(e.Metrics.Impact),
			e.CreatedAt.UTC().Format(time.RFC3339),
			strings.Join(e.Tags, "|"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename builds the attachment name for an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("insight-events_%s.csv", now.UTC().Format("2006-01-02"))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
