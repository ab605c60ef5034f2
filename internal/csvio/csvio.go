// Package csvio reads ticket/reply pairs from CSV and writes evaluated rows.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/timvw/ticket-eval/internal/model"
)

// inputHeader names the required input columns. Extra columns are ignored.
var inputHeader = []string{"ticket", "reply"}

// outputHeader is the fixed column order of the output CSV.
var outputHeader = []string{
	"ticket",
	"reply",
	"content_score",
	"content_explanation",
	"format_score",
	"format_explanation",
}

// ReadTickets reads all ticket/reply pairs from a CSV file.
//
// The file must have a header row containing "ticket" and "reply" columns.
// Missing cells become empty strings; fully-empty rows are kept here and
// skipped later by the orchestrator so row numbering stays aligned with
// the file.
func ReadTickets(path string) ([]model.TicketInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Rows may have fewer cells than the header; treat them as empty.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols, err := columnIndexes(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var tickets []model.TicketInput
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		tickets = append(tickets, model.TicketInput{
			Ticket: cell(record, cols["ticket"]),
			Reply:  cell(record, cols["reply"]),
		})
	}

	if len(tickets) == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}
	return tickets, nil
}

// columnIndexes maps the required column names to their positions.
func columnIndexes(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(inputHeader))
	for i, name := range header {
		cols[name] = i
	}
	var missing []string
	for _, name := range inputHeader {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}
	return cols, nil
}

// cell returns the value at index i, or "" when the row is short.
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

// WriteResults writes evaluated rows to a CSV file, one row per result,
// in the order given.
func WriteResults(path string, results []model.TicketEvaluated) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(outputHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, res := range results {
		record := []string{
			res.Ticket,
			res.Reply,
			strconv.Itoa(res.ContentScore),
			res.ContentExplanation,
			strconv.Itoa(res.FormatScore),
			res.FormatExplanation,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV output: %w", err)
	}
	return f.Close()
}
