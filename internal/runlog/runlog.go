// Package runlog appends a CSV audit trail of conversion runs, one row per
// processed statement.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the conversion log.
type Entry struct {
	Timestamp    time.Time
	RunID        string
	File         string
	Format       string
	Transactions int
	Expanded     bool
	Status       string // "ok" or "error"
	Error        string
}

// Header is the CSV header for convert-log.csv.
const Header = "timestamp,run_id,file,format,transactions,expanded,status,error"

const (
	numFields     = 8
	logDir        = "logs"
	logFile       = "logs/convert-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colFile       = 2
	colFormat     = 3
	colTxCount    = 4
	colExpanded   = 5
	colStatus     = 6
	colError      = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colTxCount] = strconv.Itoa(e.Transactions)
	row[colExpanded] = strconv.FormatBool(e.Expanded)
	row[colStatus] = e.Status
	row[colError] = e.Error
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	count, err := strconv.Atoi(record[colTxCount])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing transaction count %q: %w", record[colTxCount], err)
	}

	expanded, err := strconv.ParseBool(record[colExpanded])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing expanded flag %q: %w", record[colExpanded], err)
	}

	return Entry{
		Timestamp:    ts,
		RunID:        record[colRunID],
		File:         record[colFile],
		Format:       record[colFormat],
		Transactions: count,
		Expanded:     expanded,
		Status:       record[colStatus],
		Error:        record[colError],
	}, nil
}

// Append writes entries to <root>/logs/convert-log.csv, creating the file
// with a header on first use.
func Append(root string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if isNew {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/convert-log.csv.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading log CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
