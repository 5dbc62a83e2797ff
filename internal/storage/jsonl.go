// Package storage persists extracted articles in SQLite and JSONL.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// Articles with many citations are large, so this is well above the usual
// bufio default.
const MaxJSONLLineCapacity = 16 * 1024 * 1024

// ReadJSONL reads all records from a JSONL file.
func ReadJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Empty file returns empty slice
		}
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	var recs []Record
	scanner := bufio.NewScanner(f)

	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		recs = append(recs, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	return recs, nil
}

// AppendJSONL adds a record to the end of a JSONL file.
func AppendJSONL(path string, rec Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening records file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	return nil
}

// WriteJSONL writes all records to a JSONL file, replacing existing content.
func WriteJSONL(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}

		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing records file: %w", err)
	}
	return nil
}
