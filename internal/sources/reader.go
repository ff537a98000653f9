// Package sources loads the raw source datasets from disk and
// normalizes them into canonical records. Every loader degrades
// gracefully: a missing file means "no data" (nil), an unreadable or
// malformed file means an empty result, and neither stops the other
// producers from running.
package sources

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/record"
)

// readCSV reads a headered CSV file into raw records. Rows are kept in
// file order. Quoting is handled leniently and rows with uneven field
// counts are tolerated, since the source exports are not consistently
// well-formed.
func readCSV(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []record.Record{}, nil
		}
		return nil, err
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	var rows []record.Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparsable rows rather than abandoning the file.
			continue
		}
		row := make(record.Record, len(header))
		empty := true
		for i, col := range header {
			value := ""
			if i < len(fields) {
				value = fields[i]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[col] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// readJSONL reads a one-JSON-object-per-line file into raw records.
// Blank and malformed lines are skipped.
func readJSONL(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []record.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var row record.Record
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			logging.Debug().Str("path", path).Int("line", line).Msg("Skipping malformed JSONL line")
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}
