package dstu4145

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mahdiidarabi/dstu4145/internal/parser"
)

// SignatureParser reads signature records from a source.
//
// Both parsers read r and s the same way: a string with a 0x prefix, with a
// hex letter, or longer than 20 characters is hex, any other string is
// decimal, and JSON numbers are decimal. A long decimal value must therefore
// be written as a JSON number; writing every value as 0x-prefixed hex avoids
// the ambiguity entirely.
type SignatureParser interface {
	// ParseRecords parses the records stored at source.
	ParseRecords(source string) ([]*Record, error)
}

// JSONParser parses signature records from JSON files. Numbers follow the
// rules on SignatureParser.
type JSONParser struct {
	DigestField string // Field name for the hex digest (default: "digest")
	RField      string // Field name for r (default: "r")
	SField      string // Field name for s (default: "s")
}

// ParseRecords parses records from a JSON file.
//
// Expected format:
// [
//
//	{"digest": "09c9...", "r": "0x274e...", "s": "0x2100..."}
//
// ]
func (p *JSONParser) ParseRecords(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()
	return p.Read(file)
}

// Read parses records from JSON read from r.
func (p *JSONParser) Read(r io.Reader) ([]*Record, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	digestField := orDefault(p.DigestField, "digest")
	rField := orDefault(p.RField, "r")
	sField := orDefault(p.SField, "s")

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		digestVal, ok := item[digestField].(string)
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, digestField)
		}
		rVal, ok := item[rField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, rField)
		}
		sVal, ok := item[sField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing %s field", i, sField)
		}

		rec, err := newRecord(digestVal, rVal, sVal)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// CSVParser parses signature records from CSV files with a header row. Cells
// are strings, so decimal r and s values longer than 20 digits are read as
// hex; use a 0x prefix in generated files.
type CSVParser struct {
	DigestCol string // Column name for the hex digest (default: "digest")
	RCol      string // Column name for r (default: "r")
	SCol      string // Column name for s (default: "s")
}

// ParseRecords parses records from a CSV file.
func (p *CSVParser) ParseRecords(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.Read(file)
}

// Read parses records from CSV read from r.
func (p *CSVParser) Read(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	digestCol := orDefault(p.DigestCol, "digest")
	rCol := orDefault(p.RCol, "r")
	sCol := orDefault(p.SCol, "s")

	digestIdx, rIdx, sIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case digestCol:
			digestIdx = i
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		}
	}
	if digestIdx == -1 || rIdx == -1 || sIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s, %s or %s", digestCol, rCol, sCol)
	}

	var records []*Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec, err := newRecord(row[digestIdx], row[rIdx], row[sIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func newRecord(digest string, r, s interface{}) (*Record, error) {
	d, err := parser.DecodeHex(digest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse digest: %w", err)
	}
	rv, err := parser.ParseBigInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse r: %w", err)
	}
	sv, err := parser.ParseBigInt(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s: %w", err)
	}
	return &Record{Digest: d, Signature: &Signature{R: rv, S: sv}}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
