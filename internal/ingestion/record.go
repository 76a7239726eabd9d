// Package ingestion turns raw JSON from the editor or the AI importer into a
// normalized ResumeRecord ready for scoring.
package ingestion

import (
	"encoding/json"
	"os"

	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
)

// ParseRecord cleans, schema-validates, decodes and normalizes a record.
// Nulls and wrongly typed fields are rejected here so the scorer never sees them.
func ParseRecord(raw []byte) (*types.ResumeRecord, error) {
	return parse("", raw)
}

// ReadRecordFile reads and parses a record from disk.
func ReadRecordFile(path string) (*types.ResumeRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Source: path, Message: "failed to read file", Cause: err}
	}
	return parse(path, raw)
}

func parse(source string, raw []byte) (*types.ResumeRecord, error) {
	cleaned := []byte(CleanJSONBlock(string(raw)))
	if len(cleaned) == 0 {
		return nil, &ParseError{Source: source, Message: "empty input"}
	}

	if err := schemas.ValidateRecord(cleaned); err != nil {
		return nil, &ParseError{Source: source, Message: "record does not match schema", Cause: err}
	}

	var rec types.ResumeRecord
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return nil, &ParseError{Source: source, Message: "failed to decode record", Cause: err}
	}

	Normalize(&rec)
	return &rec, nil
}
