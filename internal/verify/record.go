package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AndreyAkinshin/testsift/internal/filelock"
	"github.com/AndreyAkinshin/testsift/internal/schema"
	"github.com/AndreyAkinshin/testsift/internal/testparser"
)

// Record is the parsed_test_status.json document.
type Record struct {
	Parser string             `json:"parser"`
	Tests  testparser.Results `json:"parsed_test_status"`
}

// NewRecord builds the record for a classification result.
func NewRecord(result testparser.Result) Record {
	return Record{Parser: result.ParserLabel(), Tests: result.Tests}
}

// Marshal encodes the record with two-space indentation and without
// escaping non-ASCII or HTML characters in test names.
func (r Record) Marshal() ([]byte, error) {
	tests := r.Tests
	if tests == nil {
		tests = testparser.Results{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Record{Parser: r.Parser, Tests: tests}); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveRecord writes the record atomically while holding its file lock, so
// concurrent batch runs never interleave writes to one file.
func SaveRecord(ctx context.Context, path string, r Record) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return filelock.LockAndWrite(ctx, path, data)
}

// LoadRecord reads and validates a record written by SaveRecord.
func LoadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read record: %w", err)
	}
	if err := schema.ValidateRecord(data); err != nil {
		return Record{}, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}
