// FILE: logsink/src/internal/ingest/decode.go
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"logsink/src/internal/core"
)

// ErrMalformed indicates a request body that is not a UTF-8 encoded JSON
// object. It is the decoder's only failure mode.
var ErrMalformed = errors.New("malformed log record")

// Decode parses a raw request body into a normalized LogRecord.
//
// Every field is optional: absent or wrong-typed fields fall back to their
// defaults (current wall-clock time, INFO level, empty strings) instead of
// failing the decode. The sink must never reject a record merely because one
// field is missing. Pure transformation, no side effects beyond reading the
// clock for the timestamp default.
func Decode(raw []byte) (core.LogRecord, error) {
	if !utf8.Valid(raw) {
		return core.LogRecord{}, fmt.Errorf("%w: body is not valid UTF-8", ErrMalformed)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return core.LogRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		// "null" unmarshals into a nil map without error
		return core.LogRecord{}, fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}

	record := core.LogRecord{
		Timestamp: stringField(fields, "timestamp"),
		Level:     stringField(fields, "level"),
		Message:   stringField(fields, "message"),
		Tag:       stringField(fields, "tag"),
		Error:     stringField(fields, "error"),
	}

	if record.Timestamp == "" {
		record.Timestamp = time.Now().Format(core.TimestampLayout)
	}
	if record.Level == "" {
		record.Level = core.DefaultLevel
	} else {
		record.Level = strings.ToUpper(record.Level)
	}

	return record, nil
}

// stringField returns the named field if it holds a JSON string, "" otherwise.
func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}
