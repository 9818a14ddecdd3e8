package draft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-caseform/pkg/collect"
)

// ErrMalformedDraft reports a slot whose payload is not a JSON object of
// string or boolean values.
var ErrMalformedDraft = errors.New("draft: malformed payload")

// Encode serialises a record as a JSON object.
func Encode(rec collect.Record) ([]byte, error) {
	if rec == nil {
		rec = collect.Record{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("draft: encode: %w", err)
	}
	return data, nil
}

// Decode parses a slot payload. Anything other than an object whose values are
// strings or booleans is rejected with ErrMalformedDraft.
func Decode(data []byte) (collect.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedDraft)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDraft, err)
	}

	rec := make(collect.Record, len(raw))
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		switch {
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedDraft, key, err)
			}
			rec[key] = s
		case bytes.Equal(value, []byte("true")):
			rec[key] = true
		case bytes.Equal(value, []byte("false")):
			rec[key] = false
		default:
			return nil, fmt.Errorf("%w: field %q holds %s", ErrMalformedDraft, key, value)
		}
	}
	return rec, nil
}
