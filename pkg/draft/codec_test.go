package draft_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-caseform/pkg/collect"
	"github.com/goliatone/go-caseform/pkg/draft"
)

func TestKey(t *testing.T) {
	t.Parallel()

	if got := draft.Key("myopiaManagement"); got != "focusCaseXDraft_myopiaManagement" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	rec := collect.Record{
		"patientName": "Ada",
		"spectacles":  true,
		"consent":     false,
		"notes":       "",
	}
	data, err := draft.Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := draft.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_NilRecord(t *testing.T) {
	t.Parallel()

	data, err := draft.Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("expected empty object, got %s", data)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":     "",
		"array":     `["a"]`,
		"string":    `"draft"`,
		"truncated": `{"a":`,
		"number":    `{"age":35}`,
		"null":      `{"notes":null}`,
		"nested":    `{"rx":{"sphere":"-1.00"}}`,
		"list":      `{"tags":["a"]}`,
	}
	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := draft.Decode([]byte(payload))
			if !errors.Is(err, draft.ErrMalformedDraft) {
				t.Fatalf("expected ErrMalformedDraft, got %v", err)
			}
		})
	}
}
