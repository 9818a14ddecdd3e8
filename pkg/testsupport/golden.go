// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv enables golden rewrites when set to any non-empty value.
const UpdateEnv = "UPDATE_GOLDENS"

// AssertGolden compares got against the JSON golden at path. With
// UPDATE_GOLDENS set the golden is rewritten from got instead.
func AssertGolden[T any](t *testing.T, path string, got T) {
	t.Helper()

	if WriteMaybeGolden(t, path, got) {
		return
	}
	var want T
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// WriteMaybeGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}
