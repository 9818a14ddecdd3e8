package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-caseform/internal/config"
	"github.com/goliatone/go-caseform/pkg/draft"
)

func TestOpenStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mem, closeMem, err := openStore(ctx, config.Config{Store: config.StoreMemory})
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	defer closeMem()
	if _, ok := mem.(*draft.MemoryStore); !ok {
		t.Fatalf("expected *draft.MemoryStore, got %T", mem)
	}

	dir := filepath.Join(t.TempDir(), "drafts")
	file, closeFile, err := openStore(ctx, config.Config{Store: config.StoreFile, DraftDir: dir})
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	defer closeFile()
	fs, ok := file.(*draft.FileStore)
	if !ok || fs.Dir() != dir {
		t.Fatalf("expected file store rooted at %s, got %T", dir, file)
	}

	if _, _, err := openStore(ctx, config.Config{Store: "s3"}); err == nil {
		t.Fatalf("expected unknown store error")
	}
}

func TestLoadVariants(t *testing.T) {
	t.Parallel()

	bundled, err := loadVariants("")
	if err != nil {
		t.Fatalf("bundled variants: %v", err)
	}
	if _, ok := bundled.Variant("general"); !ok {
		t.Fatalf("expected bundled general variant")
	}

	if _, err := loadVariants(t.TempDir()); err == nil {
		t.Fatalf("expected error for a directory without layouts")
	}

	dir := t.TempDir()
	layout := "caseType: screening\ntitle: Screening\nlayout:\n  - kind: hidden\n    name: caseType\n    value: screening\n  - kind: text\n    name: patientName\n"
	if err := os.WriteFile(filepath.Join(dir, "screening.yaml"), []byte(layout), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	custom, err := loadVariants(dir)
	if err != nil {
		t.Fatalf("custom variants: %v", err)
	}
	if got := custom.CaseTypes(); len(got) != 1 || got[0] != "screening" {
		t.Fatalf("unexpected case types %v", got)
	}
}
