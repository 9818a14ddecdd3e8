package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-caseform/pkg/toggle"
)

// Store holds the variants keyed by case type.
type Store struct {
	variants map[string]Variant
}

// LoadFS walks fsys and parses every JSON or YAML file as one variant. Every
// variant is built and its rules bound once while loading, so a broken layout
// or overlapping rule targets fail here rather than when a session opens. A
// nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{variants: make(map[string]Variant)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		variant, err := normaliseVariant(doc, path)
		if err != nil {
			return err
		}
		if existing, exists := store.variants[variant.CaseType]; exists {
			return fmt.Errorf("layout: duplicate case type %q (files %s and %s)", variant.CaseType, existing.Source, path)
		}
		built, err := variant.Build()
		if err != nil {
			return err
		}
		if _, err := toggle.New(built, variant.RuleTable()); err != nil {
			return fmt.Errorf("layout: variant %q (file %s): %w", variant.CaseType, path, err)
		}
		store.variants[variant.CaseType] = variant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Variant returns the layout for caseType.
func (s *Store) Variant(caseType string) (Variant, bool) {
	if s == nil {
		return Variant{}, false
	}
	v, ok := s.variants[caseType]
	return v, ok
}

// CaseTypes lists the loaded case types, sorted.
func (s *Store) CaseTypes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.variants))
	for caseType := range s.variants {
		out = append(out, caseType)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any variants.
func (s *Store) Empty() bool {
	return s == nil || len(s.variants) == 0
}

type documentFile struct {
	CaseType string        `json:"caseType" yaml:"caseType"`
	FormID   string        `json:"formId" yaml:"formId"`
	Title    string        `json:"title" yaml:"title"`
	Rules    []toggle.Rule `json:"rules" yaml:"rules"`
	Layout   []Node        `json:"layout" yaml:"layout"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("layout: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normaliseVariant(doc documentFile, source string) (Variant, error) {
	caseType := strings.TrimSpace(doc.CaseType)
	if caseType == "" {
		return Variant{}, fmt.Errorf("layout: file %s has no caseType", source)
	}
	if len(doc.Layout) == 0 {
		return Variant{}, fmt.Errorf("layout: file %s has an empty layout", source)
	}
	for idx, rule := range doc.Rules {
		if err := rule.Validate(); err != nil {
			return Variant{}, fmt.Errorf("layout: file %s rule %d: %w", source, idx, err)
		}
	}
	return Variant{
		CaseType: caseType,
		FormID:   strings.TrimSpace(doc.FormID),
		Title:    strings.TrimSpace(doc.Title),
		Source:   source,
		Rules:    doc.Rules,
		Nodes:    doc.Layout,
	}, nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
