package layout_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-caseform/pkg/form"
	"github.com/goliatone/go-caseform/pkg/layout"
	"github.com/goliatone/go-caseform/pkg/toggle"
)

func TestDefault_LoadsBundledVariants(t *testing.T) {
	t.Parallel()

	store, err := layout.Default()
	if err != nil {
		t.Fatalf("load bundled variants: %v", err)
	}
	want := []string{"emergency", "followUp", "general", "myopiaManagement"}
	if diff := cmp.Diff(want, store.CaseTypes()); diff != "" {
		t.Fatalf("case types mismatch (-want +got):\n%s", diff)
	}

	for _, caseType := range want {
		variant, ok := store.Variant(caseType)
		if !ok {
			t.Fatalf("variant %q missing", caseType)
		}
		f, err := variant.Build()
		if err != nil {
			t.Fatalf("build %s: %v", caseType, err)
		}
		if f.CaseType() != caseType || f.ID != form.DefaultFormID {
			t.Fatalf("variant %s built form %q with case type %q", caseType, f.ID, f.CaseType())
		}
		in, err := toggle.New(f, variant.RuleTable())
		if err != nil {
			t.Fatalf("bind rules for %s: %v", caseType, err)
		}
		if len(in.Bound()) == 0 {
			t.Fatalf("variant %s binds no rules", caseType)
		}
	}
}

func TestVariant_BuildIsIndependent(t *testing.T) {
	t.Parallel()

	store, err := layout.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	variant, _ := store.Variant("general")
	first, err := variant.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := variant.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	name, _ := first.Field("patientName")
	name.SetValue("Ada")
	other, _ := second.Field("patientName")
	if other.Value != "" {
		t.Fatalf("forms built from one variant must not share fields")
	}
}

func TestVariant_MyopiaMethodGroups(t *testing.T) {
	t.Parallel()

	store, err := layout.Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	variant, _ := store.Variant("myopiaManagement")
	f, err := variant.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, err := toggle.New(f, variant.RuleTable())
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	method, _ := f.Field("currentManagementMethod")
	method.SetValue("Orthokeratology")
	in.Changed(method.ID)

	visible := map[string]bool{}
	for _, id := range []string{"atropineConcentration_group", "orthoKLensParameters_group", "mfclLensParameters_group", "spectacleLensType_group"} {
		g, ok := f.Group(id)
		if !ok {
			t.Fatalf("group %s missing", id)
		}
		visible[id] = !g.Hidden
	}
	want := map[string]bool{
		"atropineConcentration_group": false,
		"orthoKLensParameters_group":  true,
		"mfclLensParameters_group":    false,
		"spectacleLensType_group":     false,
	}
	if diff := cmp.Diff(want, visible); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_JSONAndOptionForms(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"triage.json": {Data: []byte(`{
			"caseType": "triage",
			"title": "Triage",
			"rules": [{"trigger": "urgency", "values": "High", "target": "#urgent"}],
			"layout": [
				{"kind": "hidden", "name": "caseType", "value": "triage"},
				{"kind": "select", "name": "urgency", "options": ["Low", {"value": "High", "label": "High priority"}]},
				{"kind": "group", "id": "urgent", "conditional": true, "children": [
					{"kind": "text", "name": "escalatedTo"}
				]}
			]
		}`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := layout.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	variant, ok := store.Variant("triage")
	if !ok {
		t.Fatalf("triage variant missing")
	}
	if variant.FormID != "" || variant.Title != "Triage" || variant.Source != "triage.json" {
		t.Fatalf("unexpected variant metadata %+v", variant)
	}
	if diff := cmp.Diff([]toggle.Rule{{Trigger: "urgency", Values: toggle.Of("High"), Target: "#urgent"}}, variant.RuleTable()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	f, err := variant.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	urgency, _ := f.Field("urgency")
	wantOptions := []form.Option{{Value: "Low", Label: "Low"}, {Value: "High", Label: "High priority"}}
	if diff := cmp.Diff(wantOptions, urgency.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if urgency.Value != "Low" {
		t.Fatalf("select without a blank option defaults to its first option, got %q", urgency.Value)
	}
	if f.ID != form.DefaultFormID {
		t.Fatalf("missing formId falls back to the default, got %q", f.ID)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	t.Parallel()

	minimal := func(caseType string) string {
		return "caseType: " + caseType + "\nlayout:\n  - kind: hidden\n    name: caseType\n    value: " + caseType + "\n"
	}

	cases := []struct {
		name  string
		files fstest.MapFS
		want  string
		is    error
	}{
		{
			name:  "empty file",
			files: fstest.MapFS{"a.yaml": {Data: []byte("  ")}},
			want:  "is empty",
		},
		{
			name:  "no case type",
			files: fstest.MapFS{"a.yaml": {Data: []byte("layout:\n  - kind: text\n    name: x\n")}},
			want:  "has no caseType",
		},
		{
			name: "duplicate case type",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte(minimal("general"))},
				"b.yaml": {Data: []byte(minimal("general"))},
			},
			want: "duplicate case type",
		},
		{
			name:  "case type field disagrees",
			files: fstest.MapFS{"a.yaml": {Data: []byte("caseType: emergency\nlayout:\n  - kind: hidden\n    name: caseType\n    value: general\n")}},
			want:  "declares caseType field",
		},
		{
			name:  "unknown kind",
			files: fstest.MapFS{"a.yaml": {Data: []byte(minimal("general") + "  - kind: slider\n    name: x\n")}},
			is:    form.ErrInvalidKind,
		},
		{
			name:  "field with children",
			files: fstest.MapFS{"a.yaml": {Data: []byte(minimal("general") + "  - kind: text\n    name: x\n    children:\n      - kind: text\n        name: y\n")}},
			want:  "cannot have children",
		},
		{
			name: "overlapping targets",
			files: fstest.MapFS{"a.yaml": {Data: []byte(minimal("general") + `  - kind: checkbox
    id: a
    name: a
  - kind: checkbox
    id: b
    name: b
  - kind: group
    id: outer
    children:
      - kind: group
        id: inner
        children:
          - kind: text
            name: note
rules:
  - {trigger: a, values: "on", target: "#outer"}
  - {trigger: b, values: "on", target: "#inner"}
`)}},
			is: toggle.ErrOverlappingTargets,
		},
		{
			name:  "rule without target",
			files: fstest.MapFS{"a.yaml": {Data: []byte(minimal("general") + "rules:\n  - trigger: a\n")}},
			want:  "has no target",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := layout.LoadFS(tc.files)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_Nil(t *testing.T) {
	t.Parallel()

	store, err := layout.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("nil filesystem yields an empty store")
	}
}
