package capability

import (
	"reflect"
	"testing"

	"github.com/agentx-labs/wayfind/internal/artifact"
	"go.yaml.in/yaml/v3"
)

func steps(t *testing.T, src string) []artifact.Step {
	t.Helper()
	var out []artifact.Step
	if err := yaml.Unmarshal([]byte(src), &out); err != nil {
		t.Fatalf("parsing steps: %v", err)
	}
	return out
}

func TestRolesUnionsBothCapabilityLists(t *testing.T) {
	matrix := artifact.CapabilityDoc{Capabilities: map[string][]string{
		"c1": {"roleA"},
		"c2": {"roleB"},
	}}
	seq := steps(t, `
- requires_caps: [c1]
  requires_caps_any: [c2]
`)

	got := Roles(seq, matrix)
	want := []string{"roleA", "roleB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Roles = %v, want %v", got, want)
	}
}

func TestRolesOnlyFirstStructuredStep(t *testing.T) {
	matrix := artifact.CapabilityDoc{Capabilities: map[string][]string{
		"cap.first":  {"Wanted"},
		"cap.second": {"Ignored"},
	}}
	seq := steps(t, `
- notify_start
- requires_caps: [cap.first]
- requires_caps: [cap.second]
`)

	got := Roles(seq, matrix)
	want := []string{"Wanted"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Roles = %v, want only the first structured step's %v", got, want)
	}
}

func TestRolesSortedAndDeduplicated(t *testing.T) {
	matrix := artifact.CapabilityDoc{Capabilities: map[string][]string{
		"c1": {"zeta", "alpha"},
		"c2": {"alpha", "mid"},
	}}
	seq := steps(t, `
- requires_caps: [c1, c2]
`)

	got := Roles(seq, matrix)
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Roles = %v, want sorted deduplicated %v", got, want)
	}
}

func TestRolesEmptyCases(t *testing.T) {
	matrix := artifact.CapabilityDoc{Capabilities: map[string][]string{"c1": {"roleA"}}}

	tests := []struct {
		name string
		seq  []artifact.Step
	}{
		{"nil sequence", nil},
		{"only scalar markers", steps(t, "[notify_start, notify_end]")},
		{"structured step without capabilities", steps(t, "- {action: run}")},
		{"capability not in matrix", steps(t, "- requires_caps: [unknown]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Roles(tt.seq, matrix); len(got) != 0 {
				t.Errorf("Roles = %v, want empty", got)
			}
		})
	}
}
