package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func fixtureTree(t *testing.T) *artifact.Tree {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "glossary.yaml"), `
terms:
  - id: deploy
    label: Deploy a service
    aliases: [ship]
    tags: [delivery]
    owner: platform
`)
	writeFile(t, filepath.Join(root, "flow", "manifest.yaml"), `
workflows_catalog:
  - intent: deploy
    flow_ref: brick-a:deploy
    family: delivery
    title: Deploy service
  - intent: broken
    flow_ref: no-separator
`)
	writeFile(t, filepath.Join(root, "flow", "capabilities.yaml"), `
capabilities:
  cap.release: [Release Manager]
  cap.infra: [SRE, Data Engineer]
`)
	writeFile(t, filepath.Join(root, "agents.yaml"), `
experts:
  Release Manager: experts/release-manager/onboarding.yaml
clients:
  acme:
    data-engineer: clients/acme/data-engineer/onboarding.yaml
  globex:
    sre: clients/globex/sre/onboarding.yaml
`)
	writeFile(t, filepath.Join(root, "docs", "deploy.md"), `---
docref:
  nomenclature: deploy
  workflow: brick-a:deploy
  owner: platform
---
`)
	return artifact.Open(root)
}

func facetCount(items []Item, facet string) int {
	n := 0
	for _, it := range items {
		if it.Facet == facet {
			n++
		}
	}
	return n
}

func TestBuildAllFacets(t *testing.T) {
	result := Build(fixtureTree(t), Filter{})

	wantCounts := map[string]int{
		FacetTerm:       1,
		FacetFlow:       1, // the malformed flow_ref entry is skipped
		FacetDoc:        1,
		FacetAgent:      3, // 1 expert + 2 client bindings
		FacetCapability: 2,
	}
	for facet, want := range wantCounts {
		if got := facetCount(result.Items, facet); got != want {
			t.Errorf("facet %s count = %d, want %d", facet, got, want)
		}
	}
	if result.Counts["total"] != 8 {
		t.Errorf("counts.total = %d, want 8", result.Counts["total"])
	}
}

func TestBuildSkipsMalformedFlowRef(t *testing.T) {
	result := Build(fixtureTree(t), Filter{Facet: FacetFlow})
	for _, it := range result.Items {
		if it.Intent == "broken" {
			t.Errorf("malformed manifest entry %+v survived catalog assembly", it)
		}
	}
}

func TestBuildFacetFilter(t *testing.T) {
	result := Build(fixtureTree(t), Filter{Facet: FacetCapability})
	if len(result.Items) != 2 {
		t.Fatalf("items = %+v, want the 2 capabilities", result.Items)
	}
	// Map-backed facets come out in sorted key order.
	if result.Items[0].ID != "cap.infra" || result.Items[1].ID != "cap.release" {
		t.Errorf("capability order = %q, %q, want sorted ids", result.Items[0].ID, result.Items[1].ID)
	}
}

func TestBuildClientFilter(t *testing.T) {
	result := Build(fixtureTree(t), Filter{Facet: FacetAgent, Client: "acme"})
	if len(result.Items) != 2 {
		t.Fatalf("items = %+v, want acme's binding plus the expert", result.Items)
	}
	for _, it := range result.Items {
		if it.Kind == "client" && it.Client != "acme" {
			t.Errorf("item %+v leaked through the client filter", it)
		}
	}
}

func TestBuildClientFilterNeedsAgentFacet(t *testing.T) {
	// The client filter applies only when the facet is "agent".
	result := Build(fixtureTree(t), Filter{Client: "acme"})
	if result.Counts["total"] != 8 {
		t.Errorf("counts.total = %d, want 8 (client filter inactive without facet)", result.Counts["total"])
	}
}

func TestBuildGrep(t *testing.T) {
	tests := []struct {
		name string
		grep string
		want int
	}{
		{"term by alias", "ship", 1},
		{"case-insensitive", "SHIP", 1},
		{"role field", "release manager", 1},
		{"agent id", "data-engineer", 1},
		{"term id and flow intent", "deploy", 2},
		{"no hit", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Build(fixtureTree(t), Filter{Grep: tt.grep})
			if len(result.Items) != tt.want {
				t.Errorf("grep %q matched %d items (%+v), want %d", tt.grep, len(result.Items), result.Items, tt.want)
			}
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	tree := fixtureTree(t)
	first := Build(tree, Filter{})
	second := Build(tree, Filter{})
	if !reflect.DeepEqual(first, second) {
		t.Error("consecutive Build calls over an unchanged tree differ")
	}
}

func TestBuildEmptyTree(t *testing.T) {
	result := Build(artifact.Open(t.TempDir()), Filter{})
	if result.Items == nil {
		t.Error("Items is nil, want empty slice for JSON serialization")
	}
	if result.Counts["total"] != 0 {
		t.Errorf("counts.total = %d, want 0", result.Counts["total"])
	}
}
