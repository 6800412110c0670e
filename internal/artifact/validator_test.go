package artifact

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDocumentValid(t *testing.T) {
	tests := []struct {
		kind string
		doc  string
	}{
		{"routing", `
strategies:
  - match: {by: intent, value: deploy}
    route: {flow: brick-a:deploy}
`},
		{"registry", `
registry:
  brick-a:
    file: bricks/brick-a.yaml
    exports: [deploy]
`},
		{"manifest", `
workflows_catalog:
  - intent: deploy
    flow_ref: brick-a:deploy
    family: delivery
`},
		{"glossary", `
terms:
  - id: deploy
    aliases: [ship]
`},
		{"agents", `
experts:
  Data Engineer: experts/data-engineer/onboarding.yaml
clients:
  acme:
    data-engineer: clients/acme/data-engineer/onboarding.yaml
`},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			issues, err := ValidateDocument(tt.kind, []byte(tt.doc))
			if err != nil {
				t.Fatalf("ValidateDocument: %v", err)
			}
			if len(issues) != 0 {
				t.Errorf("issues = %+v, want none", issues)
			}
		})
	}
}

func TestValidateDocumentShapeMismatch(t *testing.T) {
	doc := `
strategies:
  - match: {by: telepathy}
    route: {flow: brick-a:deploy}
`
	issues, err := ValidateDocument("routing", []byte(doc))
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("want issues for unknown match discriminant, got none")
	}
	if !strings.Contains(issues[0].Path, "/strategies/0/match") {
		t.Errorf("issue path = %q, want it to point inside the strategy match", issues[0].Path)
	}
}

func TestValidateDocumentMalformedFlowRef(t *testing.T) {
	doc := `
workflows_catalog:
  - intent: deploy
    flow_ref: not-a-reference
`
	issues, err := ValidateDocument("manifest", []byte(doc))
	if err != nil {
		t.Fatalf("ValidateDocument: %v", err)
	}
	if len(issues) == 0 {
		t.Error("want issues for flow_ref without a separator, got none")
	}
}

func TestValidateDocumentSchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		valid   bool
	}{
		{"supported", "1.2.0", true},
		{"v prefix tolerated", "v1.0.0", true},
		{"next major rejected", "2.0.0", false},
		{"not semver", "one", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "capabilities: {}\nschema_version: \"" + tt.version + "\"\n"
			issues, err := ValidateDocument("capabilities", []byte(doc))
			if err != nil {
				t.Fatalf("ValidateDocument: %v", err)
			}
			if tt.valid && len(issues) != 0 {
				t.Errorf("issues = %+v, want none for version %q", issues, tt.version)
			}
			if !tt.valid && len(issues) == 0 {
				t.Errorf("want a schema_version issue for %q, got none", tt.version)
			}
		})
	}
}

func TestValidateTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "flow", "routing.yaml"), `
strategies:
  - match: {by: intent, value: deploy}
    route: {flow: brick-a:deploy}
`)
	writeFile(t, filepath.Join(root, "flow", "registry.yaml"), `
registry:
  brick-a:
    file: bricks/brick-a.yaml
    exports: [deploy]
`)
	writeFile(t, filepath.Join(root, "flow", "bricks", "brick-a.yaml"), `
id: brick-a
flows:
  deploy:
    sequence: [notify_start]
`)
	// Broken glossary: terms must be a list of objects with ids.
	writeFile(t, filepath.Join(root, "glossary.yaml"), "terms: [37]\n")

	reports, err := Open(root).ValidateTree()
	if err != nil {
		t.Fatalf("ValidateTree: %v", err)
	}

	byFile := make(map[string]DocumentReport)
	for _, r := range reports {
		byFile[r.File] = r
	}
	// Absent documents (manifest, agents, wakeup, config) are skipped.
	if _, ok := byFile["flow/manifest.yaml"]; ok {
		t.Error("absent manifest should not be reported")
	}
	if r := byFile["flow/routing.yaml"]; !r.Valid {
		t.Errorf("routing report = %+v, want valid", r)
	}
	if r := byFile["flow/bricks/brick-a.yaml"]; !r.Valid || r.Kind != "brick" {
		t.Errorf("brick report = %+v, want valid brick", r)
	}
	if r := byFile["glossary.yaml"]; r.Valid {
		t.Errorf("glossary report = %+v, want invalid", r)
	}
}
