package artifact

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestFrontmatter(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want map[string]interface{}
	}{
		{
			"delimited block",
			"---\ntitle: Hello\n---\nbody",
			map[string]interface{}{"title": "Hello"},
		},
		{
			"no leading delimiter",
			"body only\n---\ntitle: x\n---\n",
			nil,
		},
		{
			"unterminated block",
			"---\ntitle: Hello\n",
			nil,
		},
		{
			"unparseable block",
			"---\n{{{:::\n---\nbody",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Frontmatter([]byte(tt.doc))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Frontmatter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanDocs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "deploy.md"), `---
docref:
  nomenclature: deploy
  workflow: brick-a:deploy
  owner: platform
---
# Deploying
`)
	writeFile(t, filepath.Join(root, "docs", "plain.md"), "# No front-matter\n")
	writeFile(t, filepath.Join(root, "docs", "other-key.md"), `---
unrelated:
  workflow: brick-a:deploy
---
`)
	tree := Open(root)

	got := tree.ScanDocs()
	if len(got) != 1 {
		t.Fatalf("ScanDocs = %v, want exactly the one recognized doc", got)
	}
	want := DocRef{
		Nomenclature: "deploy",
		Workflow:     "brick-a:deploy",
		Owner:        "platform",
		Path:         "docs/deploy.md",
	}
	if got[0] != want {
		t.Errorf("ScanDocs[0] = %+v, want %+v", got[0], want)
	}
}

func TestScanDocsHonorsConfiguredKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), `
options:
  doc_frontmatter_key: archref
`)
	writeFile(t, filepath.Join(root, "note.md"), `---
archref:
  owner: core
---
`)
	got := Open(root).ScanDocs()
	if len(got) != 1 || got[0].Owner != "core" {
		t.Errorf("ScanDocs = %v, want the archref doc", got)
	}
}
