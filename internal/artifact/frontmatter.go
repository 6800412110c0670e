package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const frontmatterDelimiter = "---"

// Frontmatter extracts the leading delimited YAML block of a markdown
// document. Returns nil when there is no block or it fails to parse.
func Frontmatter(data []byte) map[string]interface{} {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterDelimiter) {
		return nil
	}
	parts := strings.SplitN(text, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		return nil
	}
	var fm map[string]interface{}
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return nil
	}
	return fm
}

// ScanDocs walks the tree for markdown files whose front-matter carries the
// configured key mapping to a doc reference. Paths are reported relative to
// the root with forward slashes. WalkDir visits entries in lexical order, so
// the result is deterministic across calls.
func (t *Tree) ScanDocs() []DocRef {
	key := t.FrontmatterKey()
	var docs []DocRef
	_ = filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		fm := Frontmatter(data)
		raw, ok := fm[key].(map[string]interface{})
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(t.root, path)
		if err != nil {
			return nil
		}
		docs = append(docs, DocRef{
			Nomenclature: stringField(raw, "nomenclature"),
			Workflow:     stringField(raw, "workflow"),
			Owner:        stringField(raw, "owner"),
			Path:         filepath.ToSlash(rel),
		})
		return nil
	})
	return docs
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
