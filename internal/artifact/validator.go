package artifact

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/artifacts.schema.json
var schemaBytes []byte

// SupportedSchemaVersions is the range of document schema_version values
// this engine understands.
const SupportedSchemaVersions = ">=1.0.0, <2.0.0"

var (
	compiledSchemas map[string]*jsonschema.Schema
	compileOnce     sync.Once
	compileErr      error
	printer         = message.NewPrinter(language.English)
	versionRange    *semver.Constraints
)

// schemaKinds maps artifact kinds to their $defs pointer in the embedded schema.
var schemaKinds = []string{
	"config", "manifest", "routing", "registry",
	"brick", "glossary", "wakeup", "capabilities", "agents",
}

// ValidationIssue is a single shape or version problem in one document.
type ValidationIssue struct {
	Path    string `json:"path,omitempty"`    // instance location, e.g. "/strategies/0/match"
	Message string `json:"message"`           // human-readable error message
	Keyword string `json:"keyword,omitempty"` // schema keyword that failed
}

// DocumentReport is the validation outcome for one artifact document.
type DocumentReport struct {
	File   string            `json:"file"`
	Kind   string            `json:"kind"`
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// getSchemas compiles the embedded JSON schema once and returns the per-kind
// compiled schemas.
func getSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("artifacts.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		compiled := make(map[string]*jsonschema.Schema, len(schemaKinds))
		for _, kind := range schemaKinds {
			s, err := c.Compile("artifacts.schema.json#/$defs/" + kind)
			if err != nil {
				compileErr = fmt.Errorf("compiling %s schema: %w", kind, err)
				return
			}
			compiled[kind] = s
		}
		compiledSchemas = compiled

		versionRange, err = semver.NewConstraint(SupportedSchemaVersions)
		if err != nil {
			compileErr = fmt.Errorf("parsing supported version range: %w", err)
		}
	})
	return compiledSchemas, compileErr
}

// ValidateDocument validates raw YAML bytes against the schema for kind.
// The error return is for schema compilation failures; validation issues are
// reported in the result.
func ValidateDocument(kind string, data []byte) ([]ValidationIssue, error) {
	schemas, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}
	schema, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for artifact kind %q", kind)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return []ValidationIssue{{Message: "document is not parseable YAML: " + err.Error()}}, nil
	}
	if raw == nil {
		return []ValidationIssue{{Message: "document is empty"}}, nil
	}

	// Route the YAML value through JSON so the validator sees
	// JSON-compatible types only.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(ve)
	}

	if issue := checkSchemaVersion(raw); issue != nil {
		issues = append(issues, *issue)
	}
	return issues, nil
}

// checkSchemaVersion verifies an optional top-level schema_version field
// against the supported range.
func checkSchemaVersion(raw interface{}) *ValidationIssue {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	declared, ok := m["schema_version"].(string)
	if !ok || declared == "" {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(declared, "v"))
	if err != nil {
		return &ValidationIssue{
			Path:    "/schema_version",
			Message: fmt.Sprintf("schema_version %q is not a semantic version", declared),
		}
	}
	if !versionRange.Check(v) {
		return &ValidationIssue{
			Path:    "/schema_version",
			Message: fmt.Sprintf("schema_version %q outside supported range %s", declared, SupportedSchemaVersions),
		}
	}
	return nil
}

// ValidateTree validates every present artifact document under the tree,
// including each brick file the registry names. Absent documents are skipped:
// absence is a loading concern, not a shape concern.
func (t *Tree) ValidateTree() ([]DocumentReport, error) {
	type target struct {
		path string
		kind string
	}
	targets := []target{
		{filepath.Join(t.root, configFile), "config"},
		{filepath.Join(t.FlowRoot(), manifestFile), "manifest"},
		{filepath.Join(t.FlowRoot(), routingFile), "routing"},
		{filepath.Join(t.FlowRoot(), registryFile), "registry"},
		{filepath.Join(t.FlowRoot(), capabilitiesFile), "capabilities"},
		{t.glossaryPath(), "glossary"},
		{t.wakeupPath(), "wakeup"},
		{t.agentsPath(), "agents"},
	}
	registry := t.RegistryLenient().Registry
	for _, id := range sortedKeys(registry) {
		targets = append(targets, target{t.BrickPath(registry[id]), "brick"})
	}

	var reports []DocumentReport
	for _, tg := range targets {
		data, err := os.ReadFile(tg.path)
		if err != nil {
			continue
		}
		issues, err := ValidateDocument(tg.kind, data)
		if err != nil {
			return nil, err
		}
		rel, relErr := filepath.Rel(t.root, tg.path)
		if relErr != nil {
			rel = tg.path
		}
		reports = append(reports, DocumentReport{
			File:   filepath.ToSlash(rel),
			Kind:   tg.kind,
			Valid:  len(issues) == 0,
			Issues: issues,
		})
	}
	return reports, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf
// errors with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}

// sortedKeys returns the map keys in sorted order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
