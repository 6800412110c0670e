package artifact

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// TreeConfig is the optional config.yaml at the tree root. Path entries
// override the default artifact locations, resolved relative to the root.
type TreeConfig struct {
	Paths         PathOverrides `yaml:"paths"`
	Options       Options       `yaml:"options"`
	SchemaVersion string        `yaml:"schema_version,omitempty"`
}

// PathOverrides remaps artifact locations relative to the tree root.
type PathOverrides struct {
	Flow     string `yaml:"flow,omitempty"`
	Glossary string `yaml:"glossary,omitempty"`
	Agents   string `yaml:"agents,omitempty"`
	Wakeup   string `yaml:"wakeup,omitempty"`
}

// Options holds tree-wide options.
type Options struct {
	// DocFrontmatterKey is the front-matter key that marks a markdown file
	// as a documentation reference. Defaults to "docref".
	DocFrontmatterKey string `yaml:"doc_frontmatter_key,omitempty"`
}

// ManifestDoc is flow/manifest.yaml.
type ManifestDoc struct {
	WorkflowsCatalog []ManifestEntry `yaml:"workflows_catalog"`
}

// ManifestEntry maps an intent to a flow reference with display metadata.
type ManifestEntry struct {
	Intent      string `yaml:"intent" json:"intent"`
	FlowRef     string `yaml:"flow_ref" json:"flow_ref"`
	Family      string `yaml:"family,omitempty" json:"family,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// RoutingDoc is flow/routing.yaml. Strategy order is significant: the first
// matching strategy wins unconditionally.
type RoutingDoc struct {
	Strategies []Strategy `yaml:"strategies"`
}

// Strategy is one ordered routing rule.
type Strategy struct {
	Match Match `yaml:"match" json:"match"`
	Route Route `yaml:"route" json:"route"`
}

// Match is a strategy's predicate. By selects the discriminant: "intent" and
// "action_key" compare Value, "tags" intersects AnyOf, "subject" applies Regex.
type Match struct {
	By    string   `yaml:"by" json:"by"`
	Value string   `yaml:"value,omitempty" json:"value,omitempty"`
	AnyOf []string `yaml:"any_of,omitempty" json:"any_of,omitempty"`
	Regex string   `yaml:"regex,omitempty" json:"regex,omitempty"`
}

// Route is a strategy's target.
type Route struct {
	Flow string `yaml:"flow" json:"flow"`
}

// RegistryDoc is flow/registry.yaml, the brick registry.
type RegistryDoc struct {
	Registry map[string]RegistryEntry `yaml:"registry"`
}

// RegistryEntry locates one brick document and declares its exports.
type RegistryEntry struct {
	File    string   `yaml:"file"`
	Exports []string `yaml:"exports"`
}

// HasExport reports whether the entry declares the named export.
func (e RegistryEntry) HasExport(name string) bool {
	for _, x := range e.Exports {
		if x == name {
			return true
		}
	}
	return false
}

// BrickDoc is one brick document under the flow root. A document may expose
// multiple exports through its flows map.
type BrickDoc struct {
	ID     string                 `yaml:"id"`
	Flows  map[string]FlowDef     `yaml:"flows"`
	Common map[string]interface{} `yaml:"common,omitempty"`
}

// FlowDef is one named export inside a brick document.
type FlowDef struct {
	Sequence []Step `yaml:"sequence"`
}

// Step is either a scalar marker (notification-only entries, ignored for
// capability derivation) or a structured record. Structured steps may carry
// the requires_caps (all-required) and requires_caps_any (any-of) capability
// lists.
type Step struct {
	scalar string
	fields map[string]interface{}
}

// UnmarshalYAML accepts both scalar and mapping step forms.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&s.scalar)
	case yaml.MappingNode:
		return node.Decode(&s.fields)
	default:
		return fmt.Errorf("step must be a scalar or a mapping, got yaml kind %d", node.Kind)
	}
}

// MarshalJSON round-trips the step in its original shape.
func (s Step) MarshalJSON() ([]byte, error) {
	if s.fields != nil {
		return json.Marshal(s.fields)
	}
	return json.Marshal(s.scalar)
}

// Structured reports whether the step is a mapping rather than a scalar marker.
func (s Step) Structured() bool { return s.fields != nil }

// Scalar returns the marker value for scalar steps, "" otherwise.
func (s Step) Scalar() string { return s.scalar }

// CapabilityLists returns the all-required and any-of capability ids of a
// structured step. Both are empty for scalar steps.
func (s Step) CapabilityLists() (all, any []string) {
	return stringList(s.fields["requires_caps"]), stringList(s.fields["requires_caps_any"])
}

// stringList coerces a decoded YAML value into a string slice, dropping
// non-string elements.
func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GlossaryDoc is glossary.yaml, the authored term glossary.
type GlossaryDoc struct {
	Terms []Term `yaml:"terms"`
}

// Term is one glossary entry. When no glossary is authored, minimal terms
// are derived from the wakeup intents (id and aliases only).
type Term struct {
	ID               string   `yaml:"id" json:"id"`
	Label            string   `yaml:"label,omitempty" json:"label,omitempty"`
	Aliases          []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Tags             []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Owner            string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	RelatedWorkflows []string `yaml:"related_workflows,omitempty" json:"related_workflows,omitempty"`
}

// WakeupDoc is wakeup-intents.yaml.
type WakeupDoc struct {
	Intents []string            `yaml:"intents"`
	Aliases map[string][]string `yaml:"aliases"`
}

// CapabilityDoc is flow/capabilities.yaml, the capability matrix.
type CapabilityDoc struct {
	Capabilities map[string][]string `yaml:"capabilities"`
}

// AgentDoc is agents.yaml, the agent onboarding index. Experts maps a role
// name to its onboarding reference; Clients maps a client id to its agent
// id → onboarding reference map.
type AgentDoc struct {
	Experts map[string]string            `yaml:"experts"`
	Clients map[string]map[string]string `yaml:"clients"`
}

// DocRef is one documentation reference extracted from markdown front-matter.
type DocRef struct {
	Nomenclature string `yaml:"nomenclature" json:"nomenclature,omitempty"`
	Workflow     string `yaml:"workflow" json:"workflow,omitempty"`
	Owner        string `yaml:"owner" json:"owner,omitempty"`
	Path         string `yaml:"-" json:"path"`
}
