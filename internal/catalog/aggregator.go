// Package catalog merges terms, workflows, documentation references, agents,
// and capabilities into one filterable item list.
package catalog

import (
	"sort"
	"strings"

	"github.com/agentx-labs/wayfind/internal/artifact"
	"github.com/agentx-labs/wayfind/internal/flow"
)

// Facet discriminants for catalog items.
const (
	FacetTerm       = "term"
	FacetFlow       = "flow"
	FacetDoc        = "doc"
	FacetAgent      = "agent"
	FacetCapability = "capability"
)

// Item is one catalog entry: a tagged union over the facets, flattened into
// a single struct with the facet discriminant always present.
type Item struct {
	Facet        string   `json:"facet"`
	ID           string   `json:"id,omitempty"`
	Label        string   `json:"label,omitempty"`
	Aliases      []string `json:"aliases,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Intent       string   `json:"intent,omitempty"`
	FlowRef      string   `json:"flow_ref,omitempty"`
	Family       string   `json:"family,omitempty"`
	Title        string   `json:"title,omitempty"`
	Nomenclature string   `json:"nomenclature,omitempty"`
	Workflow     string   `json:"workflow,omitempty"`
	Path         string   `json:"path,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Role         string   `json:"role,omitempty"`
	Client       string   `json:"client,omitempty"`
	AgentID      string   `json:"agent_id,omitempty"`
	Onboarding   string   `json:"onboarding,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

// Filter narrows the catalog. All zero-value fields are inactive.
type Filter struct {
	Facet  string // exact facet tag
	Grep   string // case-insensitive free-text filter
	Client string // with Facet "agent", restrict to this client or experts
}

// Result is the catalog payload: the ordered items plus summary counts.
type Result struct {
	Items  []Item         `json:"items"`
	Counts map[string]int `json:"counts"`
}

// Build assembles the full catalog from the tree and applies the filter.
// Map-backed facets (agents, capabilities) are emitted in sorted key order
// so consecutive calls over an unchanged tree return identical sequences.
// Manifest entries with a malformed flow reference are skipped, never fatal:
// a bad entry must not abort catalog assembly.
func Build(tree *artifact.Tree, f Filter) Result {
	var items []Item

	for _, t := range tree.TermCatalog() {
		items = append(items, Item{
			Facet:   FacetTerm,
			ID:      t.ID,
			Label:   t.Label,
			Aliases: t.Aliases,
			Tags:    t.Tags,
			Owner:   t.Owner,
		})
	}

	for _, e := range tree.Manifest().WorkflowsCatalog {
		if _, _, err := flow.ParseRef(e.FlowRef); err != nil {
			continue
		}
		items = append(items, Item{
			Facet:   FacetFlow,
			Intent:  e.Intent,
			FlowRef: e.FlowRef,
			Family:  e.Family,
			Title:   e.Title,
		})
	}

	for _, d := range tree.ScanDocs() {
		items = append(items, Item{
			Facet:        FacetDoc,
			Nomenclature: d.Nomenclature,
			Workflow:     d.Workflow,
			Owner:        d.Owner,
			Path:         d.Path,
		})
	}

	agents := tree.Agents()
	for _, role := range sortedKeys(agents.Experts) {
		items = append(items, Item{
			Facet:      FacetAgent,
			Kind:       "expert",
			Role:       role,
			Onboarding: agents.Experts[role],
		})
	}
	for _, client := range sortedKeys(agents.Clients) {
		agentMap := agents.Clients[client]
		for _, id := range sortedKeys(agentMap) {
			items = append(items, Item{
				Facet:      FacetAgent,
				Kind:       "client",
				Client:     client,
				AgentID:    id,
				Onboarding: agentMap[id],
			})
		}
	}

	caps := tree.Capabilities()
	for _, id := range sortedKeys(caps.Capabilities) {
		items = append(items, Item{
			Facet: FacetCapability,
			ID:    id,
			Roles: caps.Capabilities[id],
		})
	}

	items = apply(items, f)
	return Result{Items: items, Counts: map[string]int{"total": len(items)}}
}

// apply runs the filters in order: facet, client (agent facet only), grep.
func apply(items []Item, f Filter) []Item {
	if f.Facet != "" {
		items = keep(items, func(it Item) bool { return it.Facet == f.Facet })
	}
	if f.Client != "" && f.Facet == FacetAgent {
		items = keep(items, func(it Item) bool {
			return it.Client == f.Client || it.Kind == "expert"
		})
	}
	if f.Grep != "" {
		needle := strings.ToLower(f.Grep)
		items = keep(items, func(it Item) bool { return grepHit(it, needle) })
	}
	if items == nil {
		items = []Item{}
	}
	return items
}

// grepHit matches the needle against the fixed field set: id, label,
// aliases, tags, intent, title, client, agent id, and role. String fields
// match on containment; list fields match when any element contains the
// needle.
func grepHit(it Item, needle string) bool {
	for _, v := range []string{it.ID, it.Label, it.Intent, it.Title, it.Client, it.AgentID, it.Role} {
		if v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	for _, list := range [][]string{it.Aliases, it.Tags} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func keep(items []Item, pred func(Item) bool) []Item {
	var out []Item
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
