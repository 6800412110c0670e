// Package engine composes the loader, term resolver, router, flow loader,
// capability mapper, agent binder, and catalog aggregator into the four
// operations both front-ends expose. It is the composition root: no matching
// or scoring logic lives here, only wiring.
//
// Every operation re-reads artifacts from storage; nothing is cached across
// calls, so there is no invalidation concern and concurrent callers never
// share mutable state.
package engine

import (
	"regexp"

	"github.com/agentx-labs/wayfind/internal/agent"
	"github.com/agentx-labs/wayfind/internal/artifact"
	"github.com/agentx-labs/wayfind/internal/capability"
	"github.com/agentx-labs/wayfind/internal/catalog"
	"github.com/agentx-labs/wayfind/internal/flow"
	"github.com/agentx-labs/wayfind/internal/router"
	"github.com/agentx-labs/wayfind/internal/term"
)

// Engine answers resolution queries against one artifact tree root. The root
// is fixed at construction and never mutated, so a single Engine is safe to
// share across concurrent requests.
type Engine struct {
	root string
}

// New returns an engine rooted at the given artifact tree.
func New(root string) *Engine {
	return &Engine{root: root}
}

// Root returns the configured artifact tree root.
func (e *Engine) Root() string { return e.root }

func (e *Engine) tree() *artifact.Tree { return artifact.Open(e.root) }

// PingResult reports liveness and the configured root.
type PingResult struct {
	OK   bool   `json:"ok"`
	Root string `json:"root"`
}

// Ping reports the engine's root without touching any artifact.
func (e *Engine) Ping() PingResult {
	return PingResult{OK: true, Root: e.root}
}

// LookupResult maps a queried term to its resolved intent, null when no
// catalog entry matched.
type LookupResult struct {
	Term   string  `json:"term"`
	Intent *string `json:"intent"`
}

// Lookup resolves a free-text term to an intent id via the term catalog.
func (e *Engine) Lookup(termText string) LookupResult {
	res := LookupResult{Term: termText}
	if intent := term.Resolve(e.tree().TermCatalog(), termText); intent != "" {
		res.Intent = &intent
	}
	return res
}

// ResolveInput carries the optional inputs of a resolve call.
type ResolveInput struct {
	Intent    string
	Term      string
	Tags      []string
	Subject   string
	ActionKey string
	Client    string
}

// ResolveResult is the full resolution chain outcome. FlowRef is null when
// no route matched, which is a normal outcome. Roles and agents are always
// present, possibly empty.
type ResolveResult struct {
	Intent           *string         `json:"intent"`
	FlowRef          *string         `json:"flow_ref"`
	RecommendedRoles []string        `json:"recommended_roles"`
	CandidateAgents  []agent.Binding `json:"candidate_agents"`
}

// Resolve runs the full chain: term → intent → route → flow → roles →
// agents. Router rules and the brick registry are required; their absence is
// fatal for this call. A route that points at an unregistered brick or
// undeclared export is a referential-integrity failure, not an empty result.
func (e *Engine) Resolve(in ResolveInput) (ResolveResult, error) {
	tree := e.tree()
	res := ResolveResult{
		RecommendedRoles: []string{},
		CandidateAgents:  []agent.Binding{},
	}

	intent := in.Intent
	if intent == "" && in.Term != "" {
		intent = term.Resolve(tree.TermCatalog(), in.Term)
	}
	if intent != "" {
		res.Intent = &intent
	}

	routing, err := tree.Routing()
	if err != nil {
		return ResolveResult{}, err
	}
	registry, err := tree.Registry()
	if err != nil {
		return ResolveResult{}, err
	}

	ref, _ := router.Route(routing, tree.Manifest(), router.Input{
		Intent:    intent,
		Tags:      in.Tags,
		Subject:   in.Subject,
		ActionKey: in.ActionKey,
	})
	if ref == "" {
		return res, nil
	}
	if err := flow.ValidateRef(registry, ref); err != nil {
		return ResolveResult{}, err
	}
	res.FlowRef = &ref

	loaded, err := flow.Load(tree, registry, ref)
	if err != nil {
		return ResolveResult{}, err
	}
	roles := capability.Roles(loaded.Steps, tree.Capabilities())
	if roles != nil {
		res.RecommendedRoles = roles
	}

	if in.Client != "" && len(roles) > 0 {
		if bindings := agent.Bind(tree.Agents(), in.Client, roles); bindings != nil {
			res.CandidateAgents = bindings
		}
	}
	return res, nil
}

// Catalog builds the filtered catalog. All source artifacts are optional
// here; missing ones degrade to empty facets.
func (e *Engine) Catalog(f catalog.Filter) catalog.Result {
	return catalog.Build(e.tree(), f)
}

// LoadFlow validates a brick:export reference and loads its step sequence.
// The registry is required for this call.
func (e *Engine) LoadFlow(ref string) (flow.Flow, error) {
	tree := e.tree()
	registry, err := tree.Registry()
	if err != nil {
		return flow.Flow{}, err
	}
	return flow.Load(tree, registry, ref)
}

// RouteResult carries a routed flow reference with its evaluation trace.
type RouteResult struct {
	FlowRef *string      `json:"flow_ref"`
	Trace   router.Trace `json:"trace"`
}

// Route evaluates the routing strategies directly, exposing the trace. Used
// by the workflow command surface; the no-match outcome is reported as a
// null reference for the caller to treat as it sees fit.
func (e *Engine) Route(in router.Input) (RouteResult, error) {
	tree := e.tree()
	routing, err := tree.Routing()
	if err != nil {
		return RouteResult{}, err
	}
	registry, err := tree.Registry()
	if err != nil {
		return RouteResult{}, err
	}

	ref, trace := router.Route(routing, tree.Manifest(), in)
	res := RouteResult{Trace: trace}
	if ref == "" {
		return res, nil
	}
	if err := flow.ValidateRef(registry, ref); err != nil {
		return RouteResult{}, err
	}
	res.FlowRef = &ref
	return res, nil
}

// FlowCatalog lists the workflow manifest, optionally filtered by family
// (exact) and a case-insensitive grep pattern over intent, title, and
// description. The manifest is required for this call.
func (e *Engine) FlowCatalog(family, grep string) ([]artifact.ManifestEntry, error) {
	manifest, err := e.tree().RequireManifest()
	if err != nil {
		return nil, err
	}
	entries := manifest.WorkflowsCatalog
	if family != "" {
		entries = filterEntries(entries, func(m artifact.ManifestEntry) bool {
			return m.Family == family
		})
	}
	if grep != "" {
		re, err := regexp.Compile("(?i)" + grep)
		if err != nil {
			return nil, err
		}
		entries = filterEntries(entries, func(m artifact.ManifestEntry) bool {
			return re.MatchString(m.Intent) || re.MatchString(m.Title) || re.MatchString(m.Description)
		})
	}
	if entries == nil {
		entries = []artifact.ManifestEntry{}
	}
	return entries, nil
}

// Validate checks every present artifact document against its schema.
func (e *Engine) Validate() ([]artifact.DocumentReport, error) {
	return e.tree().ValidateTree()
}

func filterEntries(entries []artifact.ManifestEntry, pred func(artifact.ManifestEntry) bool) []artifact.ManifestEntry {
	var out []artifact.ManifestEntry
	for _, m := range entries {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}
