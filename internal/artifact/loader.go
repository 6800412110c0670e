package artifact

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Default locations relative to the tree root, overridable via config.yaml.
const (
	configFile       = "config.yaml"
	defaultFlowDir   = "flow"
	defaultGlossary  = "glossary.yaml"
	defaultAgents    = "agents.yaml"
	defaultWakeup    = "wakeup-intents.yaml"
	manifestFile     = "manifest.yaml"
	routingFile      = "routing.yaml"
	registryFile     = "registry.yaml"
	capabilitiesFile = "capabilities.yaml"

	// DefaultFrontmatterKey marks a markdown file as a doc reference.
	DefaultFrontmatterKey = "docref"
)

// Tree reads artifacts from one tree root. It holds no parsed state: every
// accessor re-reads from storage, so consecutive calls observe on-disk edits
// and nothing needs invalidating.
type Tree struct {
	root string
	cfg  TreeConfig
}

// Open resolves the tree config at root. The config itself is optional and
// tolerant: a missing or unparseable config.yaml yields defaults.
func Open(root string) *Tree {
	t := &Tree{root: root}
	decodeLenient(filepath.Join(root, configFile), &t.cfg)
	return t
}

// Root returns the absolute tree root.
func (t *Tree) Root() string { return t.root }

// Config returns the parsed (or default) tree config.
func (t *Tree) Config() TreeConfig { return t.cfg }

// FrontmatterKey returns the configured doc front-matter key.
func (t *Tree) FrontmatterKey() string {
	if k := t.cfg.Options.DocFrontmatterKey; k != "" {
		return k
	}
	return DefaultFrontmatterKey
}

// FlowRoot returns the directory holding the flow artifacts and bricks.
func (t *Tree) FlowRoot() string {
	return t.override(t.cfg.Paths.Flow, defaultFlowDir)
}

func (t *Tree) glossaryPath() string {
	return t.override(t.cfg.Paths.Glossary, defaultGlossary)
}

func (t *Tree) agentsPath() string {
	return t.override(t.cfg.Paths.Agents, defaultAgents)
}

func (t *Tree) wakeupPath() string {
	return t.override(t.cfg.Paths.Wakeup, defaultWakeup)
}

func (t *Tree) override(configured, fallback string) string {
	if configured != "" {
		return filepath.Join(t.root, configured)
	}
	return filepath.Join(t.root, fallback)
}

// Manifest loads the workflow manifest. Tolerant: absent or unparseable
// yields an empty catalog.
func (t *Tree) Manifest() ManifestDoc {
	var doc ManifestDoc
	decodeLenient(filepath.Join(t.FlowRoot(), manifestFile), &doc)
	return doc
}

// RequireManifest loads the workflow manifest, failing with missing_artifact
// when the file is absent. Call paths that list the manifest directly
// (flow catalog) need it; everything else uses Manifest.
func (t *Tree) RequireManifest() (ManifestDoc, error) {
	var doc ManifestDoc
	if err := t.decodeRequired(filepath.Join(t.FlowRoot(), manifestFile), "workflow manifest", &doc); err != nil {
		return ManifestDoc{}, err
	}
	return doc, nil
}

// Routing loads the router rules, failing with missing_artifact when absent.
// Router rules are required for any resolve.
func (t *Tree) Routing() (RoutingDoc, error) {
	var doc RoutingDoc
	if err := t.decodeRequired(filepath.Join(t.FlowRoot(), routingFile), "router rules", &doc); err != nil {
		return RoutingDoc{}, err
	}
	return doc, nil
}

// Registry loads the brick registry, failing with missing_artifact when
// absent. The registry is required for any resolve or flow load.
func (t *Tree) Registry() (RegistryDoc, error) {
	var doc RegistryDoc
	if err := t.decodeRequired(filepath.Join(t.FlowRoot(), registryFile), "brick registry", &doc); err != nil {
		return RegistryDoc{}, err
	}
	return doc, nil
}

// RegistryLenient loads the brick registry tolerantly, for batch-building
// paths like catalog assembly where its absence degrades rather than fails.
func (t *Tree) RegistryLenient() RegistryDoc {
	var doc RegistryDoc
	decodeLenient(filepath.Join(t.FlowRoot(), registryFile), &doc)
	return doc
}

// Brick loads one brick document by its registry entry. The file path in the
// entry is relative to the flow root. Fails with missing_file when the file
// cannot be read; an unreadable brick is a broken reference, not a tolerable
// absence.
func (t *Tree) Brick(entry RegistryEntry) (BrickDoc, error) {
	path := filepath.Join(t.FlowRoot(), entry.File)
	data, err := os.ReadFile(path)
	if err != nil {
		return BrickDoc{}, NewError(KindMissingFile, "brick file %s not readable", path)
	}
	var doc BrickDoc
	// Parse failures degrade to an empty document; the export check
	// downstream then reports unknown_export.
	_ = yaml.Unmarshal(data, &doc)
	return doc, nil
}

// BrickPath returns the resolved path of a registry entry's file.
func (t *Tree) BrickPath(entry RegistryEntry) string {
	return filepath.Join(t.FlowRoot(), entry.File)
}

// Glossary loads the authored term glossary. Tolerant.
func (t *Tree) Glossary() GlossaryDoc {
	var doc GlossaryDoc
	decodeLenient(t.glossaryPath(), &doc)
	return doc
}

// Wakeup loads the wakeup intents. Tolerant.
func (t *Tree) Wakeup() WakeupDoc {
	var doc WakeupDoc
	decodeLenient(t.wakeupPath(), &doc)
	return doc
}

// Capabilities loads the capability matrix. Tolerant.
func (t *Tree) Capabilities() CapabilityDoc {
	var doc CapabilityDoc
	decodeLenient(filepath.Join(t.FlowRoot(), capabilitiesFile), &doc)
	return doc
}

// Agents loads the agent index. Tolerant: an unknown client or missing index
// later yields empty bindings, not an error.
func (t *Tree) Agents() AgentDoc {
	var doc AgentDoc
	decodeLenient(t.agentsPath(), &doc)
	return doc
}

// TermCatalog builds the term catalog: the authored glossary when it has any
// entries, otherwise one minimal derived term per wakeup intent (id and
// aliases only). Catalog order is the glossary's authored order, or the
// wakeup intents list order; that order is the scoring tie-break.
func (t *Tree) TermCatalog() []Term {
	if terms := t.Glossary().Terms; len(terms) > 0 {
		return terms
	}
	wk := t.Wakeup()
	var derived []Term
	for _, intent := range wk.Intents {
		derived = append(derived, Term{ID: intent, Aliases: wk.Aliases[intent]})
	}
	return derived
}

// decodeLenient reads and parses a YAML document into out. Absent files and
// parse failures both leave out at its zero value; callers cannot tell
// "empty because absent" from "empty because no entries", which is the
// documented tolerance policy for optional artifacts.
func decodeLenient(path string, out interface{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, out)
}

// decodeRequired reads and parses a YAML document into out, failing with
// missing_artifact when the file is absent. A present but unparseable
// document still degrades to empty: only absence is fatal.
func (t *Tree) decodeRequired(path, what string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewError(KindMissingArtifact, "%s not found at %s", what, path)
	}
	_ = yaml.Unmarshal(data, out)
	return nil
}
