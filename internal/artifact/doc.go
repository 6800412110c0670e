// Package artifact reads the static YAML documents that make up an artifact
// tree: the workflow manifest, router rules, brick registry, brick documents,
// term glossary, wakeup intents, capability matrix, agent index, and doc
// front-matter. Loading is tolerant by default (an absent or unparseable
// optional document degrades to an empty one), while documents required by
// the call path fail with a missing_artifact error. The engine never writes
// any artifact back.
package artifact
