// Package flow validates brick:export references against the brick registry
// and loads the referenced step sequences.
package flow

import (
	"strings"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

// Separator splits a flow reference into brick id and export name.
const Separator = ":"

// Flow is one loaded workflow export.
type Flow struct {
	ID     string                 `json:"id"`
	Export string                 `json:"export"`
	File   string                 `json:"file"`
	Steps  []artifact.Step        `json:"steps"`
	Common map[string]interface{} `json:"common,omitempty"`
}

// ParseRef splits a flow reference of exact shape brick:export. A reference
// with any other separator count fails with invalid_reference.
func ParseRef(ref string) (brickID, export string, err error) {
	parts := strings.Split(ref, Separator)
	if len(parts) != 2 {
		return "", "", artifact.NewError(artifact.KindInvalidReference, "flow reference %q must have exactly one %q separator", ref, Separator)
	}
	return parts[0], parts[1], nil
}

// ValidateRef checks that a reference round-trips through the registry: the
// brick id must be registered and the export declared by its entry. Any
// component producing or accepting a reference enforces both checks before
// use.
func ValidateRef(registry artifact.RegistryDoc, ref string) error {
	brickID, export, err := ParseRef(ref)
	if err != nil {
		return err
	}
	entry, ok := registry.Registry[brickID]
	if !ok {
		return artifact.NewError(artifact.KindUnknownBrick, "brick %q not in registry", brickID)
	}
	if !entry.HasExport(export) {
		return artifact.NewError(artifact.KindUnknownExport, "export %q not declared by brick %q", export, brickID)
	}
	return nil
}

// Load resolves a flow reference to its step sequence. The reference must be
// well formed (invalid_reference), name a registered brick (unknown_brick)
// whose file is readable (missing_file), and the export must be a key of the
// document's flows map (unknown_export). The returned sequence may be empty.
func Load(tree *artifact.Tree, registry artifact.RegistryDoc, ref string) (Flow, error) {
	brickID, export, err := ParseRef(ref)
	if err != nil {
		return Flow{}, err
	}
	entry, ok := registry.Registry[brickID]
	if !ok {
		return Flow{}, artifact.NewError(artifact.KindUnknownBrick, "brick %q not in registry", brickID)
	}
	doc, err := tree.Brick(entry)
	if err != nil {
		return Flow{}, err
	}
	def, ok := doc.Flows[export]
	if !ok {
		return Flow{}, artifact.NewError(artifact.KindUnknownExport, "export %q absent from %s", export, entry.File)
	}
	return Flow{
		ID:     doc.ID,
		Export: export,
		File:   tree.BrickPath(entry),
		Steps:  def.Sequence,
		Common: doc.Common,
	}, nil
}
