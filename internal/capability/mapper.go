// Package capability derives responsible roles from a workflow's first
// actionable step via the capability matrix.
package capability

import (
	"sort"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

// Roles returns the roles responsible for a step sequence, sorted by name.
//
// Only the first structured step participates: scalar markers are skipped
// and every later step is ignored. Its all-required and any-of capability
// lists are unioned without distinguishing their logical meaning, a
// simplification that downstream consumers depend on, and each capability
// id maps through the matrix to its role list.
func Roles(steps []artifact.Step, matrix artifact.CapabilityDoc) []string {
	var first *artifact.Step
	for i := range steps {
		if steps[i].Structured() {
			first = &steps[i]
			break
		}
	}
	if first == nil {
		return nil
	}

	all, any := first.CapabilityLists()
	caps := make(map[string]bool)
	for _, c := range all {
		caps[c] = true
	}
	for _, c := range any {
		caps[c] = true
	}

	roleSet := make(map[string]bool)
	for c := range caps {
		for _, r := range matrix.Capabilities[c] {
			roleSet[r] = true
		}
	}

	roles := make([]string, 0, len(roleSet))
	for r := range roleSet {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}
