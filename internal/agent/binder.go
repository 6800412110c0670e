// Package agent binds operator roles to candidate agent onboarding records
// for a requesting client.
package agent

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Binding pairs a client, a role, and the onboarding reference of an agent
// whose id equals the role's slug.
type Binding struct {
	Client     string `json:"client"`
	Role       string `json:"role"`
	Onboarding string `json:"onboarding"`
}

// Slug lowercases a role name, collapses every run of non-alphanumeric
// characters to a single hyphen, and trims leading/trailing hyphens.
// "Data Engineer" → "data-engineer".
func Slug(role string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(role), "-")
	return strings.Trim(s, "-")
}

// Bind returns one binding per (role, agent) pair where the client's agent
// id equals the role slug exactly; no fuzzy matching at this stage. An
// unknown client or empty index yields an empty result, not an error.
// Bindings follow role order; within a role, agent ids are iterated in
// sorted order for determinism.
func Bind(index artifact.AgentDoc, client string, roles []string) []Binding {
	if client == "" {
		return nil
	}
	agents := index.Clients[client]
	var out []Binding
	for _, role := range roles {
		slug := Slug(role)
		for _, id := range sortedAgentIDs(agents) {
			if id == slug {
				out = append(out, Binding{Client: client, Role: role, Onboarding: agents[id]})
			}
		}
	}
	return out
}

func sortedAgentIDs(agents map[string]string) []string {
	ids := make([]string, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
