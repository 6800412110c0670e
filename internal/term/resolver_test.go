package term

import (
	"testing"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

func TestResolveExactIDWins(t *testing.T) {
	// "deploy" scores high on the second entry's label and aliases, but an
	// exact id match on the first entry must win unconditionally.
	catalog := []artifact.Term{
		{ID: "deploy"},
		{ID: "deploy-service", Label: "deploy", Aliases: []string{"deploy", "deployment"}},
	}

	got := Resolve(catalog, "deploy")
	if got != "deploy" {
		t.Errorf("Resolve(%q) = %q, want exact id match %q", "deploy", got, "deploy")
	}
}

func TestResolveExactIsCaseSensitive(t *testing.T) {
	catalog := []artifact.Term{
		{ID: "Deploy"},
		{ID: "other", Aliases: []string{"deploy"}},
	}

	// "deploy" is not a verbatim id, so the scored pass runs: "Deploy" id
	// equals case-insensitively (+4) beating the alias (+3).
	got := Resolve(catalog, "deploy")
	if got != "Deploy" {
		t.Errorf("Resolve(%q) = %q, want %q via scored pass", "deploy", got, "Deploy")
	}
}

func TestResolveScoring(t *testing.T) {
	catalog := []artifact.Term{
		{ID: "incident-response", Label: "Incident response", Aliases: []string{"incident", "outage"}, Tags: []string{"ops"}},
		{ID: "release", Label: "Release train", Aliases: []string{"ship it"}, Tags: []string{"delivery"}},
		{ID: "onboarding", Label: "Agent onboarding", Aliases: []string{"welcome"}},
	}

	tests := []struct {
		name string
		term string
		want string
	}{
		{"label equality", "incident response", "incident-response"},
		{"label substring", "release tr", "release"},
		{"alias equality", "outage", "incident-response"},
		{"alias equality case-insensitive", "OUTAGE", "incident-response"},
		{"tag equality", "delivery", "release"},
		{"alias substring", "ship", "release"},
		{"no match", "unrelated-thing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(catalog, tt.term)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}

func TestResolveTieBreaksToCatalogOrder(t *testing.T) {
	// Both entries score identically on the alias; the first to reach the
	// maximum wins, so catalog order decides.
	catalog := []artifact.Term{
		{ID: "first", Aliases: []string{"shared"}},
		{ID: "second", Aliases: []string{"shared"}},
	}

	got := Resolve(catalog, "shared")
	if got != "first" {
		t.Errorf("Resolve tie = %q, want catalog-order winner %q", got, "first")
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	if got := Resolve(nil, "anything"); got != "" {
		t.Errorf("Resolve on empty catalog = %q, want empty", got)
	}
}
