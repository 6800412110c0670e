// Package term maps free-text terms to canonical intent ids using the term
// catalog (the authored glossary, or terms derived from wakeup intents).
package term

import (
	"strings"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

// Scoring weights. The values are load-bearing: external consumers (CI
// checks, front-ends) reproduce the same scoring and must agree with us.
const (
	scoreFieldEqual    = 4 // label or id equals the term, case-insensitive
	scoreAliasEqual    = 3 // an alias or tag equals the term, case-insensitive
	scoreFieldContains = 2 // label or id contains the term
	scoreAliasContains = 1 // an alias or tag contains the term
)

// Resolve maps a term to an intent id, or "" when nothing matches.
//
// An exact, case-sensitive match on an entry id wins immediately over any
// scored result. Otherwise every catalog entry is scored and the highest
// scorer wins; on a tie the entry that reached the maximum first wins, so
// the outcome follows catalog order (glossary authored order, or the wakeup
// intents list order for derived catalogs).
func Resolve(catalog []artifact.Term, term string) string {
	for _, t := range catalog {
		if t.ID == term {
			return t.ID
		}
	}

	needle := strings.ToLower(term)
	best := ""
	bestScore := 0
	for _, t := range catalog {
		if sc := score(t, needle); sc > bestScore {
			bestScore = sc
			best = t.ID
		}
	}
	if bestScore == 0 {
		return ""
	}
	return best
}

func score(t artifact.Term, needle string) int {
	sc := 0
	for _, field := range []string{t.Label, t.ID} {
		v := strings.ToLower(field)
		if v == needle {
			sc += scoreFieldEqual
		} else if strings.Contains(v, needle) {
			sc += scoreFieldContains
		}
	}
	for _, list := range [][]string{t.Aliases, t.Tags} {
		for _, field := range list {
			v := strings.ToLower(field)
			if v == needle {
				sc += scoreAliasEqual
			} else if strings.Contains(v, needle) {
				sc += scoreAliasContains
			}
		}
	}
	return sc
}
