// Package router evaluates ordered routing strategies to bind an intent (or
// tags, a subject line, or an action key) to a flow reference.
package router

import (
	"regexp"

	"github.com/agentx-labs/wayfind/internal/artifact"
)

// Input carries the optional match inputs. An input that is not supplied
// never matches a strategy that requires it.
type Input struct {
	Intent    string
	Tags      []string
	Subject   string
	ActionKey string
}

// Trace records which strategies were evaluated, for observability. Matched
// is nil when no strategy matched; Candidates holds the strategies that were
// evaluated and rejected before the match (all of them on a miss).
type Trace struct {
	Matched    *artifact.Strategy  `json:"matched"`
	Candidates []artifact.Strategy `json:"candidates"`
}

// Route returns the flow reference of the first matching strategy, in
// authored order. Strategy order is the sole tie-break: the first match wins
// unconditionally. When no strategy matches and an intent was given, the
// manifest catalog is consulted as a fallback. An empty result is a normal
// outcome, not an error.
func Route(routing artifact.RoutingDoc, manifest artifact.ManifestDoc, in Input) (string, Trace) {
	var trace Trace
	for i, s := range routing.Strategies {
		if matches(s.Match, in) {
			matched := routing.Strategies[i]
			trace.Matched = &matched
			return s.Route.Flow, trace
		}
		trace.Candidates = append(trace.Candidates, s)
	}

	if in.Intent != "" {
		for _, e := range manifest.WorkflowsCatalog {
			if e.Intent == in.Intent {
				return e.FlowRef, trace
			}
		}
	}
	return "", trace
}

func matches(m artifact.Match, in Input) bool {
	switch m.By {
	case "intent":
		return in.Intent != "" && m.Value == in.Intent
	case "tags":
		return len(in.Tags) > 0 && intersects(m.AnyOf, in.Tags)
	case "subject":
		if in.Subject == "" {
			return false
		}
		re, err := regexp.Compile(m.Regex)
		return err == nil && re.MatchString(in.Subject)
	case "action_key":
		return in.ActionKey != "" && m.Value == in.ActionKey
	}
	return false
}

func intersects(anyOf, tags []string) bool {
	for _, want := range anyOf {
		for _, have := range tags {
			if want == have {
				return true
			}
		}
	}
	return false
}
