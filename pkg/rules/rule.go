package rules

import (
	"slices"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// Facts are the observations diagnostic rules are tested against.
type Facts struct {
	// Patterns are the names of the pulse patterns that matched.
	Patterns []string
	// Symptoms are the reported symptoms, verbatim.
	Symptoms []string
}

// Rule defines the interface for deterministic diagnostic rules.
type Rule interface {
	// ID returns a unique identifier for this rule.
	ID() string

	// Match returns true if this rule applies to the given facts.
	Match(f Facts) bool

	// Trigger explains which facts satisfied the rule.
	// This should only be called if Match returns true.
	Trigger(f Facts) Trigger
}

// Trigger lists the facts that satisfied each condition of a rule.
type Trigger struct {
	Patterns []string `json:"patterns"`
	Symptoms []string `json:"symptoms"`
}

// CorpusRule adapts a catalog diagnostic rule to the Rule interface.
// The pattern condition holds when any required pattern matched; the
// symptom condition holds when any required symptom was reported.
type CorpusRule struct {
	types.DiagnosticRule
}

var _ Rule = CorpusRule{}

func (r CorpusRule) ID() string { return r.DiagnosticRule.ID }

func (r CorpusRule) Match(f Facts) bool {
	return anyOf(r.Patterns, f.Patterns) && anyOf(r.Symptoms, f.Symptoms)
}

func (r CorpusRule) Trigger(f Facts) Trigger {
	return Trigger{
		Patterns: common(r.Patterns, f.Patterns),
		Symptoms: common(r.Symptoms, f.Symptoms),
	}
}

func anyOf(required, observed []string) bool {
	for _, r := range required {
		if slices.Contains(observed, r) {
			return true
		}
	}
	return false
}

// common returns the required entries that were observed, in rule order.
func common(required, observed []string) []string {
	var out []string
	for _, r := range required {
		if slices.Contains(observed, r) {
			out = append(out, r)
		}
	}
	return out
}
