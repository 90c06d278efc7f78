// Package corpus holds the static knowledge the reasoning engine consults:
// classical clauses, pulse patterns, formulas, herb compatibility rules,
// diagnostic rules, treatment protocols and the lookup tables around them.
//
// A KnowledgeBase is immutable once built and safe for concurrent use.
// Lookups of missing keys return the zero value and false.
package corpus

import (
	"slices"
	"strings"

	"github.com/qhuang2010/zhongyimedic/pkg/match"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// KnowledgeBase is an indexed, read-only corpus.
type KnowledgeBase struct {
	cat Catalog

	clauses       map[string]int
	patternsByID  map[string]int
	patternByName map[string]int
	formulas      map[string]int
}

// Stats counts the entries of each catalog.
type Stats struct {
	Clauses       int `json:"clauses"`
	Patterns      int `json:"patterns"`
	Formulas      int `json:"formulas"`
	Compatibility int `json:"compatibility_rules"`
	Rules         int `json:"rules"`
	Protocols     int `json:"protocols"`
	Categories    int `json:"categories"`
	Symptoms      int `json:"symptoms"`
}

// New validates and indexes cat. The catalog slices are owned by the
// KnowledgeBase afterwards and must not be modified by the caller.
func New(cat Catalog) (*KnowledgeBase, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	kb := &KnowledgeBase{
		cat:           cat,
		clauses:       make(map[string]int, len(cat.Clauses)),
		patternsByID:  make(map[string]int, len(cat.Patterns)),
		patternByName: make(map[string]int, len(cat.Patterns)),
		formulas:      make(map[string]int, len(cat.Formulas)),
	}
	for i, c := range cat.Clauses {
		kb.clauses[c.ID] = i
	}
	for i, p := range cat.Patterns {
		kb.patternsByID[p.ID] = i
		kb.patternByName[p.Name] = i
	}
	for i, f := range cat.Formulas {
		kb.formulas[f.Name] = i
	}
	return kb, nil
}

// Clause returns the clause with the given id.
func (kb *KnowledgeBase) Clause(id string) (types.Clause, bool) {
	i, ok := kb.clauses[id]
	if !ok {
		return types.Clause{}, false
	}
	return kb.cat.Clauses[i], true
}

// Formula returns the formula with the given name.
func (kb *KnowledgeBase) Formula(name string) (types.Formula, bool) {
	i, ok := kb.formulas[name]
	if !ok {
		return types.Formula{}, false
	}
	return kb.cat.Formulas[i], true
}

// Pattern returns the pulse pattern with the given id.
func (kb *KnowledgeBase) Pattern(id string) (types.PulsePattern, bool) {
	i, ok := kb.patternsByID[id]
	if !ok {
		return types.PulsePattern{}, false
	}
	return kb.cat.Patterns[i], true
}

// PatternByName returns the pulse pattern with the given display name.
func (kb *KnowledgeBase) PatternByName(name string) (types.PulsePattern, bool) {
	i, ok := kb.patternByName[name]
	if !ok {
		return types.PulsePattern{}, false
	}
	return kb.cat.Patterns[i], true
}

// ClausesForSyndrome returns, in corpus order, the clauses whose syndrome
// contains the given text.
func (kb *KnowledgeBase) ClausesForSyndrome(syndrome string) []types.Clause {
	if syndrome == "" {
		return nil
	}
	var out []types.Clause
	for _, c := range kb.cat.Clauses {
		if c.Syndrome != "" && strings.Contains(c.Syndrome, syndrome) {
			out = append(out, c)
		}
	}
	return out
}

// Patterns returns all pulse patterns in corpus order.
func (kb *KnowledgeBase) Patterns() []types.PulsePattern { return kb.cat.Patterns }

// Formulas returns all formulas in corpus order.
func (kb *KnowledgeBase) Formulas() []types.Formula { return kb.cat.Formulas }

// Rules returns all diagnostic rules in corpus order.
func (kb *KnowledgeBase) Rules() []types.DiagnosticRule { return kb.cat.Rules }

// Protocols returns all treatment protocols in corpus order.
func (kb *KnowledgeBase) Protocols() []types.TreatmentProtocol { return kb.cat.Protocols }

// Categories returns the six-meridian categories in corpus order.
func (kb *KnowledgeBase) Categories() []types.SyndromeCategory { return kb.cat.Categories }

// CompatibilityRules returns all herb-pair rules in corpus order.
func (kb *KnowledgeBase) CompatibilityRules() []types.CompatibilityRule { return kb.cat.Compatibility }

// AnchorHerbs returns the herbs treated as sovereign by default.
func (kb *KnowledgeBase) AnchorHerbs() []string { return kb.cat.AnchorHerbs }

// MatchPatterns scores the pulse patterns against key findings and the
// overall pulse description.
func (kb *KnowledgeBase) MatchPatterns(findings []string, overall string) []match.PatternMatch {
	return match.Patterns(kb.cat.Patterns, findings, overall)
}

// IdentifyCategories ranks the six-meridian categories for the given
// symptoms and pulse quality tokens.
func (kb *KnowledgeBase) IdentifyCategories(symptoms, pulse []string) []match.CategoryMatch {
	return match.Categories(kb.cat.Categories, symptoms, pulse)
}

// MatchFormulas ranks formulas by how many of their indicated symptoms
// were reported. Pulse quality tokens are accepted alongside the symptoms
// but do not contribute to the score yet.
func (kb *KnowledgeBase) MatchFormulas(symptoms, pulse []string) []match.FormulaMatch {
	return match.Formulas(kb.cat.Formulas, symptoms)
}

// ProtocolFor returns the first protocol, in corpus order, that lists
// either the vital state or the exact governing syndrome.
func (kb *KnowledgeBase) ProtocolFor(state types.VitalState, syndrome string) (types.TreatmentProtocol, bool) {
	for _, p := range kb.cat.Protocols {
		if state != "" && slices.Contains(p.States, state) {
			return p, true
		}
		if syndrome != "" && slices.Contains(p.Syndromes, syndrome) {
			return p, true
		}
	}
	return types.TreatmentProtocol{}, false
}

// SymptomSignificance returns the clinical meaning of a symptom.
func (kb *KnowledgeBase) SymptomSignificance(symptom string) (string, bool) {
	for _, m := range kb.cat.Symptoms {
		if m.Symptom == symptom {
			return m.Significance, true
		}
	}
	return "", false
}

// Medication returns the state-keyed medication plan, falling back to the
// default plan. The boolean reports whether a state-specific plan existed.
func (kb *KnowledgeBase) Medication(state types.VitalState) (types.MedicationPlan, bool) {
	for _, m := range kb.cat.Medication {
		if m.State == state {
			return m, true
		}
	}
	return kb.cat.DefaultMedication, false
}

// Outcome returns the expected-outcome sentence for a classification, then
// for a vital state, then the default. The boolean reports whether a
// specific entry was found.
func (kb *KnowledgeBase) Outcome(classification types.SyndromeType, state types.VitalState) (string, bool) {
	if classification != "" {
		for _, o := range kb.cat.Outcomes {
			if o.Classification == classification {
				return o.Text, true
			}
		}
	}
	if state != "" {
		for _, o := range kb.cat.Outcomes {
			if o.State == state {
				return o.Text, true
			}
		}
	}
	return kb.cat.DefaultOutcome, false
}

// Stats counts the entries of each catalog.
func (kb *KnowledgeBase) Stats() Stats {
	return Stats{
		Clauses:       len(kb.cat.Clauses),
		Patterns:      len(kb.cat.Patterns),
		Formulas:      len(kb.cat.Formulas),
		Compatibility: len(kb.cat.Compatibility),
		Rules:         len(kb.cat.Rules),
		Protocols:     len(kb.cat.Protocols),
		Categories:    len(kb.cat.Categories),
		Symptoms:      len(kb.cat.Symptoms),
	}
}
