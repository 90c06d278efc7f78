// Package match scores corpus entries against observed findings. All
// scorers return matches sorted by descending score; equal scores keep
// corpus order.
package match

import (
	"slices"
	"sort"
	"strings"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// FormulaThreshold is the minimum symptom overlap for a formula to be proposed.
const FormulaThreshold = 0.3

// PatternMatch is a pulse pattern scored by feature overlap.
type PatternMatch struct {
	Pattern  types.PulsePattern `json:"pattern"`
	Score    float64            `json:"score"`
	Features []string           `json:"matched_features"`
}

// CategoryMatch is a syndrome category scored by weighted overlap.
type CategoryMatch struct {
	Category types.SyndromeCategory `json:"category"`
	Score    float64                `json:"score"`
	Symptoms []string               `json:"matched_symptoms"`
	Pulse    []string               `json:"matched_pulse"`
}

// FormulaMatch is a formula scored by indication overlap.
type FormulaMatch struct {
	Formula  types.Formula `json:"formula"`
	Score    float64       `json:"score"`
	Symptoms []string      `json:"matched_symptoms"`
}

// Patterns scores each pattern as the fraction of its key features present
// in the findings or the overall description. A feature is present when it
// occurs inside any finding or inside the description. Patterns without
// features are skipped and only positive scores are returned.
func Patterns(patterns []types.PulsePattern, findings []string, overall string) []PatternMatch {
	var out []PatternMatch
	for _, p := range patterns {
		if len(p.KeyFeatures) == 0 {
			continue
		}
		var hit []string
		for _, f := range p.KeyFeatures {
			if featurePresent(f, findings, overall) {
				hit = append(hit, f)
			}
		}
		if len(hit) == 0 {
			continue
		}
		out = append(out, PatternMatch{
			Pattern:  p,
			Score:    float64(len(hit)) / float64(len(p.KeyFeatures)),
			Features: hit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func featurePresent(feature string, findings []string, overall string) bool {
	if feature == "" {
		return false
	}
	for _, f := range findings {
		if strings.Contains(f, feature) {
			return true
		}
	}
	return strings.Contains(overall, feature)
}

// Categories scores each category as (2·symptoms + pulse) / (2·expected
// symptoms + expected pulse). Symptoms and pulse qualities match exactly.
// A category qualifies when anything matched.
func Categories(categories []types.SyndromeCategory, symptoms, pulse []string) []CategoryMatch {
	var out []CategoryMatch
	for _, c := range categories {
		sym := intersect(symptoms, c.KeySymptoms)
		pul := intersect(pulse, c.Pulse)
		if len(sym) == 0 && len(pul) == 0 {
			continue
		}
		denom := 2*len(c.KeySymptoms) + len(c.Pulse)
		out = append(out, CategoryMatch{
			Category: c,
			Score:    float64(2*len(sym)+len(pul)) / float64(denom),
			Symptoms: sym,
			Pulse:    pul,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Formulas scores each formula as the fraction of its indicated symptoms
// that were reported, keeping those at or above FormulaThreshold.
func Formulas(formulas []types.Formula, symptoms []string) []FormulaMatch {
	var out []FormulaMatch
	for _, f := range formulas {
		expected := f.Indication.Symptoms
		if len(expected) == 0 {
			continue
		}
		sym := intersect(symptoms, expected)
		score := float64(len(sym)) / float64(len(expected))
		if score < FormulaThreshold {
			continue
		}
		out = append(out, FormulaMatch{Formula: f, Score: score, Symptoms: sym})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// intersect returns the distinct members of observed that appear in expected,
// in observed order.
func intersect(observed, expected []string) []string {
	var out []string
	for _, o := range observed {
		if slices.Contains(expected, o) && !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	return out
}
