// Package rules decides which diagnostic rules apply to a consultation.
package rules

import "github.com/qhuang2010/zhongyimedic/pkg/types"

// Applicable returns the rules that match f, preserving their order.
func Applicable(catalog []types.DiagnosticRule, f Facts) []types.DiagnosticRule {
	var out []types.DiagnosticRule
	for _, r := range catalog {
		if (CorpusRule{r}).Match(f) {
			out = append(out, r)
		}
	}
	return out
}

// Governing returns the first applicable rule with its trigger. Later
// applicable rules are not consulted.
func Governing(catalog []types.DiagnosticRule, f Facts) (types.DiagnosticRule, Trigger, bool) {
	for _, r := range catalog {
		cr := CorpusRule{r}
		if cr.Match(f) {
			return r, cr.Trigger(f), true
		}
	}
	return types.DiagnosticRule{}, Trigger{}, false
}
