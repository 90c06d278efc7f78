package corpus

import (
	"slices"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// CheckCompatibility reports every compatibility rule whose herbs are all
// present in herbs. Order of herbs does not matter and names match exactly.
// Only enhancement rules count as enhancements; assistance and
// neutralization rules are moderations.
func (kb *KnowledgeBase) CheckCompatibility(herbs []string) types.CompatibilityReport {
	report := types.CompatibilityReport{
		Enhancements: []types.CompatibilityFinding{},
		Moderations:  []types.CompatibilityFinding{},
		Warnings:     []types.CompatibilityFinding{},
		Prohibited:   []types.CompatibilityFinding{},
	}
	for _, r := range kb.cat.Compatibility {
		if !allPresent(r.Herbs, herbs) {
			continue
		}
		f := types.CompatibilityFinding{
			Herbs:    slices.Clone(r.Herbs),
			Category: r.Category,
			Effect:   r.Effect,
		}
		switch r.Category {
		case types.CompatProhibited:
			report.Prohibited = append(report.Prohibited, f)
		case types.CompatIncompatibility:
			report.Warnings = append(report.Warnings, f)
		case types.CompatEnhancement:
			report.Enhancements = append(report.Enhancements, f)
		default:
			report.Moderations = append(report.Moderations, f)
		}
	}
	return report
}

func allPresent(required, herbs []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, h := range required {
		if !slices.Contains(herbs, h) {
			return false
		}
	}
	return true
}
