package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qhuang2010/zhongyimedic/pkg/format"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

var formulaCmd = &cobra.Command{
	Use:   "formula NAME",
	Short: "Show a formula's composition and herb compatibility",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormula,
}

var formulaMatchCmd = &cobra.Command{
	Use:     "match SYMPTOM [SYMPTOM...]",
	Short:   "Rank formulas by how many of their indicated symptoms are present",
	Example: "  pulsecot formula match 恶寒 无汗 身痛",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFormulaMatch,
}

func init() {
	formulaCmd.AddCommand(formulaMatchCmd)
}

// formulaView is a formula together with its compatibility report.
type formulaView struct {
	types.Formula
	Compatibility types.CompatibilityReport `json:"compatibility"`
}

func runFormula(cmd *cobra.Command, args []string) error {
	kb, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	f, ok := kb.Formula(args[0])
	if !ok {
		return fmt.Errorf("formula %q not found", args[0])
	}
	v := formulaView{Formula: f, Compatibility: kb.CheckCompatibility(f.HerbNames())}
	return render(cmd, v, func(m format.Mode) string {
		title := f.Name
		if f.Source != "" {
			title += "（" + f.Source + "）"
		}
		return format.Composition(title, f.Composition, m) + "\n\n" + format.Compatibility(v.Compatibility, m)
	})
}

func runFormulaMatch(cmd *cobra.Command, symptoms []string) error {
	kb, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	matches := kb.MatchFormulas(symptoms, nil)
	return render(cmd, matches, func(m format.Mode) string {
		t := format.NewTable(m, "",
			format.Column{Name: "方剂"},
			format.Column{Name: "匹配度", Right: true},
			format.Column{Name: "相符症状"},
		)
		for _, fm := range matches {
			t.Add(fm.Formula.Name, fmt.Sprintf("%.2f", fm.Score), strings.Join(fm.Symptoms, "、"))
		}
		return t.Render()
	})
}
