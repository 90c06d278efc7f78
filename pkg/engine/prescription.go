package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/qhuang2010/zhongyimedic/pkg/pulse"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

const defaultFormulaName = "元气脉法基础方"

func (b *builder) prescribe() types.ReasoningStep {
	rx, fromProtocol := b.protocolPrescription()
	var plan types.MedicationPlan
	if !fromProtocol {
		plan, _ = b.kb.Medication(b.prescriptionState())
		rx = types.Prescription{
			FormulaName: defaultFormulaName,
			Composition: slices.Clone(plan.Herbs),
		}
	}

	herbs := make([]string, 0, len(rx.Composition))
	for _, h := range rx.Composition {
		herbs = append(herbs, h.Herb)
	}
	rx.Compatibility = b.kb.CheckCompatibility(herbs)
	rx.FormulaAnalysis = b.formulaAnalysis(rx, plan, fromProtocol)
	rx.CompatibilityAnalysis = compatibilityAnalysis(rx.Compatibility)
	b.chain.Prescription = rx

	conclusion := fmt.Sprintf("选方：%s；组成：%s", rx.FormulaName, composition(rx.Composition))
	if !rx.Compatibility.Safe() {
		var pairs []string
		for _, f := range rx.Compatibility.Prohibited {
			pairs = append(pairs, strings.Join(f.Herbs, "+"))
		}
		conclusion += "；注意：含禁忌配伍" + strings.Join(pairs, "、") + "，须调整"
	}

	if fromProtocol {
		var ref string
		if f, ok := b.kb.Formula(rx.FormulaName); ok {
			if c, ok := b.kb.Clause(f.Clause); ok {
				ref = c.Citation()
			}
		}
		return types.ReasoningStep{
			ReasoningType: types.ReasoningAnalogical,
			Premise:       fmt.Sprintf("治则：%s；方案：%s", b.chain.Treatment.Principle, b.protocol.Name),
			Inference: fmt.Sprintf("%s为「%s」首选方，方证相应，随证选用",
				rx.FormulaName, b.protocol.Name),
			Conclusion:         conclusion,
			ClassicalReference: ref,
			Confidence:         b.conf.ProtocolFormula,
		}
	}
	return types.ReasoningStep{
		ReasoningType: types.ReasoningInferred,
		Premise:       fmt.Sprintf("治则：%s；元气状态：%s", b.chain.Treatment.Principle, b.prescriptionState()),
		Inference: fmt.Sprintf("无对应方案方剂，依脉空程度（%s）选药：%s。%s",
			orDefault(plan.PulseScore, "待定"), orDefault(plan.MainHerb, "随证"), plan.Reasoning),
		Conclusion: conclusion,
		Confidence: b.conf.DefaultFormula,
	}
}

// protocolPrescription resolves the first candidate formula of the chosen
// protocol. A composition missing from the protocol is taken from the
// formula catalog; if neither has herbs there is no protocol prescription.
func (b *builder) protocolPrescription() (types.Prescription, bool) {
	if !b.hasProtocol || len(b.protocol.Formulas) == 0 {
		return types.Prescription{}, false
	}
	pf := b.protocol.Formulas[0]
	rx := types.Prescription{FormulaName: pf.Name}
	comp := pf.Composition
	if f, ok := b.kb.Formula(pf.Name); ok {
		rx.Source = f.Source
		if len(comp) == 0 {
			comp = f.Composition
		}
	}
	if len(comp) == 0 {
		return types.Prescription{}, false
	}
	rx.Composition = make([]types.HerbComponent, 0, len(comp))
	for _, h := range comp {
		if h.Role == "" {
			h.Role = herbRole(h.Herb, b.kb.AnchorHerbs())
		}
		if h.Function == "" {
			h.Function = herbFunction(h.Herb)
		}
		rx.Composition = append(rx.Composition, h)
	}
	for _, alt := range b.protocol.Formulas[1:] {
		m := "备选：" + alt.Name
		if alt.Indication != "" {
			m += "（" + alt.Indication + "）"
		}
		rx.Modifications = append(rx.Modifications, m)
	}
	return rx, true
}

// prescriptionState keys the default herb table. A matched pattern naming
// floating or sinking yang takes precedence over the severity tier.
func (b *builder) prescriptionState() types.VitalState {
	for _, m := range b.patterns {
		switch m.Pattern.VitalState {
		case types.VitalFloating, types.VitalSinking:
			return m.Pattern.VitalState
		}
	}
	return b.state
}

// herbRole tags anchor herbs as sovereign and everything else as
// minister/assistant.
func herbRole(herb string, anchors []string) string {
	if slices.Contains(anchors, herb) {
		return types.RoleSovereign
	}
	return types.RoleMinisterAssistant
}

func herbFunction(herb string) string {
	if strings.Contains(herb, "附") || strings.Contains(herb, "姜") {
		return "温阳"
	}
	return "配伍"
}

func (b *builder) formulaAnalysis(rx types.Prescription, plan types.MedicationPlan, fromProtocol bool) string {
	var lines []string
	if fromProtocol {
		if f, ok := b.kb.Formula(rx.FormulaName); ok && len(f.Functions) > 0 {
			lines = append(lines, fmt.Sprintf("%s功效：%s", rx.FormulaName, strings.Join(f.Functions, "、")))
		}
	} else {
		lines = append(lines,
			"脉空程度："+orDefault(plan.PulseScore, "待定"),
			"主药选择："+orDefault(plan.MainHerb, "山药"),
		)
		if len(plan.KeyPoints) > 0 {
			lines = append(lines, "用药要点："+strings.Join(plan.KeyPoints, "；"))
		}
	}
	for _, h := range rx.Composition {
		line := fmt.Sprintf("%s %s %s：%s", h.Role, h.Herb, h.Dosage, h.Function)
		if h.Note != "" {
			line += "（" + h.Note + "）"
		}
		lines = append(lines, line)
	}
	var corroborating []string
	for _, m := range b.kb.MatchFormulas(b.symptoms, pulse.Tokens(b.qualities)) {
		corroborating = append(corroborating, fmt.Sprintf("%s（%.2f）", m.Formula.Name, m.Score))
	}
	if len(corroborating) > 0 {
		lines = append(lines, "方证对应参考："+strings.Join(corroborating, "、"))
	}
	return strings.Join(lines, "\n")
}

func compatibilityAnalysis(r types.CompatibilityReport) string {
	var lines []string
	for _, f := range r.Enhancements {
		lines = append(lines, fmt.Sprintf("配伍增效：%s（%s）", strings.Join(f.Herbs, "+"), f.Effect))
	}
	for _, f := range r.Moderations {
		lines = append(lines, fmt.Sprintf("%s：%s（%s）", moderationLabel(f.Category), strings.Join(f.Herbs, "+"), f.Effect))
	}
	for _, f := range r.Warnings {
		lines = append(lines, fmt.Sprintf("配伍相恶：%s（%s）", strings.Join(f.Herbs, "+"), f.Effect))
	}
	for _, f := range r.Prohibited {
		lines = append(lines, fmt.Sprintf("配伍禁忌：%s（%s）", strings.Join(f.Herbs, "+"), f.Effect))
	}
	if len(lines) == 0 {
		return "未见特殊配伍关系"
	}
	return strings.Join(lines, "\n")
}

func moderationLabel(c types.CompatibilityCategory) string {
	if c == types.CompatAssistance {
		return "配伍相使"
	}
	return "配伍相制"
}

func composition(herbs []types.HerbComponent) string {
	parts := make([]string, 0, len(herbs))
	for _, h := range herbs {
		parts = append(parts, h.Herb+h.Dosage)
	}
	return joinOr(parts, "、", "无")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
