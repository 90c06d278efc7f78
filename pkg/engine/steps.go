package engine

import (
	"fmt"
	"strings"

	"github.com/qhuang2010/zhongyimedic/pkg/pulse"
	"github.com/qhuang2010/zhongyimedic/pkg/rules"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

const (
	rootSource       = "元气脉法核心课程"
	evidenceMaxim    = "《伤寒论》第16条：观其脉证，知犯何逆，随证治之。"
	deferredPattern  = "证据不足，暂缓脉象模式分类"
	deferredName     = "证型待定"
	genericPrinciple = "扶正祛邪"
	unmappedSymptom  = "待进一步辨析"
)

func (b *builder) collectEvidence() types.ReasoningStep {
	b.grid = pulse.Parse(b.reading)
	b.findings = pulse.KeyFindings(b.grid)
	b.qualities = pulse.Qualities(b.grid)
	b.state = pulse.Assess(b.grid)
	b.chain.Grid = b.grid
	b.chain.VitalState = b.state
	b.chain.KeyFindings = append([]string{}, b.findings...)

	var ev []types.Evidence
	for _, f := range b.findings {
		ev = append(ev, b.findingEvidence(f))
	}
	if b.grid.Overall != "" {
		ev = append(ev, types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  "脉象总评：" + b.grid.Overall,
			Significance: "医者对整体脉势的综合判断",
			Confidence:   b.conf.OverallPulse,
		})
	}
	for _, q := range pulse.Interpret(b.grid.Features) {
		ev = append(ev, types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  "脉象特征：" + q.String(),
			Significance: q.Significance(),
			Confidence:   b.conf.PulseFeature,
		})
	}
	if b.grid.Suggestion != "" {
		ev = append(ev, types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  "诊脉建议：" + b.grid.Suggestion,
			Significance: "医者据脉所提调治方向，供辨证参考",
			Confidence:   b.conf.OverallPulse,
		})
	}
	for _, s := range b.symptoms {
		sig, ok := b.kb.SymptomSignificance(s)
		if !ok {
			sig = unmappedSymptom
		}
		ev = append(ev, types.Evidence{
			Method:       types.MethodInquiry,
			Observation:  s,
			Significance: sig,
			Confidence:   b.conf.Symptom,
		})
	}
	b.chain.Evidence = append(b.chain.Evidence, ev...)

	var observations, meanings []string
	palpation, inquiry := 0, 0
	for _, e := range ev {
		observations = append(observations, e.Observation)
		meanings = append(meanings, e.Observation+"→"+e.Significance)
		if e.Method == types.MethodPalpation {
			palpation++
		} else {
			inquiry++
		}
	}

	return types.ReasoningStep{
		ReasoningType: types.ReasoningInductive,
		Premise:       "主诉：" + b.chain.ChiefComplaint + "；四诊所得：" + joinOr(observations, "；", "未采集到有效四诊信息"),
		Inference: fmt.Sprintf("切诊所得%d项，问诊所得%d项。%s", palpation, inquiry,
			joinOr(meanings, "；", "无可归纳之依据")),
		Conclusion:         fmt.Sprintf("四诊信息收集完成，共%d条诊断依据", len(ev)),
		ClassicalReference: evidenceMaxim,
		Confidence:         b.conf.EvidenceSynthesis,
	}
}

func (b *builder) findingEvidence(f string) types.Evidence {
	switch {
	case strings.HasSuffix(f, pulse.FindingRootless):
		return types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  f,
			Significance: "沉取候元气根本，无根示元气亏虚",
			Confidence:   b.conf.KeyFinding,
			Source:       rootSource,
		}
	case f == pulse.FindingRootlessYang:
		return types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  f,
			Significance: "浮取亢盛而沉取空虚，阴不敛阳，虚阳外越",
			Confidence:   b.conf.KeyFinding,
			Source:       rootSource,
		}
	default:
		var sig []string
		for _, q := range pulse.Interpret(trimLevel(f)) {
			sig = append(sig, q.Significance())
		}
		return types.Evidence{
			Method:       types.MethodPalpation,
			Observation:  f,
			Significance: joinOr(sig, "；", "脉象特征"),
			Confidence:   b.conf.PulseFeature,
		}
	}
}

func trimLevel(f string) string {
	for _, l := range []string{pulse.LevelFu, pulse.LevelZhong, pulse.LevelChen} {
		if rest, ok := strings.CutPrefix(f, l); ok {
			return rest
		}
	}
	return f
}

func (b *builder) recognisePatterns() types.ReasoningStep {
	b.patterns = b.kb.MatchPatterns(b.findings, b.grid.Overall)

	premise := "脉诊关键发现：" + joinOr(b.findings, "、", "无显著发现")
	if b.grid.Overall != "" {
		premise += "；脉象总评：" + b.grid.Overall
	}
	stateNote := fmt.Sprintf("沉取候元气根本，据两尺沉取判断元气状态为%s", b.state)

	if len(b.patterns) == 0 {
		return types.ReasoningStep{
			ReasoningType: types.ReasoningInferred,
			Premise:       premise,
			Inference:     "关键发现未能对应已知脉象模式。" + stateNote,
			Conclusion:    fmt.Sprintf("%s；元气状态：%s", deferredPattern, b.state),
			Confidence:    b.conf.Deferred,
		}
	}

	var names, details []string
	for _, m := range b.patterns {
		names = append(names, m.Pattern.Name)
		details = append(details, fmt.Sprintf("符合「%s」特征（匹配度%.2f：%s）",
			m.Pattern.Name, m.Score, strings.Join(m.Features, "、")))
	}
	top := b.patterns[0].Pattern
	var ref string
	if top.Source != "" {
		ref = top.Source + "：" + top.Name
		if top.Overall != "" {
			ref += "，" + top.Overall
		}
	}
	inference := strings.Join(details, "；") + "。" + stateNote
	if top.Pathomechanism != "" {
		inference += "。" + top.Name + "病机：" + top.Pathomechanism
	}
	return types.ReasoningStep{
		ReasoningType:      types.ReasoningDeductive,
		Premise:            premise,
		Inference:          inference,
		Conclusion:         fmt.Sprintf("脉象模式：%s；元气状态：%s", strings.Join(names, "、"), b.state),
		ClassicalReference: ref,
		Confidence:         b.conf.PatternMatched,
	}
}

func (b *builder) differentiate() types.ReasoningStep {
	names := make([]string, 0, len(b.patterns))
	for _, m := range b.patterns {
		names = append(names, m.Pattern.Name)
	}
	facts := rules.Facts{Patterns: names, Symptoms: b.symptoms}
	b.rule, b.trigger, b.ruled = rules.Governing(b.kb.Rules(), facts)
	b.categories = b.kb.IdentifyCategories(b.symptoms, pulse.Tokens(b.qualities))

	var meridian []string
	for _, c := range b.categories {
		meridian = append(meridian, fmt.Sprintf("%s（%.2f）", c.Category.Type, c.Score))
	}
	meridianNote := "六经辨证参考：" + joinOr(meridian, "、", "无明确归经")

	sd := types.SyndromeDifferentiation{
		VitalState:      b.state,
		EvidenceSummary: b.evidenceSummary(),
		KeySigns:        append([]string{}, b.findings...),
	}

	if !b.ruled {
		sd.Primary = types.SyndromeUndetermined
		if len(b.categories) > 0 {
			sd.Primary = b.categories[0].Category.Type
		}
		sd.Secondary = b.secondary(sd.Primary)
		sd.Syndrome = deferredName
		sd.KeySymptoms = append([]string{}, b.symptoms...)
		b.chain.Syndrome = sd
		return types.ReasoningStep{
			ReasoningType: types.ReasoningInferred,
			Premise:       fmt.Sprintf("脉象模式：%s；症状：%s", joinOr(names, "、", "未识别"), joinOr(b.symptoms, "、", "未述")),
			Inference:     "脉证未能满足任何诊断规则的条件。" + meridianNote,
			Conclusion:    "证据不足，" + deferredName + "，需四诊合参进一步辨析",
			Confidence:    b.conf.Deferred,
		}
	}

	r := b.rule
	sd.Primary = r.Classification
	sd.Secondary = b.secondary(r.Classification)
	sd.Syndrome = r.Syndrome
	sd.Pathomechanism = r.Pathomechanism
	sd.KeySymptoms = b.trigger.Symptoms
	sd.RuleID = r.ID

	var ref string
	if c, ok := b.kb.Clause(r.Clause); ok {
		ref = c.Citation()
		sd.ClassicalClause = c.Text
		sd.ClassicalSource = c.Source
	}
	b.chain.Syndrome = sd

	var micro []string
	for _, s := range r.Steps {
		micro = append(micro, fmt.Sprintf("（%d）%s：%s，故%s", s.Step, s.Premise, s.Inference, s.Conclusion))
	}
	inference := fmt.Sprintf("依「%s」：%s。%s", r.Name, joinOr(micro, "；", r.Pathomechanism), meridianNote)

	return types.ReasoningStep{
		ReasoningType: types.ReasoningDeductive,
		Premise: fmt.Sprintf("脉象模式：%s；症状：%s", strings.Join(b.trigger.Patterns, "、"),
			strings.Join(b.trigger.Symptoms, "、")),
		Inference:          inference,
		Conclusion:         fmt.Sprintf("辨证：%s（%s）；病机：%s", r.Syndrome, r.Classification, r.Pathomechanism),
		ClassicalReference: ref,
		Confidence:         r.Confidence,
	}
}

func (b *builder) secondary(primary types.SyndromeType) []types.SyndromeType {
	var out []types.SyndromeType
	for _, c := range b.categories {
		if c.Category.Type != primary {
			out = append(out, c.Category.Type)
		}
	}
	return out
}

func (b *builder) evidenceSummary() string {
	parts := []string{"元气状态：" + string(b.state)}
	if len(b.findings) > 0 {
		parts = append(parts, "脉诊："+strings.Join(b.findings, "、"))
	}
	if len(b.symptoms) > 0 {
		parts = append(parts, "症状："+strings.Join(b.symptoms, "、"))
	}
	return strings.Join(parts, "；")
}

func (b *builder) choosePrinciple() types.ReasoningStep {
	syndrome := ""
	if b.ruled {
		syndrome = b.rule.Syndrome
	}
	b.protocol, b.hasProtocol = b.kb.ProtocolFor(b.state, syndrome)

	premise := fmt.Sprintf("证型：%s；元气状态：%s", b.chain.Syndrome.Syndrome, b.state)
	var tp types.TreatmentPrinciple
	var s types.ReasoningStep

	switch {
	case b.hasProtocol:
		p := b.protocol
		tp = types.TreatmentPrinciple{
			Principle:         p.Principles[0],
			Methods:           p.Methods,
			Contraindications: p.Contraindications,
			ProtocolID:        p.ID,
			Basis:             fmt.Sprintf("%s（%s）", p.Name, p.ID),
		}
		s = types.ReasoningStep{
			ReasoningType: types.ReasoningDeductive,
			Inference: fmt.Sprintf("证候与「%s」适应证相合，治则%s，治法%s", p.Name,
				strings.Join(p.Principles, "、"), joinOr(p.Methods, "、", "随证而定")),
			Confidence: b.conf.Protocol,
		}
	case b.ruled:
		tp = types.TreatmentPrinciple{
			Principle: b.rule.Principle,
			Basis:     fmt.Sprintf("%s（%s）", b.rule.Name, b.rule.ID),
		}
		s = types.ReasoningStep{
			ReasoningType: types.ReasoningDeductive,
			Inference:     fmt.Sprintf("未见对应治疗方案，依「%s」所立治则", b.rule.Name),
			Confidence:    b.conf.RulePrinciple,
		}
	default:
		tp = types.TreatmentPrinciple{
			Principle: genericPrinciple,
			Basis:     "证型未定，先以扶正祛邪为通则",
		}
		s = types.ReasoningStep{
			ReasoningType: types.ReasoningInferred,
			Inference:     "辨证依据不足，治病求本，先扶正气兼祛邪气",
			Confidence:    b.conf.GenericPrinciple,
		}
	}
	b.chain.Treatment = tp
	s.Premise = premise
	s.Conclusion = "治则：" + tp.Principle
	if len(tp.Methods) > 0 {
		s.Conclusion += "；治法：" + strings.Join(tp.Methods, "、")
	}
	if len(tp.Contraindications) > 0 {
		s.Conclusion += "；禁忌：" + strings.Join(tp.Contraindications, "、")
	}
	return s
}

func (b *builder) projectOutcome() types.ReasoningStep {
	var classification types.SyndromeType
	if b.ruled {
		classification = b.rule.Classification
	}
	text, ok := b.kb.Outcome(classification, b.state)
	b.chain.ExpectedOutcome = text

	var follow []string
	if b.hasProtocol {
		for _, ind := range b.protocol.OutcomeIndicators {
			follow = append(follow, "复诊观察："+ind)
		}
	}
	follow = append(follow, "服药一周后复诊，复查浮中沉三层脉象，随证加减")
	b.chain.FollowUp = follow

	conf := b.conf.Outcome
	rt := types.ReasoningDeductive
	inference := "依证型与元气状态推断预后"
	if !ok {
		conf = b.conf.Deferred
		rt = types.ReasoningInferred
		inference = "无对应预后记载，当辨证施治"
	}
	return types.ReasoningStep{
		ReasoningType: rt,
		Premise: fmt.Sprintf("证型：%s；治则：%s；方药：%s", b.chain.Syndrome.Syndrome,
			b.chain.Treatment.Principle, b.chain.Prescription.FormulaName),
		Inference:  inference,
		Conclusion: "预期疗效：" + text,
		Confidence: conf,
	}
}
