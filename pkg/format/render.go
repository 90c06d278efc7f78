package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qhuang2010/zhongyimedic/pkg/corpus"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// Output is a CLI output format.
type Output string

const (
	OutputJSON     Output = "json"
	OutputYAML     Output = "yaml"
	OutputTable    Output = "table"
	OutputMarkdown Output = "markdown"
)

// ErrUnknownOutput is returned by ParseOutput for unsupported formats.
var ErrUnknownOutput = errors.New("unknown output format")

// ParseOutput validates an output format name.
func ParseOutput(s string) (Output, error) {
	switch o := Output(strings.ToLower(s)); o {
	case OutputJSON, OutputYAML, OutputTable, OutputMarkdown:
		return o, nil
	case "md":
		return OutputMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: json, yaml, table, markdown)", ErrUnknownOutput, s)
	}
}

// Tabular reports whether o renders as a table, and in which Mode.
func (o Output) Tabular() (Mode, bool) {
	switch o {
	case OutputTable:
		return ASCII, true
	case OutputMarkdown:
		return Markdown, true
	default:
		return ASCII, false
	}
}

// Encode writes v as indented JSON or as YAML.
func Encode(w io.Writer, o Output, v any) error {
	switch o {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case OutputYAML:
		// Go through JSON so YAML keys follow the json tags, in field order.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		blockStyle(&doc)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q is not an encoding", ErrUnknownOutput, o)
	}
}

// blockStyle clears the flow and quoting styles a JSON document decodes with.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Chain renders a chain of thought as a summary, the reasoning steps and
// the prescription.
func Chain(c types.ChainOfThought, m Mode) string {
	var b strings.Builder

	summary := NewTable(m, "辨证论治 "+c.ID, col("项目"), Column{Name: "内容", Width: 60})
	summary.Add("主诉", c.ChiefComplaint)
	summary.Add("元气状态", c.VitalState)
	summary.Add("关键脉象", strings.Join(c.KeyFindings, "、"))
	summary.Add("证型", c.Syndrome.Syndrome)
	summary.Add("六经", c.Syndrome.Primary)
	summary.Add("治则", c.Treatment.Principle)
	summary.Add("方剂", c.Prescription.FormulaName)
	summary.Add("预期疗效", c.ExpectedOutcome)
	b.WriteString(summary.Render())
	b.WriteString("\n\n")

	steps := NewTable(m, "",
		Column{Name: "#", Right: true},
		col("类型"),
		Column{Name: "前提", Width: 30},
		Column{Name: "推理", Width: 40},
		Column{Name: "结论", Width: 30},
		Column{Name: "置信度", Right: true},
	)
	for _, s := range c.Steps {
		steps.Add(s.StepNumber, s.ReasoningType, s.Premise, s.Inference, s.Conclusion, fmt.Sprintf("%.2f", s.Confidence))
	}
	b.WriteString(steps.Render())
	b.WriteString("\n\n")

	rx := c.Prescription
	b.WriteString(Composition(rx.FormulaName, rx.Composition, m))
	if !rx.Compatibility.Safe() || len(rx.Compatibility.Warnings) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Compatibility(rx.Compatibility, m))
	}
	b.WriteString("\n")
	return b.String()
}

// Composition renders the herbs of a formula.
func Composition(name string, herbs []types.HerbComponent, m Mode) string {
	t := NewTable(m, name, col("药物"), col("剂量"), col("君臣佐使"), col("功用"), col("备注"))
	for _, h := range herbs {
		t.Add(h.Herb, h.Dosage, h.Role, h.Function, h.Note)
	}
	return t.Render()
}

// compatLabels names each compatibility category in table output.
var compatLabels = map[types.CompatibilityCategory]string{
	types.CompatEnhancement:     "增效",
	types.CompatAssistance:      "相使",
	types.CompatNeutralization:  "相制",
	types.CompatIncompatibility: "相恶",
	types.CompatProhibited:      "禁忌",
}

// Compatibility renders a compatibility report; an empty report renders a
// single explanatory row.
func Compatibility(r types.CompatibilityReport, m Mode) string {
	t := NewTable(m, "", col("类别"), col("药对"), col("说明"))
	n := 0
	for _, group := range [][]types.CompatibilityFinding{r.Enhancements, r.Moderations, r.Warnings, r.Prohibited} {
		for _, f := range group {
			t.Add(compatLabels[f.Category], strings.Join(f.Herbs, "+"), f.Effect)
			n++
		}
	}
	if n == 0 {
		t.Add("-", "-", "未见特殊配伍关系")
	}
	return t.Render()
}

// Patterns lists pulse patterns.
func Patterns(ps []types.PulsePattern, m Mode) string {
	t := NewTable(m, "", col("ID"), col("名称"), Column{Name: "关键特征", Width: 36}, col("元气状态"), col("出处"))
	for _, p := range ps {
		t.Add(p.ID, p.Name, strings.Join(p.KeyFeatures, "、"), p.VitalState, p.Source)
	}
	return t.Render()
}

// Rules lists diagnostic rules in evaluation order.
func Rules(rs []types.DiagnosticRule, m Mode) string {
	t := NewTable(m, "",
		col("ID"), col("名称"), col("脉象"),
		Column{Name: "症状", Width: 30},
		col("证型"),
		Column{Name: "置信度", Right: true},
	)
	for _, r := range rs {
		t.Add(r.ID, r.Name, strings.Join(r.Patterns, "、"), strings.Join(r.Symptoms, "、"),
			r.Syndrome, fmt.Sprintf("%.2f", r.Confidence))
	}
	return t.Render()
}

// Stats renders corpus entry counts.
func Stats(s corpus.Stats, m Mode) string {
	t := NewTable(m, "", col("目录"), Column{Name: "条目", Right: true})
	rows := []struct {
		name string
		n    int
	}{
		{"clauses", s.Clauses},
		{"patterns", s.Patterns},
		{"formulas", s.Formulas},
		{"compatibility", s.Compatibility},
		{"rules", s.Rules},
		{"protocols", s.Protocols},
		{"categories", s.Categories},
		{"symptoms", s.Symptoms},
	}
	total := 0
	for _, r := range rows {
		t.Add(r.name, r.n)
		total += r.n
	}
	t.Total("total", total)
	return t.Render()
}
