package pulse

import "github.com/qhuang2010/zhongyimedic/pkg/types"

// Depth labels used in findings.
const (
	LevelFu    = "浮取"
	LevelZhong = "中取"
	LevelChen  = "沉取"
)

// Finding suffixes and composite findings.
const (
	FindingRootless     = "沉取无根"
	FindingBothChi      = "两尺沉取无根"
	FindingRootlessYang = "浮盛沉空"
)

// Rootless reports whether the deep level of p contains an emptiness indicator.
func Rootless(p types.Position) bool {
	return EmptinessIndicated(p.Chen)
}

// Assess classifies the vital state from the two chi (root) positions.
// The result is monotone: more rootless chi positions never yield a less
// severe state.
func Assess(g types.PulseGrid) types.VitalState {
	left, right := Rootless(g.LeftChi), Rootless(g.RightChi)
	switch {
	case left && right:
		return types.VitalSeverelyDeficient
	case left || right:
		return types.VitalDeficient
	default:
		return types.VitalAbundant
	}
}

// Severity orders the states Assess can return; other states rank -1.
func Severity(v types.VitalState) int {
	switch v {
	case types.VitalAbundant:
		return 0
	case types.VitalDeficient:
		return 1
	case types.VitalSeverelyDeficient:
		return 2
	default:
		return -1
	}
}

// KeyFindings derives the salient palpation findings, in a fixed order:
// rootless positions, the bilateral chi finding, qualities shared by every
// recorded text of a depth, then the rootless-yang contrast.
func KeyFindings(g types.PulseGrid) []string {
	var findings []string
	for _, p := range g.Positions() {
		if Rootless(p.Position) {
			findings = append(findings, p.Label+FindingRootless)
		}
	}
	chiRootless := Rootless(g.LeftChi) || Rootless(g.RightChi)
	if Rootless(g.LeftChi) && Rootless(g.RightChi) {
		findings = append(findings, FindingBothChi)
	}

	fu := levelTexts(g, func(p types.Position) string { return p.Fu })
	zhong := levelTexts(g, func(p types.Position) string { return p.Zhong })
	chen := levelTexts(g, func(p types.Position) string { return p.Chen })

	for _, q := range shared(fu) {
		if q != Floating {
			findings = append(findings, LevelFu+q.String())
		}
	}
	for _, q := range shared(zhong) {
		findings = append(findings, LevelZhong+q.String())
	}
	for _, q := range shared(chen) {
		if q != Sinking {
			findings = append(findings, LevelChen+q.String())
		}
	}

	if chiRootless && superficialStrong(fu) {
		findings = append(findings, FindingRootlessYang)
	}
	return findings
}

// Qualities collects every quality mentioned anywhere in the reading:
// the feature string first, then the positions in grid order, then the
// overall description. Each quality appears once.
func Qualities(g types.PulseGrid) []Quality {
	var out []Quality
	add := func(s string) {
		for _, q := range Interpret(s) {
			if !Has(out, q) {
				out = append(out, q)
			}
		}
	}
	add(g.Features)
	for _, p := range g.Positions() {
		add(p.Fu)
		add(p.Zhong)
		add(p.Chen)
		add(p.Value)
	}
	add(g.Overall)
	return out
}

func levelTexts(g types.PulseGrid, level func(types.Position) string) []string {
	var out []string
	for _, p := range g.Positions() {
		if s := level(p.Position); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// shared returns the qualities present in every text, in vocabulary order.
func shared(texts []string) []Quality {
	if len(texts) == 0 {
		return nil
	}
	common := Interpret(texts[0])
	for _, s := range texts[1:] {
		qs := Interpret(s)
		kept := common[:0:0]
		for _, q := range common {
			if Has(qs, q) {
				kept = append(kept, q)
			}
		}
		common = kept
	}
	return common
}

func superficialStrong(fu []string) bool {
	if len(fu) == 0 {
		return false
	}
	for _, s := range fu {
		qs := Interpret(s)
		if !(Has(qs, Big) || Has(qs, Surging) || Has(qs, Forceful) || Has(qs, Excess) || Has(qs, Tight) || Has(qs, Wiry)) {
			return false
		}
	}
	return true
}
