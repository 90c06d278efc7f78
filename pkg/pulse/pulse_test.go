package pulse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		text string
		want []Quality
	}{
		{"", nil},
		{"平和", nil},
		{"浮紧", []Quality{Floating, Tight}},
		{"沉细无力", []Quality{Sinking, Thin, Absent}},
		{"沉取有力", []Quality{Forceful, Sinking}},
		{"重按几无", []Quality{NearlyAbsent, Absent}},
		{"脉微欲绝", []Quality{Expiring, Faint}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Interpret(tt.text)); diff != "" {
				t.Errorf("Interpret(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestQualityMetadata(t *testing.T) {
	assert.Equal(t, "紧", Tight.String())
	assert.Equal(t, "寒邪束表或痛证", Tight.Significance())
	assert.True(t, Empty.Emptiness())
	assert.False(t, Floating.Emptiness())
	assert.Equal(t, "", Quality(0).String())
	assert.Equal(t, []string{"浮", "紧"}, Tokens([]Quality{Floating, Tight}))
}

func TestRootless(t *testing.T) {
	assert.False(t, Rootless(types.Position{}))
	assert.False(t, Rootless(types.Position{Fu: "空", Chen: "沉实"}))
	for _, chen := range []string{"空", "虚", "弱", "无", "几无", "欲绝"} {
		assert.True(t, Rootless(types.Position{Chen: chen}), chen)
	}
}

func TestAssess(t *testing.T) {
	empty := types.Position{Chen: "空"}
	firm := types.Position{Chen: "沉实"}

	assert.Equal(t, types.VitalAbundant, Assess(types.PulseGrid{}))
	assert.Equal(t, types.VitalAbundant, Assess(types.PulseGrid{LeftChi: firm, RightChi: firm, LeftCun: empty}))
	assert.Equal(t, types.VitalDeficient, Assess(types.PulseGrid{LeftChi: empty, RightChi: firm}))
	assert.Equal(t, types.VitalDeficient, Assess(types.PulseGrid{LeftChi: firm, RightChi: empty}))
	assert.Equal(t, types.VitalSeverelyDeficient, Assess(types.PulseGrid{LeftChi: empty, RightChi: empty}))
}

func TestAssess_Monotone(t *testing.T) {
	texts := []string{"", "沉实", "空", "弱"}
	for _, l := range texts {
		for _, r := range texts {
			g := types.PulseGrid{LeftChi: types.Position{Chen: l}, RightChi: types.Position{Chen: r}}
			worse := g
			worse.LeftChi.Chen = "空"
			assert.GreaterOrEqual(t, Severity(Assess(worse)), Severity(Assess(g)), "%q/%q", l, r)
		}
	}
	assert.Equal(t, -1, Severity(types.VitalFloating))
}

func TestKeyFindings(t *testing.T) {
	all := func(fu, chen string) types.Position { return types.Position{Fu: fu, Chen: chen} }

	tests := []struct {
		name string
		grid types.PulseGrid
		want []string
	}{
		{
			name: "empty grid",
			grid: types.PulseGrid{},
			want: nil,
		},
		{
			name: "shared superficial tightness",
			grid: types.PulseGrid{
				LeftCun: all("浮紧", "沉"), LeftGuan: all("浮紧", "沉"), LeftChi: all("浮紧", "沉"),
				RightCun: all("浮紧", "沉"), RightGuan: all("浮紧", "沉"), RightChi: all("浮紧", "沉"),
			},
			want: []string{"浮取紧"},
		},
		{
			name: "one rootless chi",
			grid: types.PulseGrid{LeftChi: all("浮", "沉"), RightChi: all("浮", "空")},
			want: []string{"右尺沉取无根"},
		},
		{
			name: "rootless yang",
			grid: types.PulseGrid{
				LeftCun: all("浮大有力", ""), LeftChi: all("浮大", "空"), RightChi: all("浮洪", "无"),
			},
			want: []string{"左尺沉取无根", "右尺沉取无根", "两尺沉取无根", FindingRootlessYang},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, KeyFindings(tt.grid)); diff != "" {
				t.Errorf("KeyFindings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQualities(t *testing.T) {
	g := types.PulseGrid{
		Features: "弦",
		LeftCun:  types.Position{Fu: "浮", Chen: "弦"},
		Overall:  "滑数",
	}
	assert.Equal(t, []Quality{Wiry, Floating, Rapid, Slippery}, Qualities(g))
}

func TestParse_Nested(t *testing.T) {
	raw := map[string]any{
		"positions": map[string]any{
			"1": map[string]any{"levels": map[string]any{"fu": "浮", "zhong": "缓", "chen": "沉"}, "value": "平"},
			"6": map[string]any{"levels": map[string]any{"chen": "空"}},
			"7": map[string]any{"value": "浮中可取，两尺空"},
			"8": "虚",
			"9": map[string]any{"value": 3},
		},
	}
	want := types.PulseGrid{
		LeftCun:    types.Position{Fu: "浮", Zhong: "缓", Chen: "沉", Value: "平"},
		RightChi:   types.Position{Chen: "空"},
		Overall:    "浮中可取，两尺空",
		Features:   "虚",
		Suggestion: "3",
	}
	if diff := cmp.Diff(want, Parse(raw)); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	// Without the wrapper the keys are read from the top level.
	unwrapped := raw["positions"].(map[string]any)
	assert.Equal(t, want, Parse(unwrapped))
}

func TestParse_NonStringKeys(t *testing.T) {
	// Shape produced by YAML for unquoted position numbers.
	raw := map[string]any{
		"positions": map[any]any{
			3: map[any]any{"levels": map[any]any{"chen": "空"}},
			6: map[string]any{"levels": map[any]any{"chen": "空"}},
			7: "两尺沉取空",
		},
	}
	g := Parse(raw)
	assert.Equal(t, "空", g.LeftChi.Chen)
	assert.Equal(t, "空", g.RightChi.Chen)
	assert.Equal(t, "两尺沉取空", g.Overall)
	assert.Equal(t, types.VitalSeverelyDeficient, Assess(g))

	// The caller's map is left untouched.
	_, ok := raw["positions"].(map[any]any)
	assert.True(t, ok)
}

func TestParse_Flat(t *testing.T) {
	raw := map[string]any{
		"left-chi-chen":       "空",
		"chi-chen":            "沉",
		"cun-fu":              "浮",
		"right-cun-fu":        "浮紧",
		"left-guan":           "弦",
		"overall_description": "两尺偏弱",
		"features":            []string{"ignored"},
	}
	g := Parse(raw)
	assert.Equal(t, "空", g.LeftChi.Chen)
	assert.Equal(t, "沉", g.RightChi.Chen)
	assert.Equal(t, "浮", g.LeftCun.Fu)
	assert.Equal(t, "浮紧", g.RightCun.Fu)
	assert.Equal(t, "弦", g.LeftGuan.Value)
	assert.Equal(t, "两尺偏弱", g.Overall)
	assert.Empty(t, g.Features)
}

func TestParse_Malformed(t *testing.T) {
	assert.Equal(t, types.PulseGrid{}, Parse(nil))
	assert.Equal(t, types.PulseGrid{}, Parse(map[string]any{"1": "not a position", "2": 7}))
}
