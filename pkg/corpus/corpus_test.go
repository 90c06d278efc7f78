package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

func defaultKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb, err := Default()
	require.NoError(t, err)
	return kb
}

func TestDefault(t *testing.T) {
	kb := defaultKB(t)
	s := kb.Stats()

	assert.Equal(t, 10, s.Clauses)
	assert.Equal(t, 7, s.Patterns)
	assert.Equal(t, 4, s.Formulas)
	assert.Equal(t, 23, s.Compatibility)
	assert.Equal(t, 6, s.Rules)
	assert.Equal(t, 6, s.Protocols)
	assert.Equal(t, 6, s.Categories)
	assert.Equal(t, 16, s.Symptoms)
	assert.Equal(t, []string{"附子", "制附子"}, kb.AnchorHerbs())
	assert.Contains(t, EmbeddedFiles(), "rules")
}

func TestLookups(t *testing.T) {
	kb := defaultKB(t)

	c, ok := kb.Clause("TAIYANG_035")
	require.True(t, ok)
	assert.Equal(t, 35, c.Number)
	assert.Contains(t, c.Citation(), "《伤寒论》第35条：")

	f, ok := kb.Formula("麻黄汤")
	require.True(t, ok)
	assert.Equal(t, []string{"麻黄", "桂枝", "杏仁", "甘草"}, f.HerbNames())

	p, ok := kb.Pattern("YQ_PULSE_002")
	require.True(t, ok)
	assert.Equal(t, types.VitalFloating, p.VitalState)
	byName, ok := kb.PatternByName("虚阳外越脉")
	require.True(t, ok)
	assert.Equal(t, p, byName)

	sig, ok := kb.SymptomSignificance("无汗")
	assert.True(t, ok)
	assert.Equal(t, "表实、寒邪束表", sig)
}

func TestLookups_Missing(t *testing.T) {
	kb := defaultKB(t)

	_, ok := kb.Clause("NOPE")
	assert.False(t, ok)
	_, ok = kb.Formula("不存在汤")
	assert.False(t, ok)
	_, ok = kb.Pattern("NOPE")
	assert.False(t, ok)
	_, ok = kb.PatternByName("无此脉")
	assert.False(t, ok)
	_, ok = kb.SymptomSignificance("无此症")
	assert.False(t, ok)
	_, ok = kb.ProtocolFor("", "")
	assert.False(t, ok)
	assert.Empty(t, kb.ClausesForSyndrome(""))
}

func TestClausesForSyndrome(t *testing.T) {
	kb := defaultKB(t)

	ids := func(cs []types.Clause) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}
	assert.Equal(t,
		[]string{"TAIYANG_001", "TAIYANG_002", "TAIYANG_003", "TAIYANG_012", "TAIYANG_035"},
		ids(kb.ClausesForSyndrome("太阳")))
	assert.Equal(t, []string{"TAIYANG_003", "TAIYANG_035"}, ids(kb.ClausesForSyndrome("太阳伤寒证")))
	assert.Equal(t, []string{"SHAOYIN_281", "SHAOYIN_323"}, ids(kb.ClausesForSyndrome("少阴")))
	assert.Empty(t, kb.ClausesForSyndrome("阳明"))
}

func TestMatchFormulas(t *testing.T) {
	kb := defaultKB(t)

	symptoms := []string{"恶寒", "无汗", "身痛"}
	got := kb.MatchFormulas(symptoms, nil)
	require.NotEmpty(t, got)
	assert.Equal(t, "麻黄汤", got[0].Formula.Name)

	// Pulse tokens leave the ranking unchanged.
	assert.Equal(t, got, kb.MatchFormulas(symptoms, []string{"浮", "紧"}))
	assert.Empty(t, kb.MatchFormulas(nil, []string{"浮"}))
}

func TestProtocolFor(t *testing.T) {
	kb := defaultKB(t)

	tests := []struct {
		name     string
		state    types.VitalState
		syndrome string
		want     string
	}{
		{"exact syndrome", types.VitalAbundant, "太阳伤寒证", "SH_TREAT_001"},
		{"state listed by earlier protocol", types.VitalSeverelyDeficient, "肾阳虚证（元气虚损型）", "YQ_TREAT_002"},
		{"state only", types.VitalDeficient, "证型待定", "YQ_TREAT_001"},
		{"earlier protocol by syndrome", types.VitalSeverelyDeficient, "肾阳虚证", "YQ_TREAT_001"},
		{"undetermined syndrome", types.VitalSeverelyDeficient, "证型待定", "YQ_TREAT_002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := kb.ProtocolFor(tt.state, tt.syndrome)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.ID)
		})
	}

	// Syndromes match by membership, not containment.
	_, ok := kb.ProtocolFor(types.VitalAbundant, "太阳伤寒证（表实）")
	assert.False(t, ok)
}

func TestMedicationAndOutcome(t *testing.T) {
	kb := defaultKB(t)

	plan, ok := kb.Medication(types.VitalSeverelyDeficient)
	assert.True(t, ok)
	assert.Equal(t, "麦冬", plan.Herbs[0].Herb)

	plan, ok = kb.Medication(types.VitalSinking)
	assert.False(t, ok)
	assert.Equal(t, "山药", plan.Herbs[0].Herb)

	text, ok := kb.Outcome(types.SyndromeTaiyang, types.VitalSeverelyDeficient)
	assert.True(t, ok)
	assert.Equal(t, "服药后当汗出热退，恶寒解除", text)

	text, ok = kb.Outcome("", types.VitalSeverelyDeficient)
	assert.True(t, ok)
	assert.Equal(t, "服药后四肢渐温，脉象有根，精神好转", text)

	text, ok = kb.Outcome(types.SyndromeUndetermined, types.VitalSinking)
	assert.False(t, ok)
	assert.Equal(t, "辨证施治，随证加减", text)
}

func TestCheckCompatibility(t *testing.T) {
	kb := defaultKB(t)

	r := kb.CheckCompatibility([]string{"甘遂", "甘草"})
	assert.Empty(t, r.Enhancements)
	assert.Empty(t, r.Warnings)
	require.Len(t, r.Prohibited, 1)
	assert.Equal(t, types.CompatProhibited, r.Prohibited[0].Category)
	assert.False(t, r.Safe())

	// Order of herbs is irrelevant.
	assert.Equal(t, r, kb.CheckCompatibility([]string{"甘草", "甘遂"}))

	r = kb.CheckCompatibility([]string{"附子", "干姜", "甘草", "人参", "莱菔子"})
	require.Len(t, r.Enhancements, 1)
	assert.Equal(t, []string{"附子", "干姜"}, r.Enhancements[0].Herbs)
	require.Len(t, r.Moderations, 1)
	assert.Equal(t, types.CompatNeutralization, r.Moderations[0].Category)
	assert.Equal(t, []string{"附子", "甘草"}, r.Moderations[0].Herbs)
	assert.Len(t, r.Warnings, 1)
	assert.Empty(t, r.Prohibited)
	assert.True(t, r.Safe())

	// Neutralization and assistance pairs are never reported as enhancements.
	r = kb.CheckCompatibility([]string{"附子", "甘草", "半夏", "生姜", "黄芪", "防风"})
	assert.Empty(t, r.Enhancements)
	require.Len(t, r.Moderations, 3)
	assert.Equal(t, types.CompatAssistance, r.Moderations[0].Category)
	assert.Equal(t, types.CompatNeutralization, r.Moderations[1].Category)
	assert.Equal(t, types.CompatNeutralization, r.Moderations[2].Category)

	r = kb.CheckCompatibility(nil)
	assert.NotNil(t, r.Enhancements)
	assert.NotNil(t, r.Moderations)
	assert.NotNil(t, r.Warnings)
	assert.NotNil(t, r.Prohibited)
}

const fixtureRules = `
rules:
  - id: R1
    name: 测试规则
    patterns: [测试脉]
    symptoms: [恶寒]
    syndrome: 测试证
    classification: 太阳病
    clause: C1
    confidence: 0.8
`

const fixtureKnowledge = `
clauses:
  - {id: C1, number: 1, source: 测试, text: 条文}
patterns:
  - {id: P1, name: 测试脉, key_features: [浮取紧]}
default_outcome: 随证
`

func TestLoad_Fixture(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":     {Data: []byte(fixtureKnowledge)},
		"b.yaml":     {Data: []byte(fixtureRules)},
		"notes.txt":  {Data: []byte("ignored")},
		"sub/c.yaml": {Data: []byte("rules: [{id: R1}]")},
	}
	kb, err := Load(fsys)
	require.NoError(t, err)

	assert.Equal(t, 1, kb.Stats().Rules)
	assert.Equal(t, "R1", kb.Rules()[0].ID)
	text, ok := kb.Outcome("", "")
	assert.False(t, ok)
	assert.Equal(t, "随证", text)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"dangling pattern", "rules: [{id: R1, patterns: [无此脉], classification: 太阳病}]"},
		{"dangling clause", "rules: [{id: R1, clause: NOPE, classification: 太阳病}]"},
		{"duplicate clause", "clauses: [{id: C1}, {id: C1}]"},
		{"unknown category", "compatibility: [{herbs: [甲, 乙], category: synergy}]"},
		{"single herb", "compatibility: [{herbs: [甲], category: prohibited}]"},
		{"confidence range", "rules: [{id: R1, classification: 太阳病, confidence: 1.5}]"},
		{"protocol without principle", "protocols: [{id: T1}]"},
		{"unknown state", "medication: [{state: 元气很好}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"x.yaml": {Data: []byte(tt.data)}})
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = Load(fstest.MapFS{"x.yaml": {Data: []byte("rules: {not: a list")}})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patterns.yaml"), []byte(fixtureKnowledge), 0o644))

	kb, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, kb.Stats().Patterns)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
