package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

var catalog = []types.DiagnosticRule{
	{ID: "R1", Patterns: []string{"元气根虚脉"}, Symptoms: []string{"腰膝酸软", "畏寒肢冷"}},
	{ID: "R2", Patterns: []string{"太阳伤寒脉"}, Symptoms: []string{"恶寒", "无汗", "身痛"}},
	{ID: "R3", Patterns: []string{"元气根虚脉", "少阴微细脉"}, Symptoms: []string{"畏寒肢冷"}},
}

func TestCorpusRule_Match(t *testing.T) {
	r := CorpusRule{catalog[1]}
	assert.Equal(t, "R2", r.ID())

	assert.True(t, r.Match(Facts{Patterns: []string{"太阳伤寒脉"}, Symptoms: []string{"无汗"}}))
	// Both conditions are required.
	assert.False(t, r.Match(Facts{Patterns: []string{"太阳伤寒脉"}}))
	assert.False(t, r.Match(Facts{Symptoms: []string{"恶寒", "无汗"}}))
	// Symptoms match exactly.
	assert.False(t, r.Match(Facts{Patterns: []string{"太阳伤寒脉"}, Symptoms: []string{"微恶寒"}}))
}

func TestCorpusRule_Trigger(t *testing.T) {
	r := CorpusRule{catalog[1]}
	got := r.Trigger(Facts{
		Patterns: []string{"太阳伤寒脉", "少阳弦脉"},
		Symptoms: []string{"身痛", "口苦", "恶寒"},
	})
	assert.Equal(t, Trigger{Patterns: []string{"太阳伤寒脉"}, Symptoms: []string{"恶寒", "身痛"}}, got)
}

func TestApplicable(t *testing.T) {
	f := Facts{Patterns: []string{"元气根虚脉"}, Symptoms: []string{"畏寒肢冷"}}
	got := Applicable(catalog, f)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"R1", "R3"}, ids)
	assert.Empty(t, Applicable(catalog, Facts{}))
}

func TestGoverning(t *testing.T) {
	f := Facts{Patterns: []string{"少阴微细脉", "元气根虚脉"}, Symptoms: []string{"畏寒肢冷"}}

	r, trig, ok := Governing(catalog, f)
	assert.True(t, ok)
	assert.Equal(t, "R1", r.ID)
	assert.Equal(t, []string{"元气根虚脉"}, trig.Patterns)
	assert.Equal(t, []string{"畏寒肢冷"}, trig.Symptoms)

	_, _, ok = Governing(catalog, Facts{Patterns: []string{"少阳弦脉"}, Symptoms: []string{"口苦"}})
	assert.False(t, ok)
}
