package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

func TestPatterns(t *testing.T) {
	patterns := []types.PulsePattern{
		{Name: "A", KeyFeatures: []string{"尺沉取无根", "沉取空", "重按欲绝"}},
		{Name: "B", KeyFeatures: []string{"浮取紧", "浮紧"}},
		{Name: "C"},
		{Name: "D", KeyFeatures: []string{"浮取紧", "弦"}},
	}

	got := Patterns(patterns, []string{"左尺沉取无根", "浮取紧"}, "脉浮紧")
	require.Len(t, got, 3)

	assert.Equal(t, "B", got[0].Pattern.Name)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, []string{"浮取紧", "浮紧"}, got[0].Features)

	assert.Equal(t, "D", got[1].Pattern.Name)
	assert.Equal(t, 0.5, got[1].Score)

	assert.Equal(t, "A", got[2].Pattern.Name)
	assert.InDelta(t, 1.0/3, got[2].Score, 1e-9)
	assert.Equal(t, []string{"尺沉取无根"}, got[2].Features)
}

func TestPatterns_NoEvidence(t *testing.T) {
	patterns := []types.PulsePattern{{Name: "A", KeyFeatures: []string{"浮紧"}}}
	assert.Empty(t, Patterns(patterns, nil, ""))
}

func TestPatterns_StableTies(t *testing.T) {
	patterns := []types.PulsePattern{
		{Name: "first", KeyFeatures: []string{"紧"}},
		{Name: "second", KeyFeatures: []string{"紧"}},
	}
	got := Patterns(patterns, []string{"浮取紧"}, "")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Pattern.Name)
	assert.Equal(t, "second", got[1].Pattern.Name)
}

func TestCategories(t *testing.T) {
	cats := []types.SyndromeCategory{
		{Type: types.SyndromeTaiyang, KeySymptoms: []string{"恶寒", "头痛"}, Pulse: []string{"浮"}},
		{Type: types.SyndromeShaoyang, KeySymptoms: []string{"口苦"}, Pulse: []string{"弦"}},
		{Type: types.SyndromeYangming, KeySymptoms: []string{"大热"}, Pulse: []string{"洪"}},
	}

	got := Categories(cats, []string{"恶寒", "口苦", "恶寒"}, []string{"浮", "弦"})
	require.Len(t, got, 2)

	// shaoyang: (2·1+1)/(2·1+1); taiyang: (2·1+1)/(2·2+1).
	assert.Equal(t, types.SyndromeShaoyang, got[0].Category.Type)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, types.SyndromeTaiyang, got[1].Category.Type)
	assert.InDelta(t, 0.6, got[1].Score, 1e-9)
	assert.Equal(t, []string{"恶寒"}, got[1].Symptoms)
	assert.Equal(t, []string{"浮"}, got[1].Pulse)
}

func TestFormulas(t *testing.T) {
	formulas := []types.Formula{
		{Name: "桂枝汤", Indication: types.Indication{Symptoms: []string{"发热", "汗出", "恶风"}}},
		{Name: "麻黄汤", Indication: types.Indication{Symptoms: []string{"恶寒", "无汗", "身痛", "喘"}}},
		{Name: "无症", Indication: types.Indication{}},
	}

	got := Formulas(formulas, []string{"发热", "恶寒"})
	require.Len(t, got, 1)
	assert.Equal(t, "桂枝汤", got[0].Formula.Name)
	assert.InDelta(t, 1.0/3, got[0].Score, 1e-9)

	// One of four is 0.25, under the floor.
	for _, m := range got {
		assert.GreaterOrEqual(t, m.Score, FormulaThreshold)
	}

	got = Formulas(formulas, []string{"恶寒", "无汗", "发热"})
	require.Len(t, got, 2)
	assert.Equal(t, "麻黄汤", got[0].Formula.Name)
	assert.Equal(t, 0.5, got[0].Score)
}
