package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

const rootlessRequest = `
chief_complaint: 腰膝酸软半年
symptoms: [腰膝酸软, 畏寒肢冷]
reading:
  left-chi-chen: 空
  right-chi-chen: 空
`

func TestDiagnose_YAMLInputJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rootlessRequest), 0o644))

	out, err := execute(t, "diagnose", "-i", path, "-o", "json")
	require.NoError(t, err)

	var chain types.ChainOfThought
	require.NoError(t, json.Unmarshal([]byte(out), &chain))
	assert.Equal(t, types.VitalSeverelyDeficient, chain.VitalState)
	assert.Equal(t, "YQ_RULE_001", chain.Syndrome.RuleID)
	assert.Len(t, chain.Steps, 6)
}

func TestDiagnose_UnquotedPositionKeys(t *testing.T) {
	const request = `
chief_complaint: 腰膝酸软半年
symptoms: [畏寒肢冷]
reading:
  positions:
    3: {levels: {chen: 空}}
    6: {levels: {chen: 空}}
`
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(request), 0o644))

	out, err := execute(t, "diagnose", "-i", path, "-o", "json")
	require.NoError(t, err)

	var chain types.ChainOfThought
	require.NoError(t, json.Unmarshal([]byte(out), &chain))
	assert.Equal(t, types.VitalSeverelyDeficient, chain.VitalState)
	assert.Contains(t, chain.KeyFindings, "两尺沉取无根")
}

func TestDiagnose_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rootlessRequest), 0o644))

	out, err := execute(t, "diagnose", "-i", path, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "四逆汤")
	assert.Contains(t, out, "元气大虚")
}

func TestDiagnose_MissingComplaint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"symptoms": ["恶寒"]}`), 0o644))

	_, err := execute(t, "diagnose", "-i", path, "-o", "json")
	assert.ErrorContains(t, err, "chief complaint")
}

func TestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.json")
	reqs := []types.Request{
		{ChiefComplaint: "乏力"},
		{ChiefComplaint: "恶寒", Symptoms: []string{"恶寒"}},
	}
	data, err := json.Marshal(reqs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "batch", "-i", path, "--workers", "2", "-o", "json")
	require.NoError(t, err)

	var chains []types.ChainOfThought
	require.NoError(t, json.Unmarshal([]byte(out), &chains))
	require.Len(t, chains, 2)
	assert.Equal(t, "乏力", chains[0].ChiefComplaint)
	assert.Equal(t, "恶寒", chains[1].ChiefComplaint)
}

func TestCompat(t *testing.T) {
	out, err := execute(t, "compat", "甘草", "甘遂", "-o", "json")
	require.NoError(t, err)

	var report types.CompatibilityReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Prohibited, 1)
	assert.Empty(t, report.Enhancements)
}

func TestCorpus(t *testing.T) {
	out, err := execute(t, "corpus", "stats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "rules: 6")

	out, err = execute(t, "corpus", "rules", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "SH_RULE_001")

	_, err = execute(t, "corpus", "validate", t.TempDir())
	assert.Error(t, err)
}

func TestFormula(t *testing.T) {
	out, err := execute(t, "formula", "麻黄汤", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "杏仁")
	assert.Contains(t, out, "麻黄+桂枝")

	_, err = execute(t, "formula", "无名汤", "-o", "table")
	assert.Error(t, err)

	out, err = execute(t, "formula", "match", "恶寒", "无汗", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "麻黄汤")
}

func TestInvalidOutput(t *testing.T) {
	_, err := execute(t, "corpus", "stats", "-o", "xml")
	assert.Error(t, err)
}
