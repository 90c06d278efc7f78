package types

// Confidence holds the heuristic confidence attached to each kind of
// evidence and reasoning step. These are calibration knobs, not probabilities.
type Confidence struct {
	// KeyFinding is assigned to a rootless-position finding from palpation.
	KeyFinding float64 `yaml:"key_finding" json:"key_finding"`

	// OverallPulse is assigned to the practitioner's overall pulse description.
	OverallPulse float64 `yaml:"overall_pulse" json:"overall_pulse"`

	// PulseFeature is assigned to each pulse quality read from the feature string.
	PulseFeature float64 `yaml:"pulse_feature" json:"pulse_feature"`

	// Symptom is assigned to each reported symptom.
	Symptom float64 `yaml:"symptom" json:"symptom"`

	// EvidenceSynthesis is the confidence of the evidence collection step.
	EvidenceSynthesis float64 `yaml:"evidence_synthesis" json:"evidence_synthesis"`

	// PatternMatched is assigned when at least one pulse pattern matched.
	PatternMatched float64 `yaml:"pattern_matched" json:"pattern_matched"`

	// Deferred is the fallback for any step that found no supporting corpus entry.
	Deferred float64 `yaml:"deferred" json:"deferred"`

	// Protocol is assigned when a treatment protocol governs the principle.
	Protocol float64 `yaml:"protocol" json:"protocol"`

	// RulePrinciple is assigned when only the diagnostic rule supplies a principle.
	RulePrinciple float64 `yaml:"rule_principle" json:"rule_principle"`

	// GenericPrinciple is assigned to the hard-coded supportive principle.
	GenericPrinciple float64 `yaml:"generic_principle" json:"generic_principle"`

	// ProtocolFormula is assigned when the prescription comes from a protocol.
	ProtocolFormula float64 `yaml:"protocol_formula" json:"protocol_formula"`

	// DefaultFormula is assigned to the state-keyed default herb list.
	DefaultFormula float64 `yaml:"default_formula" json:"default_formula"`

	// Outcome is assigned when the expected outcome comes from a lookup table.
	Outcome float64 `yaml:"outcome" json:"outcome"`
}

// DefaultConfidence returns the stock confidence table.
func DefaultConfidence() Confidence {
	return Confidence{
		KeyFinding:        0.95,
		OverallPulse:      0.9,
		PulseFeature:      0.9,
		Symptom:           0.85,
		EvidenceSynthesis: 0.85,
		PatternMatched:    0.85,
		Deferred:          0.5,
		Protocol:          0.9,
		RulePrinciple:     0.85,
		GenericPrinciple:  0.7,
		ProtocolFormula:   0.9,
		DefaultFormula:    0.85,
		Outcome:           0.85,
	}
}

// Values lists every entry, in declaration order.
func (c Confidence) Values() []float64 {
	return []float64{
		c.KeyFinding, c.OverallPulse, c.PulseFeature, c.Symptom,
		c.EvidenceSynthesis, c.PatternMatched, c.Deferred, c.Protocol,
		c.RulePrinciple, c.GenericPrinciple, c.ProtocolFormula,
		c.DefaultFormula, c.Outcome,
	}
}

// Valid reports whether every entry lies in [0,1].
func (c Confidence) Valid() bool {
	for _, v := range c.Values() {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Herb roles within a formula (君臣佐使).
const (
	RoleSovereign = "君"
	RoleMinister  = "臣"
	RoleAssistant = "佐"
	RoleEnvoy     = "使"

	// RoleMinisterAssistant is the role given to herbs the anchor heuristic does not recognise.
	RoleMinisterAssistant = "臣佐"
)
