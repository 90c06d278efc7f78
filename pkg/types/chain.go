package types

import "time"

// Request is the input to chain generation.
type Request struct {
	Reading        map[string]any `json:"reading,omitempty" yaml:"reading,omitempty"`
	Symptoms       []string       `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	ChiefComplaint string         `json:"chief_complaint" yaml:"chief_complaint"`
	PatientInfo    map[string]any `json:"patient_info,omitempty" yaml:"patient_info,omitempty"`
}

// Evidence is a single observation from one of the four examination methods.
type Evidence struct {
	Method       DiagnosticMethod `json:"method"`
	Observation  string           `json:"observation"`
	Significance string           `json:"significance"`
	Confidence   float64          `json:"confidence"`
	Source       string           `json:"source,omitempty"`
}

// ReasoningStep is one link in the chain of thought.
type ReasoningStep struct {
	StepNumber         int           `json:"step_number"`
	ReasoningType      ReasoningType `json:"reasoning_type"`
	Premise            string        `json:"premise"`
	Inference          string        `json:"inference"`
	Conclusion         string        `json:"conclusion"`
	ClassicalReference string        `json:"classical_reference,omitempty"`
	Confidence         float64       `json:"confidence"`
}

// SyndromeDifferentiation is the diagnostic conclusion.
type SyndromeDifferentiation struct {
	Primary         SyndromeType   `json:"primary_syndrome"`
	Secondary       []SyndromeType `json:"secondary_syndromes,omitempty"`
	VitalState      VitalState     `json:"vital_state"`
	Syndrome        string         `json:"syndrome"`
	Pathomechanism  string         `json:"pathomechanism,omitempty"`
	EvidenceSummary string         `json:"evidence_summary"`
	KeySymptoms     []string       `json:"key_symptoms,omitempty"`
	KeySigns        []string       `json:"key_signs,omitempty"`
	ClassicalClause string         `json:"classical_clause,omitempty"`
	ClassicalSource string         `json:"classical_source,omitempty"`
	RuleID          string         `json:"rule_id,omitempty"`
}

// TreatmentPrinciple is the chosen therapeutic direction.
type TreatmentPrinciple struct {
	Principle         string   `json:"principle"`
	Methods           []string `json:"methods,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
	ProtocolID        string   `json:"protocol_id,omitempty"`
	Basis             string   `json:"basis"`
}

// CompatibilityFinding is a compatibility rule that fired for a herb list.
type CompatibilityFinding struct {
	Herbs    []string              `json:"herbs"`
	Category CompatibilityCategory `json:"category"`
	Effect   string                `json:"effect"`
}

// CompatibilityReport partitions the fired rules.
type CompatibilityReport struct {
	Enhancements []CompatibilityFinding `json:"enhancements"`
	// Moderations holds assistance and neutralization pairs.
	Moderations []CompatibilityFinding `json:"moderations"`
	Warnings    []CompatibilityFinding `json:"warnings"`
	Prohibited  []CompatibilityFinding `json:"prohibited"`
}

// Safe reports whether no prohibited combination fired.
func (r CompatibilityReport) Safe() bool {
	return len(r.Prohibited) == 0
}

// Prescription is the selected formula with its rationale.
type Prescription struct {
	FormulaName           string              `json:"formula_name"`
	Source                string              `json:"source,omitempty"`
	Composition           []HerbComponent     `json:"composition"`
	FormulaAnalysis       string              `json:"formula_analysis"`
	CompatibilityAnalysis string              `json:"compatibility_analysis"`
	Compatibility         CompatibilityReport `json:"compatibility"`
	Modifications         []string            `json:"modifications,omitempty"`
}

// Position is the palpation text of one pulse position at its three depths.
type Position struct {
	Fu    string `json:"fu,omitempty"`
	Zhong string `json:"zhong,omitempty"`
	Chen  string `json:"chen,omitempty"`
	Value string `json:"value,omitempty"`
}

// Empty reports whether nothing was recorded at the position.
func (p Position) Empty() bool {
	return p.Fu == "" && p.Zhong == "" && p.Chen == "" && p.Value == ""
}

// PulseGrid is a parsed palpation reading.
type PulseGrid struct {
	LeftCun    Position `json:"left_cun"`
	LeftGuan   Position `json:"left_guan"`
	LeftChi    Position `json:"left_chi"`
	RightCun   Position `json:"right_cun"`
	RightGuan  Position `json:"right_guan"`
	RightChi   Position `json:"right_chi"`
	Overall    string   `json:"overall_description,omitempty"`
	Features   string   `json:"features,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// LocatedPosition is a grid position with its display label.
type LocatedPosition struct {
	Label string
	Position
}

// Positions returns the six positions in fixed order: left cun, guan, chi,
// then right cun, guan, chi.
func (g PulseGrid) Positions() []LocatedPosition {
	return []LocatedPosition{
		{"左寸", g.LeftCun},
		{"左关", g.LeftGuan},
		{"左尺", g.LeftChi},
		{"右寸", g.RightCun},
		{"右关", g.RightGuan},
		{"右尺", g.RightChi},
	}
}

// ChainOfThought is the auditable diagnostic argument for one consultation.
type ChainOfThought struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	Version        string         `json:"version"`
	ChiefComplaint string         `json:"chief_complaint"`
	PatientInfo    map[string]any `json:"patient_info,omitempty"`

	Evidence    []Evidence `json:"evidence"`
	Grid        PulseGrid  `json:"pulse_grid"`
	VitalState  VitalState `json:"vital_state"`
	KeyFindings []string   `json:"key_findings"`

	Steps []ReasoningStep `json:"reasoning_steps"`

	Syndrome        SyndromeDifferentiation `json:"syndrome_differentiation"`
	Treatment       TreatmentPrinciple      `json:"treatment_principle"`
	Prescription    Prescription            `json:"prescription"`
	ExpectedOutcome string                  `json:"expected_outcome"`
	FollowUp        []string                `json:"follow_up_plan,omitempty"`

	// Filled by the external review workflow.
	ExpertValidated   bool     `json:"expert_validated"`
	ValidationScore   *float64 `json:"validation_score,omitempty"`
	ValidatorComments string   `json:"validator_comments,omitempty"`
}
