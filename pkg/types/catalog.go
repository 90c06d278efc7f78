package types

import "fmt"

// Clause is a citable passage from a classical text or lecture.
type Clause struct {
	ID           string   `yaml:"id" json:"id"`
	Number       int      `yaml:"number,omitempty" json:"number,omitempty"`
	Source       string   `yaml:"source" json:"source"`
	Text         string   `yaml:"text" json:"text"`
	Translation  string   `yaml:"translation,omitempty" json:"translation,omitempty"`
	Syndrome     string   `yaml:"syndrome,omitempty" json:"syndrome,omitempty"`
	KeySymptoms  []string `yaml:"key_symptoms,omitempty" json:"key_symptoms,omitempty"`
	Formula      string   `yaml:"formula,omitempty" json:"formula,omitempty"`
	Significance string   `yaml:"significance,omitempty" json:"significance,omitempty"`
}

// Citation renders the clause the way it is quoted inside a reasoning step.
func (c Clause) Citation() string {
	if c.Number > 0 {
		return fmt.Sprintf("%s第%d条：%s", c.Source, c.Number, c.Text)
	}
	return fmt.Sprintf("%s：%s", c.Source, c.Text)
}

// Differentiation contrasts a pulse pattern with a look-alike.
type Differentiation struct {
	CompareWith   string `yaml:"compare_with" json:"compare_with"`
	KeyDifference string `yaml:"key_difference" json:"key_difference"`
}

// PulsePattern is a named configuration of palpation findings.
type PulsePattern struct {
	ID                 string            `yaml:"id" json:"id"`
	Name               string            `yaml:"name" json:"name"`
	Overall            string            `yaml:"overall,omitempty" json:"overall,omitempty"`
	KeyFeatures        []string          `yaml:"key_features" json:"key_features"`
	VitalState         VitalState        `yaml:"vital_state,omitempty" json:"vital_state,omitempty"`
	Pathomechanism     string            `yaml:"pathomechanism,omitempty" json:"pathomechanism,omitempty"`
	Organs             []string          `yaml:"organs,omitempty" json:"organs,omitempty"`
	Differentiation    []Differentiation `yaml:"differentiation,omitempty" json:"differentiation,omitempty"`
	Principle          string            `yaml:"principle,omitempty" json:"principle,omitempty"`
	Methods            []string          `yaml:"methods,omitempty" json:"methods,omitempty"`
	Caution            string            `yaml:"caution,omitempty" json:"caution,omitempty"`
	AssociatedSymptoms []string          `yaml:"associated_symptoms,omitempty" json:"associated_symptoms,omitempty"`
	Source             string            `yaml:"source,omitempty" json:"source,omitempty"`
}

// HerbComponent is one herb of a formula or prescription.
type HerbComponent struct {
	Herb     string `yaml:"herb" json:"herb"`
	Dosage   string `yaml:"dosage,omitempty" json:"dosage,omitempty"`
	Role     string `yaml:"role,omitempty" json:"role,omitempty"`
	Function string `yaml:"function,omitempty" json:"function,omitempty"`
	Note     string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Indication is what a formula treats.
type Indication struct {
	Syndrome       string   `yaml:"syndrome" json:"syndrome"`
	Symptoms       []string `yaml:"symptoms" json:"symptoms"`
	Pathomechanism string   `yaml:"pathomechanism,omitempty" json:"pathomechanism,omitempty"`
}

// Formula is a classical prescription.
type Formula struct {
	Name              string          `yaml:"name" json:"name"`
	Pinyin            string          `yaml:"pinyin,omitempty" json:"pinyin,omitempty"`
	English           string          `yaml:"english,omitempty" json:"english,omitempty"`
	Source            string          `yaml:"source,omitempty" json:"source,omitempty"`
	Composition       []HerbComponent `yaml:"composition" json:"composition"`
	Functions         []string        `yaml:"functions,omitempty" json:"functions,omitempty"`
	Indication        Indication      `yaml:"indication" json:"indication"`
	Contraindications []string        `yaml:"contraindications,omitempty" json:"contraindications,omitempty"`
	Clause            string          `yaml:"clause,omitempty" json:"clause,omitempty"`
}

// HerbNames returns the herb names of the composition in order.
func (f Formula) HerbNames() []string {
	names := make([]string, 0, len(f.Composition))
	for _, h := range f.Composition {
		names = append(names, h.Herb)
	}
	return names
}

// CompatibilityRule relates a set of herbs that must all be present.
type CompatibilityRule struct {
	Herbs    []string              `yaml:"herbs" json:"herbs"`
	Category CompatibilityCategory `yaml:"category" json:"category"`
	Effect   string                `yaml:"effect" json:"effect"`
}

// RuleStep is a micro-step of a diagnostic rule's internal argument.
type RuleStep struct {
	Step       int    `yaml:"step" json:"step"`
	Premise    string `yaml:"premise" json:"premise"`
	Inference  string `yaml:"inference" json:"inference"`
	Conclusion string `yaml:"conclusion" json:"conclusion"`
}

// DiagnosticRule concludes a syndrome from matched pulse patterns and symptoms.
type DiagnosticRule struct {
	ID             string       `yaml:"id" json:"id"`
	Name           string       `yaml:"name" json:"name"`
	Patterns       []string     `yaml:"patterns" json:"patterns"`
	Symptoms       []string     `yaml:"symptoms" json:"symptoms"`
	Steps          []RuleStep   `yaml:"steps,omitempty" json:"steps,omitempty"`
	Syndrome       string       `yaml:"syndrome" json:"syndrome"`
	Classification SyndromeType `yaml:"classification" json:"classification"`
	Pathomechanism string       `yaml:"pathomechanism" json:"pathomechanism"`
	Principle      string       `yaml:"principle" json:"principle"`
	Formulas       []string     `yaml:"formulas,omitempty" json:"formulas,omitempty"`
	Clause         string       `yaml:"clause,omitempty" json:"clause,omitempty"`
	Confidence     float64      `yaml:"confidence" json:"confidence"`
}

// ProtocolFormula is a candidate formula of a treatment protocol. An empty
// composition is resolved from the formula catalog by name.
type ProtocolFormula struct {
	Name        string          `yaml:"name" json:"name"`
	Composition []HerbComponent `yaml:"composition,omitempty" json:"composition,omitempty"`
	Indication  string          `yaml:"indication,omitempty" json:"indication,omitempty"`
}

// TreatmentProtocol is a treatment plan applicable to vital states or syndromes.
type TreatmentProtocol struct {
	ID                 string            `yaml:"id" json:"id"`
	Name               string            `yaml:"name" json:"name"`
	States             []VitalState      `yaml:"states,omitempty" json:"states,omitempty"`
	Syndromes          []string          `yaml:"syndromes,omitempty" json:"syndromes,omitempty"`
	Principles         []string          `yaml:"principles" json:"principles"`
	Methods            []string          `yaml:"methods,omitempty" json:"methods,omitempty"`
	Formulas           []ProtocolFormula `yaml:"formulas,omitempty" json:"formulas,omitempty"`
	MedicationFeatures []string          `yaml:"medication_features,omitempty" json:"medication_features,omitempty"`
	Contraindications  []string          `yaml:"contraindications,omitempty" json:"contraindications,omitempty"`
	OutcomeIndicators  []string          `yaml:"outcome_indicators,omitempty" json:"outcome_indicators,omitempty"`
}

// Subtype is a named variant inside a syndrome category.
type Subtype struct {
	Name     string   `yaml:"name" json:"name"`
	Symptoms []string `yaml:"symptoms" json:"symptoms"`
	Formula  string   `yaml:"formula,omitempty" json:"formula,omitempty"`
}

// SyndromeCategory is a six-meridian category with its expected presentation.
type SyndromeCategory struct {
	Type        SyndromeType `yaml:"type" json:"type"`
	Nature      string       `yaml:"nature" json:"nature"`
	Location    string       `yaml:"location,omitempty" json:"location,omitempty"`
	Pulse       []string     `yaml:"pulse" json:"pulse"`
	KeySymptoms []string     `yaml:"key_symptoms" json:"key_symptoms"`
	Subtypes    []Subtype    `yaml:"subtypes,omitempty" json:"subtypes,omitempty"`
	Principle   string       `yaml:"principle,omitempty" json:"principle,omitempty"`
	Formula     string       `yaml:"formula,omitempty" json:"formula,omitempty"`
}

// SymptomMeaning maps a symptom to its clinical significance.
type SymptomMeaning struct {
	Symptom      string `yaml:"symptom" json:"symptom"`
	Significance string `yaml:"significance" json:"significance"`
}

// MedicationPlan is the state-keyed fallback prescription and selection note.
type MedicationPlan struct {
	State      VitalState      `yaml:"state" json:"state"`
	PulseScore string          `yaml:"pulse_score" json:"pulse_score"`
	MainHerb   string          `yaml:"main_herb" json:"main_herb"`
	Reasoning  string          `yaml:"reasoning" json:"reasoning"`
	KeyPoints  []string        `yaml:"key_points,omitempty" json:"key_points,omitempty"`
	Herbs      []HerbComponent `yaml:"herbs" json:"herbs"`
}

// OutcomeEntry is an expected-outcome sentence keyed by classification or state.
// Exactly one of Classification and State is set.
type OutcomeEntry struct {
	Classification SyndromeType `yaml:"classification,omitempty" json:"classification,omitempty"`
	State          VitalState   `yaml:"state,omitempty" json:"state,omitempty"`
	Text           string       `yaml:"text" json:"text"`
}
