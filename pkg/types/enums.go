package types

// DiagnosticMethod is one of the four classical examination methods.
type DiagnosticMethod string

const (
	MethodInspection DiagnosticMethod = "望诊"
	MethodListening  DiagnosticMethod = "闻诊"
	MethodInquiry    DiagnosticMethod = "问诊"
	MethodPalpation  DiagnosticMethod = "切诊"
)

// ReasoningType labels the kind of inference a step performs.
type ReasoningType string

const (
	ReasoningInductive  ReasoningType = "归纳"
	ReasoningDeductive  ReasoningType = "演绎"
	ReasoningAnalogical ReasoningType = "类比"
	ReasoningInferred   ReasoningType = "推断"
)

// SyndromeType is a target classification: six-meridian or eight-principle.
type SyndromeType string

const (
	SyndromeTaiyang   SyndromeType = "太阳病"
	SyndromeYangming  SyndromeType = "阳明病"
	SyndromeShaoyang  SyndromeType = "少阳病"
	SyndromeTaiyin    SyndromeType = "太阴病"
	SyndromeShaoyin   SyndromeType = "少阴病"
	SyndromeJueyin    SyndromeType = "厥阴病"
	SyndromeYin       SyndromeType = "阴证"
	SyndromeYang      SyndromeType = "阳证"
	SyndromeExterior  SyndromeType = "表证"
	SyndromeInterior  SyndromeType = "里证"
	SyndromeCold      SyndromeType = "寒证"
	SyndromeHeat      SyndromeType = "热证"
	SyndromeDeficient SyndromeType = "虚证"
	SyndromeExcess    SyndromeType = "实证"

	// SyndromeUndetermined marks a differentiation deferred for lack of evidence.
	SyndromeUndetermined SyndromeType = "待定"
)

var syndromeTypes = []SyndromeType{
	SyndromeTaiyang, SyndromeYangming, SyndromeShaoyang, SyndromeTaiyin,
	SyndromeShaoyin, SyndromeJueyin, SyndromeYin, SyndromeYang,
	SyndromeExterior, SyndromeInterior, SyndromeCold, SyndromeHeat,
	SyndromeDeficient, SyndromeExcess, SyndromeUndetermined,
}

// Valid reports whether s is one of the defined classifications.
func (s SyndromeType) Valid() bool {
	for _, v := range syndromeTypes {
		if s == v {
			return true
		}
	}
	return false
}

// VitalState is the assessed state of the patient's root vitality (元气).
type VitalState string

const (
	VitalAbundant          VitalState = "元气充盛"
	VitalSlightlyDeficient VitalState = "元气稍虚"
	VitalDeficient         VitalState = "元气虚损"
	VitalSeverelyDeficient VitalState = "元气大虚"
	VitalDepleted          VitalState = "元气衰竭"
	VitalFloating          VitalState = "元气外浮"
	VitalSinking           VitalState = "元气下陷"
)

var vitalStates = []VitalState{
	VitalAbundant, VitalSlightlyDeficient, VitalDeficient, VitalSeverelyDeficient,
	VitalDepleted, VitalFloating, VitalSinking,
}

// Valid reports whether v is one of the defined states.
func (v VitalState) Valid() bool {
	for _, s := range vitalStates {
		if v == s {
			return true
		}
	}
	return false
}

// CompatibilityCategory groups herb-pair rules by their traditional relation.
type CompatibilityCategory string

const (
	CompatEnhancement     CompatibilityCategory = "enhancement"     // 相须
	CompatAssistance      CompatibilityCategory = "assistance"      // 相使
	CompatNeutralization  CompatibilityCategory = "neutralization"  // 相畏/相杀
	CompatIncompatibility CompatibilityCategory = "incompatibility" // 相恶
	CompatProhibited      CompatibilityCategory = "prohibited"      // 相反
)

// Valid reports whether c is a known category.
func (c CompatibilityCategory) Valid() bool {
	switch c {
	case CompatEnhancement, CompatAssistance, CompatNeutralization, CompatIncompatibility, CompatProhibited:
		return true
	}
	return false
}
