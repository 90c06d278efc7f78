package engine

// Phase is a state of the chain builder. Every transition out of
// PhaseInit appends exactly one reasoning step.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseEvidenceCollection
	PhasePatternRecognition
	PhaseSyndromeDifferentiation
	PhaseTreatmentPrinciple
	PhasePrescriptionSelection
	PhaseOutcomeProjection
	PhaseDone
)

var phaseNames = [...]string{
	PhaseInit:                    "init",
	PhaseEvidenceCollection:      "evidence_collection",
	PhasePatternRecognition:      "pattern_recognition",
	PhaseSyndromeDifferentiation: "syndrome_differentiation",
	PhaseTreatmentPrinciple:      "treatment_principle",
	PhasePrescriptionSelection:   "prescription_selection",
	PhaseOutcomeProjection:       "outcome_projection",
	PhaseDone:                    "done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// next returns the following phase; PhaseDone is terminal.
func (p Phase) next() Phase {
	if p >= PhaseDone {
		return PhaseDone
	}
	return p + 1
}

// StepPhases lists the phases that emit a step, in emission order.
func StepPhases() []Phase {
	return []Phase{
		PhaseEvidenceCollection,
		PhasePatternRecognition,
		PhaseSyndromeDifferentiation,
		PhaseTreatmentPrinciple,
		PhasePrescriptionSelection,
		PhaseOutcomeProjection,
	}
}
