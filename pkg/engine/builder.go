package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/qhuang2010/zhongyimedic/pkg/corpus"
	"github.com/qhuang2010/zhongyimedic/pkg/match"
	"github.com/qhuang2010/zhongyimedic/pkg/pulse"
	"github.com/qhuang2010/zhongyimedic/pkg/rules"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// builder carries the state of a single Generate call. The step counter
// lives here so concurrent calls never share numbering.
type builder struct {
	kb     *corpus.KnowledgeBase
	conf   types.Confidence
	logger *zap.Logger

	reading  map[string]any
	symptoms []string
	chain    *types.ChainOfThought
	step     int

	grid      types.PulseGrid
	findings  []string
	qualities []pulse.Quality
	state     types.VitalState

	patterns   []match.PatternMatch
	categories []match.CategoryMatch

	rule    types.DiagnosticRule
	trigger rules.Trigger
	ruled   bool

	protocol    types.TreatmentProtocol
	hasProtocol bool
}

func newBuilder(e *Engine, req types.Request) *builder {
	return &builder{
		kb:       e.kb,
		conf:     e.confidence,
		logger:   e.logger,
		reading:  req.Reading,
		symptoms: cleanSymptoms(req.Symptoms),
		chain:    &types.ChainOfThought{},
	}
}

// run drives the builder from PhaseInit to PhaseDone.
func (b *builder) run() {
	for p := PhaseInit; p != PhaseDone; p = p.next() {
		b.enter(p)
	}
}

func (b *builder) enter(p Phase) {
	var s types.ReasoningStep
	switch p {
	case PhaseInit:
		b.initialise()
		return
	case PhaseEvidenceCollection:
		s = b.collectEvidence()
	case PhasePatternRecognition:
		s = b.recognisePatterns()
	case PhaseSyndromeDifferentiation:
		s = b.differentiate()
	case PhaseTreatmentPrinciple:
		s = b.choosePrinciple()
	case PhasePrescriptionSelection:
		s = b.prescribe()
	case PhaseOutcomeProjection:
		s = b.projectOutcome()
	default:
		return
	}
	b.emit(p, s)
}

func (b *builder) emit(p Phase, s types.ReasoningStep) {
	b.step++
	s.StepNumber = b.step
	b.chain.Steps = append(b.chain.Steps, s)
	b.logger.Debug("reasoning step",
		zap.String("phase", p.String()),
		zap.Int("step", s.StepNumber),
		zap.String("reasoning_type", string(s.ReasoningType)),
		zap.Float64("confidence", s.Confidence),
	)
}

func (b *builder) initialise() {
	b.step = 0
	b.chain.Evidence = []types.Evidence{}
	b.chain.Steps = make([]types.ReasoningStep, 0, len(StepPhases()))
}

func cleanSymptoms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinOr(items []string, sep, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, sep)
}
