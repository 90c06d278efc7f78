package engine

import (
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qhuang2010/zhongyimedic/pkg/corpus"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// Version is stamped on every generated chain.
const Version = "1.0"

// ErrMissingChiefComplaint is returned when a request has no chief complaint.
var ErrMissingChiefComplaint = errors.New("chief complaint is required")

// Engine generates chains of thought against one knowledge base.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	kb         *corpus.KnowledgeBase
	confidence types.Confidence
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConfidence replaces the confidence table.
func WithConfidence(c types.Confidence) Option {
	return func(e *Engine) { e.confidence = c }
}

// WithClock sets the source of chain creation times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the source of chain ids.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New returns an Engine reading from kb.
func New(kb *corpus.KnowledgeBase, opts ...Option) *Engine {
	e := &Engine{
		kb:         kb,
		confidence: types.DefaultConfidence(),
		logger:     zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KnowledgeBase returns the corpus the engine reads from.
func (e *Engine) KnowledgeBase() *corpus.KnowledgeBase { return e.kb }

// Generate builds the chain of thought for one consultation. Apart from
// the chain id and creation time, the result is a pure function of req
// and the knowledge base:
//   - Never mutates the request
//   - Never performs I/O
//   - Produces the same steps for the same input
//
// Missing or malformed reading data degrades to low-confidence steps; the
// only rejected input is an empty chief complaint.
func (e *Engine) Generate(req types.Request) (types.ChainOfThought, error) {
	if strings.TrimSpace(req.ChiefComplaint) == "" {
		return types.ChainOfThought{}, ErrMissingChiefComplaint
	}

	b := newBuilder(e, req)
	b.chain.ID = e.newID()
	b.chain.CreatedAt = e.now()
	b.chain.Version = Version
	b.chain.ChiefComplaint = req.ChiefComplaint
	b.chain.PatientInfo = maps.Clone(req.PatientInfo)

	b.run()

	e.logger.Info("chain generated",
		zap.String("chain_id", b.chain.ID),
		zap.String("vital_state", string(b.chain.VitalState)),
		zap.String("syndrome", b.chain.Syndrome.Syndrome),
		zap.String("formula", b.chain.Prescription.FormulaName),
		zap.Int("steps", len(b.chain.Steps)),
	)
	return *b.chain, nil
}
