package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

// GenerateBatch generates chains for many requests concurrently, running at
// most workers generations at once (unlimited when workers <= 0). Results
// are returned in request order. The first failing request cancels the
// rest and its error is returned.
func (e *Engine) GenerateBatch(ctx context.Context, reqs []types.Request, workers int) ([]types.ChainOfThought, error) {
	out := make([]types.ChainOfThought, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chain, err := e.Generate(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = chain
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Warn("batch aborted", zap.Error(err), zap.Int("requests", len(reqs)))
		return nil, err
	}
	return out, nil
}
