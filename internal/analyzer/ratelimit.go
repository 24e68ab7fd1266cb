package analyzer

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
)

type rateLimited struct {
	next    Analyzer
	limiter *rate.Limiter
}

// NewRateLimited caps outbound model calls at perSecond. A non-positive rate
// returns next unchanged.
func NewRateLimited(next Analyzer, perSecond float64) Analyzer {
	if perSecond <= 0 {
		return next
	}
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (r *rateLimited) Analyze(ctx context.Context, content *extractor.Content) (*models.AnalysisResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Analyze(ctx, content)
}

func (r *rateLimited) Ask(ctx context.Context, content *extractor.Content, question string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Ask(ctx, content, question)
}
