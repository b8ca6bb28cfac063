package ports

import (
	"context"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
)

// QuestionRanker is the inbound contract for corpus matching without
// answer generation.
type QuestionRanker interface {
	RankProducts(ctx context.Context, question string) []domain.ScoredProduct
	RankFaqs(ctx context.Context, question string) []domain.ScoredFaq
}

// QuestionAnswerer is the inbound contract for the full ask flow.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string) domain.Answer
}
