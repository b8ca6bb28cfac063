package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
)

type RankConfig struct {
	ProductScoreThreshold int
	ProductTopN           int
	ProductScanLimit      int

	FaqScoreThreshold int
	FaqTopN           int
	FaqScoreGap       int
	FaqScanLimit      int
}

func DefaultRankConfig() RankConfig {
	return RankConfig{
		ProductScoreThreshold: 2,
		ProductTopN:           3,
		ProductScanLimit:      100,

		FaqScoreThreshold: 5,
		FaqTopN:           2,
		FaqScoreGap:       5,
		FaqScanLimit:      50,
	}
}

func (c RankConfig) normalize() RankConfig {
	out := c
	def := DefaultRankConfig()

	if out.ProductScoreThreshold <= 0 {
		out.ProductScoreThreshold = def.ProductScoreThreshold
	}
	if out.ProductTopN <= 0 {
		out.ProductTopN = def.ProductTopN
	}
	if out.ProductScanLimit <= 0 {
		out.ProductScanLimit = def.ProductScanLimit
	}
	if out.FaqScoreThreshold <= 0 {
		out.FaqScoreThreshold = def.FaqScoreThreshold
	}
	if out.FaqTopN <= 0 {
		out.FaqTopN = def.FaqTopN
	}
	if out.FaqScoreGap <= 0 {
		out.FaqScoreGap = def.FaqScoreGap
	}
	if out.FaqScanLimit <= 0 {
		out.FaqScanLimit = def.FaqScanLimit
	}
	return out
}

// RankUseCase scores every corpus entry against the keywords extracted
// from a question and selects a bounded result set.
type RankUseCase struct {
	keywords  *KeywordExtractor
	resources ports.ResourceCache
	cfg       RankConfig
}

func NewRankUseCase(keywords *KeywordExtractor, resources ports.ResourceCache, cfg RankConfig) *RankUseCase {
	return &RankUseCase{
		keywords:  keywords,
		resources: resources,
		cfg:       cfg.normalize(),
	}
}

// RankProducts returns products scoring at least the threshold, best
// first, with ties at the cutoff rank included. A keyword scores 5 on a
// name hit, else 2 on a hit anywhere in name+description+notes.
func (uc *RankUseCase) RankProducts(ctx context.Context, question string) []domain.ScoredProduct {
	keywords := uc.keywords.Extract(ctx, question)
	if len(keywords) == 0 {
		return nil
	}
	products, ok := uc.resources.Products(ctx)
	if !ok || len(products) == 0 {
		return nil
	}
	if len(products) > uc.cfg.ProductScanLimit {
		products = products[:uc.cfg.ProductScanLimit]
	}

	results := make([]domain.ScoredProduct, 0, uc.cfg.ProductTopN)
	for _, product := range products {
		combined := product.Name + " " + product.Description + " " + product.Notes
		score := 0
		for kw := range keywords {
			switch {
			case strings.Contains(product.Name, kw):
				score += 5
			case strings.Contains(combined, kw):
				score += 2
			}
		}
		if score >= uc.cfg.ProductScoreThreshold {
			results = append(results, domain.ScoredProduct{
				Name:        product.Name,
				Description: product.Description,
				Notes:       product.Notes,
				Link:        product.Link,
				Score:       score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return topWithTies(results, uc.cfg.ProductTopN, func(p domain.ScoredProduct) int { return p.Score })
}

// RankFaqs returns FAQ entries scoring at least the threshold. The
// question hit (+5) is additive with the answer/combined tier (+4 else
// +3); a runner-up trailing the leader by FaqScoreGap or more is
// collapsed to the leader alone.
func (uc *RankUseCase) RankFaqs(ctx context.Context, question string) []domain.ScoredFaq {
	keywords := uc.keywords.Extract(ctx, question)
	if len(keywords) == 0 {
		return nil
	}
	faqs, ok := uc.resources.Faqs(ctx)
	if !ok || len(faqs) == 0 {
		return nil
	}
	if len(faqs) > uc.cfg.FaqScanLimit {
		faqs = faqs[:uc.cfg.FaqScanLimit]
	}

	results := make([]domain.ScoredFaq, 0, uc.cfg.FaqTopN)
	for _, faq := range faqs {
		combined := faq.Question + " " + faq.Answer + " " +
			strings.Join(faq.RelatedWords, " ") + " " + faq.RelatedLinks
		score := 0
		for kw := range keywords {
			if strings.Contains(faq.Question, kw) {
				score += 5
			}
			switch {
			case strings.Contains(faq.Answer, kw):
				score += 4
			case strings.Contains(combined, kw):
				score += 3
			}
		}
		if score >= uc.cfg.FaqScoreThreshold {
			results = append(results, domain.ScoredFaq{
				Question:     faq.Question,
				Answer:       faq.Answer,
				RelatedLinks: faq.RelatedLinks,
				Score:        score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	// The gap rule runs before the top-N cut: a dominant leader
	// suppresses everything else.
	if len(results) >= 2 && results[0].Score-results[1].Score >= uc.cfg.FaqScoreGap {
		return results[:1]
	}
	return topWithTies(results, uc.cfg.FaqTopN, func(f domain.ScoredFaq) int { return f.Score })
}

// topWithTies keeps the first topN items of a descending-sorted slice
// plus every later item sharing the score at the cutoff rank.
func topWithTies[T any](sorted []T, topN int, score func(T) int) []T {
	if topN <= 0 || len(sorted) <= topN {
		return sorted
	}
	cutoff := score(sorted[topN-1])
	end := topN
	for end < len(sorted) && score(sorted[end]) >= cutoff {
		end++
	}
	return sorted[:end]
}
