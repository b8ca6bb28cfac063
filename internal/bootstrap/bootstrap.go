package bootstrap

import (
	"context"
	"fmt"

	"github.com/conciergelab/shop-concierge/internal/config"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
	"github.com/conciergelab/shop-concierge/internal/core/usecase"
	"github.com/conciergelab/shop-concierge/internal/infrastructure/cache"
	"github.com/conciergelab/shop-concierge/internal/infrastructure/corpus/jsonfile"
	"github.com/conciergelab/shop-concierge/internal/infrastructure/llm/gemini"
	"github.com/conciergelab/shop-concierge/internal/infrastructure/tokenizer/kagome"
	"github.com/conciergelab/shop-concierge/internal/observability/metrics"
)

type App struct {
	Config    config.Config
	Metrics   *metrics.HTTPServerMetrics
	Resources *cache.Resources

	RankUC   *usecase.RankUseCase
	AnswerUC *usecase.AnswerUseCase
}

func New(cfg config.Config) (*App, error) {
	serverMetrics := metrics.NewHTTPServerMetrics("concierge-api")

	resources, err := cache.New(cfg.CacheTTL, cache.Loaders{
		Products: jsonfile.NewProductLoader(cfg.ProductsFile),
		Faqs:     jsonfile.NewFaqLoader(cfg.FaqsFile),
		Tokenizer: func(context.Context) (ports.Tokenizer, error) {
			tokenizer, err := kagome.New()
			if err != nil {
				return nil, err
			}
			return tokenizer, nil
		},
		Generator: func(context.Context) (ports.AnswerGenerator, error) {
			client, err := gemini.New(cfg.GeminiURL, cfg.GeminiModel, cfg.GeminiAPIKey)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}, serverMetrics)
	if err != nil {
		return nil, fmt.Errorf("init resource cache: %w", err)
	}

	sanitizer := usecase.NewSanitizer(cfg.MaxQuestionChars)
	keywords := usecase.NewKeywordExtractor(sanitizer, resources, cfg.KeywordTokenLimit, cfg.KeywordMax)
	rankUC := usecase.NewRankUseCase(keywords, resources, usecase.RankConfig{
		ProductScoreThreshold: cfg.ProductScoreThreshold,
		ProductTopN:           cfg.ProductTopN,
		ProductScanLimit:      cfg.ProductScanLimit,

		FaqScoreThreshold: cfg.FaqScoreThreshold,
		FaqTopN:           cfg.FaqTopN,
		FaqScoreGap:       cfg.FaqScoreGap,
		FaqScanLimit:      cfg.FaqScanLimit,
	})
	answerUC := usecase.NewAnswerUseCase(sanitizer, rankUC, resources)

	return &App{
		Config:    cfg,
		Metrics:   serverMetrics,
		Resources: resources,

		RankUC:   rankUC,
		AnswerUC: answerUC,
	}, nil
}
