package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
)

// Fixed user-facing fallbacks. Generation failures never surface as
// errors to the caller.
const (
	MsgInvalidInput     = "質問が入力されていません。"
	MsgModelNotLoaded   = "AIモデルがロードされていないため、回答を生成できません。しばらくお待ちください。"
	MsgNoRelatedInfo    = "関連情報が見つかりませんでした。"
	MsgGenerationFailed = "回答生成中にエラーが発生しました。しばらくしてからもう一度お試しください。"
)

// contextItemLimit bounds the prompt context regardless of how many
// items the rankers returned.
const contextItemLimit = 8

// AnswerUseCase assembles a bounded context from ranked matches and
// delegates to the external answer generator.
type AnswerUseCase struct {
	sanitizer *Sanitizer
	ranker    *RankUseCase
	resources ports.ResourceCache
}

func NewAnswerUseCase(sanitizer *Sanitizer, ranker *RankUseCase, resources ports.ResourceCache) *AnswerUseCase {
	return &AnswerUseCase{
		sanitizer: sanitizer,
		ranker:    ranker,
		resources: resources,
	}
}

// Answer runs the full ask flow: rank both corpora, then compose.
func (uc *AnswerUseCase) Answer(ctx context.Context, question string) domain.Answer {
	products := uc.ranker.RankProducts(ctx, question)
	faqs := uc.ranker.RankFaqs(ctx, question)
	return domain.Answer{
		Text:     uc.Compose(ctx, question, products, faqs),
		Products: products,
		Faqs:     faqs,
	}
}

// Compose returns the generated answer text, or a fixed fallback when
// the input is rejected, the generator is unavailable, no related
// information exists, or the external call fails.
func (uc *AnswerUseCase) Compose(ctx context.Context, question string, products []domain.ScoredProduct, faqs []domain.ScoredFaq) string {
	cleaned := uc.sanitizer.Sanitize(question)
	if cleaned == "" {
		return MsgInvalidInput
	}

	generator, ok := uc.resources.Generator(ctx)
	if !ok {
		return MsgModelNotLoaded
	}

	if len(products)+len(faqs) == 0 {
		return MsgNoRelatedInfo
	}

	text, err := generator.Generate(ctx, uc.buildPrompt(cleaned, products, faqs))
	if err != nil {
		slog.Error("answer_generation_failed", "error", err)
		return MsgGenerationFailed
	}
	return strings.TrimSpace(text)
}

func (uc *AnswerUseCase) buildPrompt(question string, products []domain.ScoredProduct, faqs []domain.ScoredFaq) string {
	var contextBuilder strings.Builder
	remaining := contextItemLimit
	for _, product := range products {
		if remaining == 0 {
			break
		}
		fmt.Fprintf(&contextBuilder, "商品名: %s, 説明: %s, その他: %s\n",
			uc.sanitizer.EscapeMarkup(product.Name),
			uc.sanitizer.EscapeMarkup(product.Description),
			uc.sanitizer.EscapeMarkup(product.Notes),
		)
		remaining--
	}
	for _, faq := range faqs {
		if remaining == 0 {
			break
		}
		fmt.Fprintf(&contextBuilder, "質問: %s, 回答: %s\n",
			uc.sanitizer.EscapeMarkup(faq.Question),
			uc.sanitizer.EscapeMarkup(faq.Answer),
		)
		remaining--
	}

	return fmt.Sprintf("以下の関連情報に基づいて、質問「%s」への回答を生成してください。\n\n%s\n回答:",
		question, contextBuilder.String())
}
