package ports

import (
	"context"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
)

// Tokenizer produces part-of-speech tagged tokens for a text.
type Tokenizer interface {
	Tokenize(text string) []domain.Token
}

// AnswerGenerator turns a fully assembled prompt into prose.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProductLoader reads the product corpus from its backing store.
type ProductLoader interface {
	LoadProducts(ctx context.Context) ([]domain.ProductEntry, error)
}

// FaqLoader reads the FAQ corpus from its backing store.
type FaqLoader interface {
	LoadFaqs(ctx context.Context) ([]domain.FaqEntry, error)
}

// ResourceCache supplies lazily loaded, TTL-bounded shared resources.
// The boolean is false when a resource is currently unavailable;
// callers degrade instead of failing the request.
type ResourceCache interface {
	Products(ctx context.Context) ([]domain.ProductEntry, bool)
	Faqs(ctx context.Context) ([]domain.FaqEntry, bool)
	Tokenizer(ctx context.Context) (Tokenizer, bool)
	Generator(ctx context.Context) (AnswerGenerator, bool)

	// ReleaseAll synchronously drops every cached value regardless of age.
	ReleaseAll()
	// Status reports which resources are loaded without triggering loads.
	Status() map[string]bool
}
