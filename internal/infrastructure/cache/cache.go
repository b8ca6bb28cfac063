package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
	"github.com/conciergelab/shop-concierge/internal/core/ports"
)

// Observer receives cache lifecycle events, typically for metrics.
type Observer interface {
	ResourceLoaded(resource string)
	ResourceLoadFailed(resource string)
	ResourceEvicted(resource string)
	CacheReleased()
}

// Loaders provides the kind-specific constructors for each slot.
// Corpus loaders are ports; tokenizer and generator construction are
// plain callbacks so the cache stays ignorant of their wiring.
type Loaders struct {
	Products  ports.ProductLoader
	Faqs      ports.FaqLoader
	Tokenizer func(ctx context.Context) (ports.Tokenizer, error)
	Generator func(ctx context.Context) (ports.AnswerGenerator, error)
}

// slot is one independently expiring cached resource. The mutex makes
// the check-evict-load-store sequence atomic against concurrent
// getters and ReleaseAll.
type slot[T any] struct {
	name string
	load func(ctx context.Context) (T, error)

	mu         sync.Mutex
	value      T
	loaded     bool
	lastAccess time.Time
}

// Resources holds the four lazily loaded shared resources: product
// corpus, FAQ corpus, tokenizer, and answer generator. Each slot is
// evicted when its last access is older than the TTL and reloaded on
// the next demand. Loader failure leaves the slot empty; the next get
// retries.
type Resources struct {
	ttl      time.Duration
	now      func() time.Time
	observer Observer

	products  *slot[[]domain.ProductEntry]
	faqs      *slot[[]domain.FaqEntry]
	tokenizer *slot[ports.Tokenizer]
	generator *slot[ports.AnswerGenerator]
}

func New(ttl time.Duration, loaders Loaders, observer Observer) (*Resources, error) {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	if loaders.Products == nil || loaders.Faqs == nil || loaders.Tokenizer == nil || loaders.Generator == nil {
		return nil, fmt.Errorf("cache: all four loaders are required")
	}

	return &Resources{
		ttl:      ttl,
		now:      time.Now,
		observer: observer,

		products: &slot[[]domain.ProductEntry]{
			name: "products",
			load: func(ctx context.Context) ([]domain.ProductEntry, error) {
				return loaders.Products.LoadProducts(ctx)
			},
		},
		faqs: &slot[[]domain.FaqEntry]{
			name: "faqs",
			load: func(ctx context.Context) ([]domain.FaqEntry, error) {
				return loaders.Faqs.LoadFaqs(ctx)
			},
		},
		tokenizer: &slot[ports.Tokenizer]{
			name: "tokenizer",
			load: loaders.Tokenizer,
		},
		generator: &slot[ports.AnswerGenerator]{
			name: "generator",
			load: loaders.Generator,
		},
	}, nil
}

func (r *Resources) Products(ctx context.Context) ([]domain.ProductEntry, bool) {
	return get(ctx, r, r.products)
}

func (r *Resources) Faqs(ctx context.Context) ([]domain.FaqEntry, bool) {
	return get(ctx, r, r.faqs)
}

func (r *Resources) Tokenizer(ctx context.Context) (ports.Tokenizer, bool) {
	return get(ctx, r, r.tokenizer)
}

func (r *Resources) Generator(ctx context.Context) (ports.AnswerGenerator, bool) {
	return get(ctx, r, r.generator)
}

// ReleaseAll synchronously clears every slot regardless of TTL. Used
// on a request-count policy, after unhandled request errors, and by
// the maintenance endpoint; it trades reload latency for bounded
// memory.
func (r *Resources) ReleaseAll() {
	release(r.products)
	release(r.faqs)
	release(r.tokenizer)
	release(r.generator)
	slog.Info("cache_released")
	if r.observer != nil {
		r.observer.CacheReleased()
	}
}

// Status reports which resources are currently loaded without
// triggering loads or touching access timestamps.
func (r *Resources) Status() map[string]bool {
	return map[string]bool{
		r.products.name:  isLoaded(r.products),
		r.faqs.name:      isLoaded(r.faqs),
		r.tokenizer.name: isLoaded(r.tokenizer),
		r.generator.name: isLoaded(r.generator),
	}
}

func get[T any](ctx context.Context, r *Resources, s *slot[T]) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := r.now()
	if s.loaded && now.Sub(s.lastAccess) > r.ttl {
		var zero T
		s.value = zero
		s.loaded = false
		slog.Info("resource_evicted", "resource", s.name, "idle", now.Sub(s.lastAccess).String())
		if r.observer != nil {
			r.observer.ResourceEvicted(s.name)
		}
	}

	if !s.loaded {
		value, err := s.load(ctx)
		if err != nil {
			slog.Error("resource_load_failed", "resource", s.name, "error", err)
			if r.observer != nil {
				r.observer.ResourceLoadFailed(s.name)
			}
			var zero T
			return zero, false
		}
		s.value = value
		s.loaded = true
		if r.observer != nil {
			r.observer.ResourceLoaded(s.name)
		}
	}

	s.lastAccess = now
	return s.value, true
}

func release[T any](s *slot[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.loaded = false
}

func isLoaded[T any](s *slot[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
