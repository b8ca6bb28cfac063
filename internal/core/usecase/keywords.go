package usecase

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/conciergelab/shop-concierge/internal/core/ports"
)

const (
	nounClass      = "名詞"
	adjectiveClass = "形容詞"
)

// stopWords are common particles and fillers dropped by the lightweight
// extractor. Single-rune words are already dropped by the length rule.
var stopWords = map[string]struct{}{
	"から": {}, "まで": {}, "など": {}, "ので": {}, "こと": {},
	"です": {}, "ます": {}, "する": {}, "ください": {},
	"この": {}, "その": {}, "あの": {}, "どの": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "about": {},
}

// KeywordExtractor turns sanitized text into a deduplicated keyword
// set, using the full tokenizer when the cache can supply one and a
// whitespace split otherwise.
type KeywordExtractor struct {
	sanitizer   *Sanitizer
	resources   ports.ResourceCache
	tokenLimit  int
	maxKeywords int
}

func NewKeywordExtractor(sanitizer *Sanitizer, resources ports.ResourceCache, tokenLimit, maxKeywords int) *KeywordExtractor {
	if tokenLimit <= 0 {
		tokenLimit = 100
	}
	if maxKeywords <= 0 {
		maxKeywords = 20
	}
	return &KeywordExtractor{
		sanitizer:   sanitizer,
		resources:   resources,
		tokenLimit:  tokenLimit,
		maxKeywords: maxKeywords,
	}
}

// Extract returns the keyword set for a question; it may be empty.
// Order carries no meaning, scoring only tests membership.
func (e *KeywordExtractor) Extract(ctx context.Context, text string) map[string]struct{} {
	cleaned := e.sanitizer.Sanitize(text)
	if cleaned == "" {
		return nil
	}

	tokenizer, ok := e.resources.Tokenizer(ctx)
	if !ok {
		return e.splitKeywords(cleaned)
	}

	tokens := tokenizer.Tokenize(cleaned)
	if len(tokens) > e.tokenLimit {
		tokens = tokens[:e.tokenLimit]
	}

	keywords := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if token.PartOfSpeech != nounClass && token.PartOfSpeech != adjectiveClass {
			continue
		}
		if utf8.RuneCountInString(token.Surface) <= 1 {
			continue
		}
		keywords[token.Surface] = struct{}{}
		if len(keywords) >= e.maxKeywords {
			break
		}
	}
	return keywords
}

// splitKeywords is the degraded path used while no tokenizer is loaded.
func (e *KeywordExtractor) splitKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, field := range strings.Fields(text) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}
