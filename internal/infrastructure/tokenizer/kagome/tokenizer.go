package kagome

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	kagome "github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
)

// Tokenizer is the full morphological tokenizer, backed by kagome with
// the IPA dictionary. Construction can fail; callers fall back to the
// lightweight extractor while it is unavailable.
type Tokenizer struct {
	inner *kagome.Tokenizer
}

func New() (*Tokenizer, error) {
	inner, err := kagome.New(ipa.Dict(), kagome.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("build kagome tokenizer: %w", err)
	}
	return &Tokenizer{inner: inner}, nil
}

func (t *Tokenizer) Tokenize(text string) []domain.Token {
	tokens := t.inner.Tokenize(text)
	out := make([]domain.Token, 0, len(tokens))
	for _, token := range tokens {
		pos := ""
		if features := token.POS(); len(features) > 0 {
			pos = features[0]
		}
		out = append(out, domain.Token{
			Surface:      token.Surface,
			PartOfSpeech: pos,
		})
	}
	return out
}
