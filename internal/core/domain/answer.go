package domain

// Token is one unit emitted by a morphological tokenizer.
// PartOfSpeech is the coarse class only (名詞, 形容詞, ...).
type Token struct {
	Surface      string
	PartOfSpeech string
}

// Answer is the full response for one question: the generated text plus
// the ranked matches it was grounded on.
type Answer struct {
	Text     string          `json:"answer"`
	Products []ScoredProduct `json:"products"`
	Faqs     []ScoredFaq     `json:"faqs"`
}
