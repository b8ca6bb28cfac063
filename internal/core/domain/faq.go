package domain

// FaqEntry is one record of the read-only FAQ corpus.
type FaqEntry struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	RelatedWords []string `json:"related_word"`
	RelatedLinks string   `json:"related_link"`
}

// ScoredFaq is a FAQ entry matched against one question. Related words
// are a scoring aid only and are not carried into results.
type ScoredFaq struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	RelatedLinks string `json:"related_link"`
	Score        int    `json:"スコア"`
}
