package domain

// ProductEntry is one record of the read-only product corpus. Entries
// are never mutated after load; the JSON keys follow the corpus files.
type ProductEntry struct {
	Name        string `json:"商品名"`
	Description string `json:"説明"`
	Notes       string `json:"その他"`
	Link        string `json:"リンク"`
}

// ScoredProduct is a product matched against one question. Produced per
// query and discarded with the response.
type ScoredProduct struct {
	Name        string `json:"商品名"`
	Description string `json:"説明"`
	Notes       string `json:"その他"`
	Link        string `json:"リンク"`
	Score       int    `json:"スコア"`
}
