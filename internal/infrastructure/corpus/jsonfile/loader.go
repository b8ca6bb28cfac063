package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/conciergelab/shop-concierge/internal/core/domain"
)

// ProductLoader reads the product corpus from a JSON file holding an
// array of records.
type ProductLoader struct {
	path string
}

func NewProductLoader(path string) *ProductLoader {
	return &ProductLoader{path: path}
}

func (l *ProductLoader) LoadProducts(_ context.Context) ([]domain.ProductEntry, error) {
	var entries []domain.ProductEntry
	if err := readJSONFile(l.path, &entries); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return entries, nil
}

// FaqLoader reads the FAQ corpus from a JSON file.
type FaqLoader struct {
	path string
}

func NewFaqLoader(path string) *FaqLoader {
	return &FaqLoader{path: path}
}

func (l *FaqLoader) LoadFaqs(_ context.Context) ([]domain.FaqEntry, error) {
	var entries []domain.FaqEntry
	if err := readJSONFile(l.path, &entries); err != nil {
		return nil, fmt.Errorf("load faqs: %w", err)
	}
	return entries, nil
}

func readJSONFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode corpus file: %w", err)
	}
	return nil
}
