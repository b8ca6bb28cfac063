package config

import (
	"testing"
	"time"
)

func TestLoadRankingDefaults(t *testing.T) {
	t.Setenv("PRODUCT_SCORE_THRESHOLD", "")
	t.Setenv("PRODUCT_TOP_N", "")
	t.Setenv("PRODUCT_SCAN_LIMIT", "")
	t.Setenv("FAQ_SCORE_THRESHOLD", "")
	t.Setenv("FAQ_TOP_N", "")
	t.Setenv("FAQ_SCORE_GAP", "")
	t.Setenv("FAQ_SCAN_LIMIT", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg := Load()
	if cfg.ProductScoreThreshold != 2 {
		t.Fatalf("expected default product threshold 2, got %d", cfg.ProductScoreThreshold)
	}
	if cfg.ProductTopN != 3 {
		t.Fatalf("expected default product top n 3, got %d", cfg.ProductTopN)
	}
	if cfg.ProductScanLimit != 100 {
		t.Fatalf("expected default product scan limit 100, got %d", cfg.ProductScanLimit)
	}
	if cfg.FaqScoreThreshold != 5 {
		t.Fatalf("expected default faq threshold 5, got %d", cfg.FaqScoreThreshold)
	}
	if cfg.FaqTopN != 2 {
		t.Fatalf("expected default faq top n 2, got %d", cfg.FaqTopN)
	}
	if cfg.FaqScoreGap != 5 {
		t.Fatalf("expected default faq score gap 5, got %d", cfg.FaqScoreGap)
	}
	if cfg.FaqScanLimit != 50 {
		t.Fatalf("expected default faq scan limit 50, got %d", cfg.FaqScanLimit)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Fatalf("expected default cache ttl 300s, got %s", cfg.CacheTTL)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("PRODUCT_TOP_N", "5")
	t.Setenv("FAQ_SCORE_GAP", "7")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("PRODUCTS_FILE", "/data/products.json")

	cfg := Load()
	if cfg.ProductTopN != 5 {
		t.Fatalf("expected product top n override 5, got %d", cfg.ProductTopN)
	}
	if cfg.FaqScoreGap != 7 {
		t.Fatalf("expected faq score gap override 7, got %d", cfg.FaqScoreGap)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("expected cache ttl override 60s, got %s", cfg.CacheTTL)
	}
	if cfg.ProductsFile != "/data/products.json" {
		t.Fatalf("expected products file override, got %q", cfg.ProductsFile)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("FAQ_TOP_N", "two")

	cfg := Load()
	if cfg.FaqTopN != 2 {
		t.Fatalf("expected fallback faq top n 2 on malformed value, got %d", cfg.FaqTopN)
	}
}
