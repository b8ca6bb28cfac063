package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string

	ProductsFile string
	FaqsFile     string

	GeminiURL    string
	GeminiModel  string
	GeminiAPIKey string

	CacheTTL          time.Duration
	CacheReleaseEvery int

	MaxQuestionChars  int
	KeywordTokenLimit int
	KeywordMax        int

	ProductScoreThreshold int
	ProductTopN           int
	ProductScanLimit      int

	FaqScoreThreshold int
	FaqTopN           int
	FaqScoreGap       int
	FaqScanLimit      int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		ProductsFile: mustEnv("PRODUCTS_FILE", "G&D.json"),
		FaqsFile:     mustEnv("FAQS_FILE", "Q&A.json"),

		GeminiURL:    mustEnv("GEMINI_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:  mustEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GeminiAPIKey: mustEnv("GEMINI_API_KEY", ""),

		CacheTTL:          time.Duration(mustEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		CacheReleaseEvery: mustEnvInt("CACHE_RELEASE_EVERY", 100),

		MaxQuestionChars:  mustEnvInt("MAX_QUESTION_CHARS", 1000),
		KeywordTokenLimit: mustEnvInt("KEYWORD_TOKEN_LIMIT", 100),
		KeywordMax:        mustEnvInt("KEYWORD_MAX", 20),

		ProductScoreThreshold: mustEnvInt("PRODUCT_SCORE_THRESHOLD", 2),
		ProductTopN:           mustEnvInt("PRODUCT_TOP_N", 3),
		ProductScanLimit:      mustEnvInt("PRODUCT_SCAN_LIMIT", 100),

		FaqScoreThreshold: mustEnvInt("FAQ_SCORE_THRESHOLD", 5),
		FaqTopN:           mustEnvInt("FAQ_TOP_N", 2),
		FaqScoreGap:       mustEnvInt("FAQ_SCORE_GAP", 5),
		FaqScanLimit:      mustEnvInt("FAQ_SCAN_LIMIT", 50),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
