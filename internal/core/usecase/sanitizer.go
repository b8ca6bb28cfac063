package usecase

import (
	"log/slog"
	"strings"
)

// dangerousPatterns is a conservative shell-metacharacter filter.
// It can reject legitimate punctuation; that trade-off is accepted.
var dangerousPatterns = []string{";", "`", "$(", "|", "&&", "<", ">"}

// markupReplacer rewrites markup-significant characters to their
// full-width forms. Entity escaping would reintroduce ';' and '&' and
// make sanitizing non-idempotent, so substitution is used instead.
var markupReplacer = strings.NewReplacer(
	"<", "＜",
	">", "＞",
	"&", "＆",
	`"`, "＂",
	"'", "＇",
)

// Sanitizer normalizes raw user text before any other processing.
type Sanitizer struct {
	maxChars int
}

func NewSanitizer(maxChars int) *Sanitizer {
	if maxChars <= 0 {
		maxChars = 1000
	}
	return &Sanitizer{maxChars: maxChars}
}

// Sanitize returns the cleaned text, or "" when the input is rejected.
// The cut at maxChars is a hard one, not word-aware.
func (s *Sanitizer) Sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if runes := []rune(text); len(runes) > s.maxChars {
		text = string(runes[:s.maxChars])
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(text, pattern) {
			slog.Warn("dangerous_input_rejected", "pattern", pattern)
			return ""
		}
	}
	return markupReplacer.Replace(text)
}

// EscapeMarkup makes corpus text safe to embed in prompts or HTML.
func (s *Sanitizer) EscapeMarkup(text string) string {
	return markupReplacer.Replace(text)
}
