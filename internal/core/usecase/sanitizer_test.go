package usecase

import (
	"strings"
	"testing"
)

func TestSanitizeTrimsAndKeepsPlainText(t *testing.T) {
	s := NewSanitizer(1000)

	got := s.Sanitize("  返品方法を教えてください  ")
	if got != "返品方法を教えてください" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestSanitizeRejectsEmptyAndWhitespace(t *testing.T) {
	s := NewSanitizer(1000)

	for _, input := range []string{"", "   ", "\n\t "} {
		if got := s.Sanitize(input); got != "" {
			t.Fatalf("expected empty result for %q, got %q", input, got)
		}
	}
}

func TestSanitizeHardCutsLongInput(t *testing.T) {
	s := NewSanitizer(1000)

	long := strings.Repeat("あ", 1500)
	got := s.Sanitize(long)
	if len([]rune(got)) != 1000 {
		t.Fatalf("expected 1000 runes after cut, got %d", len([]rune(got)))
	}
}

func TestSanitizeRejectsShellMetacharacters(t *testing.T) {
	s := NewSanitizer(1000)

	inputs := []string{
		"rm -rf /; echo done",
		"foo `whoami` bar",
		"$(cat /etc/passwd)",
		"a | b",
		"a && b",
		"<script src=x>",
		"> /dev/null",
	}
	for _, input := range inputs {
		if got := s.Sanitize(input); got != "" {
			t.Fatalf("expected rejection of %q, got %q", input, got)
		}
	}
}

func TestSanitizeEscapesMarkupCharacters(t *testing.T) {
	s := NewSanitizer(1000)

	got := s.Sanitize(`色は"青"です`)
	if got != "色は＂青＂です" {
		t.Fatalf("expected full-width quotes, got %q", got)
	}
	if strings.ContainsAny(got, `<>&"'`) {
		t.Fatalf("expected no markup characters, got %q", got)
	}
}

func TestSanitizeIsIdempotentOnSafeInput(t *testing.T) {
	s := NewSanitizer(1000)

	inputs := []string{
		"返品方法は？",
		`ウィジェット'青'について`,
		"A＆B ストアの営業時間",
	}
	for _, input := range inputs {
		once := s.Sanitize(input)
		if once == "" {
			t.Fatalf("expected %q to pass sanitizing", input)
		}
		twice := s.Sanitize(once)
		if twice != once {
			t.Fatalf("sanitize not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestEscapeMarkupIsIdempotent(t *testing.T) {
	s := NewSanitizer(1000)

	once := s.EscapeMarkup(`<b>A&B</b> "quote"`)
	if twice := s.EscapeMarkup(once); twice != once {
		t.Fatalf("escape not idempotent: %q -> %q", once, twice)
	}
}
