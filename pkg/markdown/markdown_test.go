package markdown

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	got := Render("# Heading\n\nSome **bold** text.")

	if !strings.Contains(got, "<h1") {
		t.Fatalf("expected a heading, got %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("expected bold text, got %q", got)
	}
}

func TestRender_StripsScriptTags(t *testing.T) {
	got := Render("hello <script>alert('x')</script> world")

	if strings.Contains(got, "<script") {
		t.Fatalf("script tags must be sanitized, got %q", got)
	}
	if !strings.Contains(got, "hello") {
		t.Fatalf("surrounding text must survive, got %q", got)
	}
}

func TestRender_EmptyInput(t *testing.T) {
	if got := strings.TrimSpace(Render("")); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
