package i18n

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type translatorStub struct {
	err   error
	calls int
}

func (s *translatorStub) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("%s[%s]", text, targetLang), nil
}

func TestExpand_PlainStringCoversAllEnabledCodes(t *testing.T) {
	enabled := []string{"en", "nl", "de"}
	tr := &translatorStub{}

	got := Expand(context.Background(), "Vitamin C", enabled, tr)

	for _, code := range enabled {
		if got[code] == "" {
			t.Fatalf("expected a value for %q, got %#v", code, got)
		}
	}
	if got["en"] != "Vitamin C" {
		t.Fatalf("English source must be kept verbatim, got %q", got["en"])
	}
	if got["nl"] != "Vitamin C[nl]" {
		t.Fatalf("expected translated nl value, got %q", got["nl"])
	}
}

func TestExpand_ExistingMappingOnlyFillsMissing(t *testing.T) {
	tr := &translatorStub{}
	in := Text{"en": "Hello", "nl": "Hallo"}

	got := Expand(context.Background(), in, []string{"en", "nl", "de"}, tr)

	if got["nl"] != "Hallo" {
		t.Fatalf("existing value must be preserved, got %q", got["nl"])
	}
	if tr.calls != 1 {
		t.Fatalf("expected exactly one translation call for de, got %d", tr.calls)
	}
	if got["de"] != "Hello[de]" {
		t.Fatalf("expected de filled from English, got %q", got["de"])
	}
}

func TestExpand_TranslatorFailureDegradesToEnglish(t *testing.T) {
	tr := &translatorStub{err: errors.New("upstream down")}

	got := Expand(context.Background(), "Hello", []string{"en", "nl"}, tr)

	if got["nl"] != "Hello" {
		t.Fatalf("expected English fallback on failure, got %q", got["nl"])
	}
}

func TestExpand_NilTranslatorStillCoversCodes(t *testing.T) {
	got := Expand(context.Background(), "Hello", []string{"en", "nl"}, nil)
	if got["nl"] != "Hello" || got["en"] != "Hello" {
		t.Fatalf("expected all codes present without translator, got %#v", got)
	}
}

func TestExpand_EmptyEnabledDefaultsToEnglish(t *testing.T) {
	got := Expand(context.Background(), "Hello", nil, nil)
	if got["en"] != "Hello" {
		t.Fatalf("expected default language entry, got %#v", got)
	}
}
