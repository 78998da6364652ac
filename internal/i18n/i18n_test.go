package i18n

import (
	"reflect"
	"testing"
)

func TestResolveLang_Order(t *testing.T) {
	enabled := []string{"en", "nl", "de"}

	tests := []struct {
		name     string
		explicit string
		userPref string
		want     string
	}{
		{name: "explicit wins", explicit: "nl", userPref: "German", want: "nl"},
		{name: "user preference display name", explicit: "", userPref: "Dutch", want: "nl"},
		{name: "user preference code", explicit: "", userPref: "de", want: "de"},
		{name: "nothing set falls back", explicit: "", userPref: "", want: "en"},
		{name: "disabled explicit falls through to user pref", explicit: "fr", userPref: "nl", want: "nl"},
		{name: "unknown garbage falls back", explicit: "klingon", userPref: "??", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLang(tt.explicit, tt.userPref, enabled, "en")
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveLang_DisabledCodeFallsBackToDefault(t *testing.T) {
	got := ResolveLang("es", "", []string{"en", "nl"}, "en")
	if got != "en" {
		t.Fatalf("expected disabled code to resolve default, got %q", got)
	}
}

func TestResolve_FallbackChain(t *testing.T) {
	tests := []struct {
		name string
		text Text
		lang string
		want string
	}{
		{name: "requested present", text: Text{"en": "hello", "nl": "hallo"}, lang: "nl", want: "hallo"},
		{name: "requested empty falls back", text: Text{"en": "hello", "nl": ""}, lang: "nl", want: "hello"},
		{name: "requested missing falls back", text: Text{"en": "hello"}, lang: "de", want: "hello"},
		{name: "nothing available", text: Text{"nl": ""}, lang: "de", want: ""},
		{name: "nil map", text: nil, lang: "en", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.text, tt.lang, "en"); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLocalizeValue_RecursesNestedStructures(t *testing.T) {
	in := map[string]any{
		"title": map[string]any{"en": "Our story", "nl": "Ons verhaal"},
		"timeline": []any{
			map[string]any{
				"year":  float64(2019),
				"event": map[string]any{"en": "Founded", "nl": "Opgericht"},
			},
			map[string]any{
				"year":  float64(2021),
				"event": map[string]any{"en": "First store"},
			},
		},
	}

	got := LocalizeValue(in, "nl", "en")

	want := map[string]any{
		"title": "Ons verhaal",
		"timeline": []any{
			map[string]any{"year": float64(2019), "event": "Opgericht"},
			map[string]any{"year": float64(2021), "event": "First store"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestLocalizeValue_LeavesNonTextMapsAlone(t *testing.T) {
	in := map[string]any{
		"counts": map[string]any{"en": float64(1), "nl": float64(2)},
		"id":     "abc",
	}

	got, ok := LocalizeValue(in, "nl", "en").(map[string]any)
	if !ok {
		t.Fatal("expected a map back")
	}
	if _, isMap := got["counts"].(map[string]any); !isMap {
		t.Fatalf("map with non-string values must not collapse, got %#v", got["counts"])
	}
}

func TestLocalizeValue_NeverPanicsOnScalars(t *testing.T) {
	for _, v := range []any{nil, "plain", float64(3), true, []any{nil}} {
		if got := LocalizeValue(v, "nl", "en"); !reflect.DeepEqual(got, v) {
			t.Fatalf("scalar %#v changed to %#v", v, got)
		}
	}
}

func TestCodeForName(t *testing.T) {
	if got := CodeForName("Dutch"); got != "nl" {
		t.Fatalf("expected nl, got %q", got)
	}
	if got := CodeForName("Elvish"); got != "en" {
		t.Fatalf("unknown names map to default, got %q", got)
	}
}
