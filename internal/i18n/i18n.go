/**
 * @description
 * This package implements the multi-language text engine: language resolution
 * for incoming requests and localization of stored multi-language fields into
 * single-language response values.
 *
 * A multi-language field is stored as a mapping from 2-letter language code to
 * string. Localization never fails; missing or malformed data degrades to the
 * default-language value or an empty string.
 */
package i18n

import "strings"

// DefaultLanguage is the fallback language code used when nothing better can
// be resolved.
const DefaultLanguage = "en"

// Text is a multi-language text field keyed by 2-letter language code.
type Text map[string]string

// languageCodeByName maps user-facing display names to language codes. User
// profiles store the display name; tokens and query parameters carry the code.
var languageCodeByName = map[string]string{
	"english": "en",
	"dutch":   "nl",
	"german":  "de",
	"french":  "fr",
	"spanish": "es",
}

// CodeForName maps a language display name ("English", "Dutch") to its
// 2-letter code. Unknown names map to the default language.
func CodeForName(name string) string {
	code, ok := languageCodeByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultLanguage
	}
	return code
}

// IsCode reports whether s looks like a 2-letter language code.
func IsCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ResolveLang determines the response language for a request.
//
// Resolution order: explicit request parameter, then the authenticated user's
// stored preference (a display name or a code), then the default. A code that
// is not currently enabled silently falls back to the default rather than
// failing the request.
func ResolveLang(explicit, userPref string, enabled []string, def string) string {
	if def == "" {
		def = DefaultLanguage
	}

	if lang := normalize(explicit); lang != "" && isEnabled(lang, enabled) {
		return lang
	}
	if lang := normalize(userPref); lang != "" && isEnabled(lang, enabled) {
		return lang
	}
	return def
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if IsCode(s) {
		return s
	}
	if code, ok := languageCodeByName[s]; ok {
		return code
	}
	return ""
}

func isEnabled(code string, enabled []string) bool {
	// An empty enabled set means the registry has not been configured yet;
	// accept any known code in that case.
	if len(enabled) == 0 {
		return true
	}
	for _, e := range enabled {
		if strings.EqualFold(e, code) {
			return true
		}
	}
	return false
}

// Resolve returns the single-language value of a multi-language field: the
// value for lang if present and non-empty, else the default-language value,
// else the empty string.
func Resolve(t Text, lang, def string) string {
	if len(t) == 0 {
		return ""
	}
	if def == "" {
		def = DefaultLanguage
	}
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[def]; ok && v != "" {
		return v
	}
	return ""
}

// LocalizeValue recursively localizes a decoded JSON value. Maps that look
// like multi-language fields (every key a language code, every value a string)
// collapse to a single string; all other maps and slices are walked. Scalars
// pass through unchanged. It never returns an error; unrecognizable shapes are
// returned as-is.
func LocalizeValue(v any, lang, def string) any {
	switch typed := v.(type) {
	case map[string]any:
		if text, ok := asText(typed); ok {
			return Resolve(text, lang, def)
		}
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			out[k] = LocalizeValue(item, lang, def)
		}
		return out
	case map[string]string:
		return Resolve(Text(typed), lang, def)
	case Text:
		return Resolve(typed, lang, def)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = LocalizeValue(item, lang, def)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = LocalizeValue(item, lang, def)
		}
		return out
	default:
		return v
	}
}

// asText reports whether a decoded map is a multi-language field. A non-empty
// map qualifies when every key is a 2-letter code and every value a string.
func asText(m map[string]any) (Text, bool) {
	if len(m) == 0 {
		return nil, false
	}
	text := make(Text, len(m))
	for k, v := range m {
		if !IsCode(k) {
			return nil, false
		}
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		text[k] = s
	}
	return text, true
}
