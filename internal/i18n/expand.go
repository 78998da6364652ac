/**
 * @description
 * Auto-translation on write: admin-submitted plain-text content for a
 * multi-language field is expanded into a mapping covering every currently
 * enabled language via an external translation collaborator.
 */
package i18n

import (
	"context"
	"log/slog"
)

// Translator is the external translation collaborator. Implementations live
// in pkg/translateclient; tests stub it.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Expand fills a multi-language field so that every enabled language code has
// a value.
//
// A plain string input is treated as English source content and translated
// into every other enabled code. An input already shaped as a mapping keeps
// its existing values and only missing codes are filled from the English
// value. Translation failures degrade to storing the English value for the
// affected code; Expand never returns an error.
func Expand(ctx context.Context, input any, enabled []string, tr Translator) Text {
	if len(enabled) == 0 {
		enabled = []string{DefaultLanguage}
	}

	out := Text{}
	switch typed := input.(type) {
	case string:
		out[DefaultLanguage] = typed
	case Text:
		for k, v := range typed {
			out[k] = v
		}
	case map[string]string:
		for k, v := range typed {
			out[k] = v
		}
	case map[string]any:
		for k, v := range typed {
			if s, ok := v.(string); ok && IsCode(k) {
				out[k] = s
			}
		}
	}

	source := out[DefaultLanguage]
	for _, code := range enabled {
		if v, ok := out[code]; ok && v != "" {
			continue
		}
		if code == DefaultLanguage || source == "" || tr == nil {
			out[code] = source
			continue
		}
		translated, err := tr.Translate(ctx, source, DefaultLanguage, code)
		if err != nil || translated == "" {
			slog.Warn("translation failed, storing source value", "target", code, "error", err)
			out[code] = source
			continue
		}
		out[code] = translated
	}

	return out
}
