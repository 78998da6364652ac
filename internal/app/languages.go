/**
 * @description
 * Shared language lookup for the service layer. The enabled-language set and
 * default code live in the general settings singleton; content services read
 * them on write (auto-translation expansion) and on read (fallback default).
 * A settings lookup failure degrades to English-only rather than failing the
 * request, matching the display-only nature of the data.
 */
package app

import (
	"context"

	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
)

// SettingsRepository provides the general settings singleton.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.GeneralSettings, error)
}

// languages reads the enabled language codes and the default code.
func languages(ctx context.Context, repo SettingsRepository) (enabled []string, def string) {
	settings, err := repo.GetSettings(ctx)
	if err != nil || settings == nil || len(settings.EnabledLanguages) == 0 {
		return []string{i18n.DefaultLanguage}, i18n.DefaultLanguage
	}
	def = settings.DefaultLanguage
	if def == "" {
		def = i18n.DefaultLanguage
	}
	return settings.EnabledLanguages, def
}
