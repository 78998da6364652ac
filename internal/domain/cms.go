/**
 * @description
 * CMS content models: blogs, FAQs, header banners, team members, the
 * about-us page and the general settings singleton. All visible copy is
 * multi-language and localized at response time.
 */
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/i18n"
)

// Blog is an editorial article. Body holds markdown per language; BodyHTML
// holds the sanitized rendering per language.
type Blog struct {
	ID        uuid.UUID  `json:"id"`
	Slug      string     `json:"slug"`
	Title     i18n.Text  `json:"title"`
	Body      i18n.Text  `json:"body"`
	BodyHTML  i18n.Text  `json:"body_html"`
	CoverMediaID *uuid.UUID `json:"cover_media_id,omitempty"`
	IsPublished  bool    `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	Audit
}

// BlogView is the single-language response shape of a blog.
type BlogView struct {
	ID           uuid.UUID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	BodyHTML     string     `json:"body_html"`
	CoverMediaID *uuid.UUID `json:"cover_media_id,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// Localize collapses the multi-language fields for the resolved language.
func (b *Blog) Localize(lang, def string) BlogView {
	return BlogView{
		ID:           b.ID,
		Slug:         b.Slug,
		Title:        i18n.Resolve(b.Title, lang, def),
		Body:         i18n.Resolve(b.Body, lang, def),
		BodyHTML:     i18n.Resolve(b.BodyHTML, lang, def),
		CoverMediaID: b.CoverMediaID,
		PublishedAt:  b.PublishedAt,
	}
}

// FAQ is a question/answer pair with an explicit display position.
type FAQ struct {
	ID       uuid.UUID `json:"id"`
	Question i18n.Text `json:"question"`
	Answer   i18n.Text `json:"answer"`
	Position int       `json:"position"`
	Audit
}

// FAQView is the single-language response shape of an FAQ.
type FAQView struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Position int       `json:"position"`
}

// Localize collapses the multi-language fields for the resolved language.
func (f *FAQ) Localize(lang, def string) FAQView {
	return FAQView{
		ID:       f.ID,
		Question: i18n.Resolve(f.Question, lang, def),
		Answer:   i18n.Resolve(f.Answer, lang, def),
		Position: f.Position,
	}
}

// HeaderBanner is a site banner with an activation window. The scheduler
// flips IsActive when the window opens or closes.
type HeaderBanner struct {
	ID         uuid.UUID  `json:"id"`
	Caption    i18n.Text  `json:"caption"`
	MediaID    *uuid.UUID `json:"media_id,omitempty"`
	LinkURL    string     `json:"link_url"`
	ActiveFrom *time.Time `json:"active_from,omitempty"`
	ActiveTo   *time.Time `json:"active_to,omitempty"`
	IsActive   bool       `json:"is_active"`
	Audit
}

// InWindow reports whether the banner's activation window covers the instant.
func (b *HeaderBanner) InWindow(now time.Time) bool {
	if b.ActiveFrom != nil && now.Before(*b.ActiveFrom) {
		return false
	}
	if b.ActiveTo != nil && now.After(*b.ActiveTo) {
		return false
	}
	return true
}

// BannerView is the single-language response shape of a banner.
type BannerView struct {
	ID      uuid.UUID  `json:"id"`
	Caption string     `json:"caption"`
	MediaID *uuid.UUID `json:"media_id,omitempty"`
	LinkURL string     `json:"link_url"`
}

// Localize collapses the multi-language fields for the resolved language.
func (b *HeaderBanner) Localize(lang, def string) BannerView {
	return BannerView{
		ID:      b.ID,
		Caption: i18n.Resolve(b.Caption, lang, def),
		MediaID: b.MediaID,
		LinkURL: b.LinkURL,
	}
}

// TeamMember is a person shown on the team page.
type TeamMember struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	RoleText i18n.Text  `json:"role"`
	Bio      i18n.Text  `json:"bio"`
	PhotoMediaID *uuid.UUID `json:"photo_media_id,omitempty"`
	Position int        `json:"position"`
	Audit
}

// TeamMemberView is the single-language response shape of a team member.
type TeamMemberView struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Bio          string     `json:"bio"`
	PhotoMediaID *uuid.UUID `json:"photo_media_id,omitempty"`
	Position     int        `json:"position"`
}

// Localize collapses the multi-language fields for the resolved language.
func (m *TeamMember) Localize(lang, def string) TeamMemberView {
	return TeamMemberView{
		ID:           m.ID,
		Name:         m.Name,
		Role:         i18n.Resolve(m.RoleText, lang, def),
		Bio:          i18n.Resolve(m.Bio, lang, def),
		PhotoMediaID: m.PhotoMediaID,
		Position:     m.Position,
	}
}

// AboutUsPage is a singleton document. Sections is free-form nested content
// (headings, paragraphs, timeline events) whose multi-language leaves are
// localized recursively at response time.
type AboutUsPage struct {
	ID       uuid.UUID        `json:"id"`
	Title    i18n.Text        `json:"title"`
	Sections []map[string]any `json:"sections"`
	Audit
}

// GeneralSettings is the singleton configuration document: which languages
// are enabled, the default language and store-level display values.
type GeneralSettings struct {
	ID               uuid.UUID `json:"id"`
	StoreName        string    `json:"store_name"`
	EnabledLanguages []string  `json:"enabled_languages"`
	DefaultLanguage  string    `json:"default_language"`
	SupportEmail     string    `json:"support_email"`
	Audit
}
