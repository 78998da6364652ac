/**
 * @description
 * This file contains the business logic for the CMS surfaces: blogs, FAQs,
 * header banners, team members, the about-us page and general settings.
 * Multi-language copy is expanded on write and localized on read.
 */
package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/markdown"
)

// CMSRepository defines the database operations the CMS service needs.
type CMSRepository interface {
	SettingsRepository
	CreateBlog(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	GetBlogByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	ListBlogs(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Blog, int, error)
	SoftDeleteBlog(ctx context.Context, id, by uuid.UUID) error

	CreateFAQ(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error)
	UpdateFAQ(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error)
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	SoftDeleteFAQ(ctx context.Context, id, by uuid.UUID) error

	CreateBanner(ctx context.Context, b *domain.HeaderBanner) (*domain.HeaderBanner, error)
	UpdateBanner(ctx context.Context, b *domain.HeaderBanner) (*domain.HeaderBanner, error)
	ListActiveBanners(ctx context.Context) ([]domain.HeaderBanner, error)
	ListBanners(ctx context.Context) ([]domain.HeaderBanner, error)
	SoftDeleteBanner(ctx context.Context, id, by uuid.UUID) error

	CreateTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	SoftDeleteTeamMember(ctx context.Context, id, by uuid.UUID) error

	GetAboutUsPage(ctx context.Context) (*domain.AboutUsPage, error)
	UpsertAboutUsPage(ctx context.Context, page *domain.AboutUsPage) (*domain.AboutUsPage, error)

	UpdateSettings(ctx context.Context, s *domain.GeneralSettings) (*domain.GeneralSettings, error)
}

// CMSService provides CMS business logic.
type CMSService struct {
	repo       CMSRepository
	translator i18n.Translator
}

// NewCMSService creates a new CMS service.
func NewCMSService(repo CMSRepository, translator i18n.Translator) *CMSService {
	return &CMSService{repo: repo, translator: translator}
}

// BlogInput carries admin blog writes. Body is markdown per language.
type BlogInput struct {
	Slug         string
	Title        any
	Body         any
	CoverMediaID *uuid.UUID
	IsPublished  bool
}

// renderBodyHTML renders each language's markdown body to sanitized HTML.
func renderBodyHTML(body i18n.Text) i18n.Text {
	html := make(i18n.Text, len(body))
	for code, src := range body {
		html[code] = markdown.Render(src)
	}
	return html
}

// CreateBlog creates a blog with expanded copy and per-language rendered HTML.
func (s *CMSService) CreateBlog(ctx context.Context, in BlogInput, by uuid.UUID) (*domain.Blog, error) {
	enabled, _ := languages(ctx, s.repo)
	body := i18n.Expand(ctx, in.Body, enabled, s.translator)

	blog := &domain.Blog{
		Slug:         in.Slug,
		Title:        i18n.Expand(ctx, in.Title, enabled, s.translator),
		Body:         body,
		BodyHTML:     renderBodyHTML(body),
		CoverMediaID: in.CoverMediaID,
		IsPublished:  in.IsPublished,
		Audit:        domain.Audit{CreatedBy: &by},
	}
	if in.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	created, err := s.repo.CreateBlog(ctx, blog)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a blog with this slug already exists")
		}
		return nil, err
	}
	return created, nil
}

// UpdateBlog overwrites a blog. Publishing for the first time stamps
// PublishedAt; unpublishing keeps the original stamp.
func (s *CMSService) UpdateBlog(ctx context.Context, id uuid.UUID, in BlogInput, by uuid.UUID) (*domain.Blog, error) {
	existing, err := s.repo.GetBlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("blog not found")
		}
		return nil, err
	}

	enabled, _ := languages(ctx, s.repo)
	body := i18n.Expand(ctx, in.Body, enabled, s.translator)

	existing.Slug = in.Slug
	existing.Title = i18n.Expand(ctx, in.Title, enabled, s.translator)
	existing.Body = body
	existing.BodyHTML = renderBodyHTML(body)
	existing.CoverMediaID = in.CoverMediaID
	if in.IsPublished && !existing.IsPublished && existing.PublishedAt == nil {
		now := time.Now()
		existing.PublishedAt = &now
	}
	existing.IsPublished = in.IsPublished
	existing.UpdatedBy = &by

	updated, err := s.repo.UpdateBlog(ctx, existing)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("a blog with this slug already exists")
		}
		return nil, err
	}
	return updated, nil
}

// GetBlog returns a localized published blog by slug. Admin callers may also
// read unpublished blogs.
func (s *CMSService) GetBlog(ctx context.Context, slug, lang string, includeUnpublished bool) (*domain.BlogView, error) {
	blog, err := s.repo.GetBlogBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("blog not found")
		}
		return nil, err
	}
	if !blog.IsPublished && !includeUnpublished {
		return nil, apperr.NotFound("blog not found")
	}

	_, def := languages(ctx, s.repo)
	view := blog.Localize(lang, def)
	return &view, nil
}

// ListBlogs returns localized blogs, newest first.
func (s *CMSService) ListBlogs(ctx context.Context, lang string, publishedOnly bool, limit, offset int) ([]domain.BlogView, int, error) {
	blogs, total, err := s.repo.ListBlogs(ctx, publishedOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.BlogView, 0, len(blogs))
	for i := range blogs {
		views = append(views, blogs[i].Localize(lang, def))
	}
	return views, total, nil
}

// DeleteBlog soft-deletes a blog.
func (s *CMSService) DeleteBlog(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteBlog(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("blog not found")
	}
	return err
}

// FAQInput carries admin FAQ writes.
type FAQInput struct {
	Question any
	Answer   any
	Position int
}

// CreateFAQ creates an FAQ entry with expanded copy.
func (s *CMSService) CreateFAQ(ctx context.Context, in FAQInput, by uuid.UUID) (*domain.FAQ, error) {
	enabled, _ := languages(ctx, s.repo)
	return s.repo.CreateFAQ(ctx, &domain.FAQ{
		Question: i18n.Expand(ctx, in.Question, enabled, s.translator),
		Answer:   i18n.Expand(ctx, in.Answer, enabled, s.translator),
		Position: in.Position,
		Audit:    domain.Audit{CreatedBy: &by},
	})
}

// UpdateFAQ overwrites an FAQ entry with expanded copy.
func (s *CMSService) UpdateFAQ(ctx context.Context, id uuid.UUID, in FAQInput, by uuid.UUID) (*domain.FAQ, error) {
	enabled, _ := languages(ctx, s.repo)
	faq, err := s.repo.UpdateFAQ(ctx, &domain.FAQ{
		ID:       id,
		Question: i18n.Expand(ctx, in.Question, enabled, s.translator),
		Answer:   i18n.Expand(ctx, in.Answer, enabled, s.translator),
		Position: in.Position,
		Audit:    domain.Audit{UpdatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("faq not found")
		}
		return nil, err
	}
	return faq, nil
}

// ListFAQs returns localized FAQ entries in display order.
func (s *CMSService) ListFAQs(ctx context.Context, lang string) ([]domain.FAQView, error) {
	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.FAQView, 0, len(faqs))
	for i := range faqs {
		views = append(views, faqs[i].Localize(lang, def))
	}
	return views, nil
}

// DeleteFAQ soft-deletes an FAQ entry.
func (s *CMSService) DeleteFAQ(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteFAQ(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("faq not found")
	}
	return err
}

// BannerInput carries admin banner writes.
type BannerInput struct {
	Caption    any
	MediaID    *uuid.UUID
	LinkURL    string
	ActiveFrom *time.Time
	ActiveTo   *time.Time
}

func validateBannerWindow(in BannerInput) error {
	if in.ActiveFrom != nil && in.ActiveTo != nil && in.ActiveTo.Before(*in.ActiveFrom) {
		return apperr.Unprocessable("activation window end must not precede its start")
	}
	return nil
}

// CreateBanner creates a banner. IsActive is derived from the activation
// window rather than taken from the caller.
func (s *CMSService) CreateBanner(ctx context.Context, in BannerInput, by uuid.UUID) (*domain.HeaderBanner, error) {
	if err := validateBannerWindow(in); err != nil {
		return nil, err
	}

	enabled, _ := languages(ctx, s.repo)
	banner := &domain.HeaderBanner{
		Caption:    i18n.Expand(ctx, in.Caption, enabled, s.translator),
		MediaID:    in.MediaID,
		LinkURL:    in.LinkURL,
		ActiveFrom: in.ActiveFrom,
		ActiveTo:   in.ActiveTo,
		Audit:      domain.Audit{CreatedBy: &by},
	}
	banner.IsActive = banner.InWindow(time.Now())

	return s.repo.CreateBanner(ctx, banner)
}

// UpdateBanner overwrites a banner and re-derives IsActive from the window.
func (s *CMSService) UpdateBanner(ctx context.Context, id uuid.UUID, in BannerInput, by uuid.UUID) (*domain.HeaderBanner, error) {
	if err := validateBannerWindow(in); err != nil {
		return nil, err
	}

	enabled, _ := languages(ctx, s.repo)
	banner := &domain.HeaderBanner{
		ID:         id,
		Caption:    i18n.Expand(ctx, in.Caption, enabled, s.translator),
		MediaID:    in.MediaID,
		LinkURL:    in.LinkURL,
		ActiveFrom: in.ActiveFrom,
		ActiveTo:   in.ActiveTo,
		Audit:      domain.Audit{UpdatedBy: &by},
	}
	banner.IsActive = banner.InWindow(time.Now())

	updated, err := s.repo.UpdateBanner(ctx, banner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("banner not found")
		}
		return nil, err
	}
	return updated, nil
}

// ActiveBanners returns the localized banners currently in their window.
func (s *CMSService) ActiveBanners(ctx context.Context, lang string) ([]domain.BannerView, error) {
	banners, err := s.repo.ListActiveBanners(ctx)
	if err != nil {
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.BannerView, 0, len(banners))
	for i := range banners {
		views = append(views, banners[i].Localize(lang, def))
	}
	return views, nil
}

// ListBanners returns every banner for admins, window state included.
func (s *CMSService) ListBanners(ctx context.Context) ([]domain.HeaderBanner, error) {
	return s.repo.ListBanners(ctx)
}

// DeleteBanner soft-deletes a banner.
func (s *CMSService) DeleteBanner(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteBanner(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("banner not found")
	}
	return err
}

// TeamMemberInput carries admin team page writes.
type TeamMemberInput struct {
	Name         string
	Role         any
	Bio          any
	PhotoMediaID *uuid.UUID
	Position     int
}

// CreateTeamMember adds a person to the team page with expanded copy.
func (s *CMSService) CreateTeamMember(ctx context.Context, in TeamMemberInput, by uuid.UUID) (*domain.TeamMember, error) {
	enabled, _ := languages(ctx, s.repo)
	return s.repo.CreateTeamMember(ctx, &domain.TeamMember{
		Name:         in.Name,
		RoleText:     i18n.Expand(ctx, in.Role, enabled, s.translator),
		Bio:          i18n.Expand(ctx, in.Bio, enabled, s.translator),
		PhotoMediaID: in.PhotoMediaID,
		Position:     in.Position,
		Audit:        domain.Audit{CreatedBy: &by},
	})
}

// UpdateTeamMember overwrites a team page entry with expanded copy.
func (s *CMSService) UpdateTeamMember(ctx context.Context, id uuid.UUID, in TeamMemberInput, by uuid.UUID) (*domain.TeamMember, error) {
	enabled, _ := languages(ctx, s.repo)
	member, err := s.repo.UpdateTeamMember(ctx, &domain.TeamMember{
		ID:           id,
		Name:         in.Name,
		RoleText:     i18n.Expand(ctx, in.Role, enabled, s.translator),
		Bio:          i18n.Expand(ctx, in.Bio, enabled, s.translator),
		PhotoMediaID: in.PhotoMediaID,
		Position:     in.Position,
		Audit:        domain.Audit{UpdatedBy: &by},
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("team member not found")
		}
		return nil, err
	}
	return member, nil
}

// ListTeamMembers returns the localized team page in display order.
func (s *CMSService) ListTeamMembers(ctx context.Context, lang string) ([]domain.TeamMemberView, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	views := make([]domain.TeamMemberView, 0, len(members))
	for i := range members {
		views = append(views, members[i].Localize(lang, def))
	}
	return views, nil
}

// DeleteTeamMember soft-deletes a team page entry.
func (s *CMSService) DeleteTeamMember(ctx context.Context, id, by uuid.UUID) error {
	err := s.repo.SoftDeleteTeamMember(ctx, id, by)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("team member not found")
	}
	return err
}

// AboutUsInput carries the about-us page document.
type AboutUsInput struct {
	Title    any
	Sections []map[string]any
}

// SaveAboutUs upserts the about-us singleton. Only the title is expanded;
// section content is stored as authored and localized recursively on read.
func (s *CMSService) SaveAboutUs(ctx context.Context, in AboutUsInput, by uuid.UUID) (*domain.AboutUsPage, error) {
	enabled, _ := languages(ctx, s.repo)
	return s.repo.UpsertAboutUsPage(ctx, &domain.AboutUsPage{
		Title:    i18n.Expand(ctx, in.Title, enabled, s.translator),
		Sections: in.Sections,
		Audit:    domain.Audit{UpdatedBy: &by},
	})
}

// AboutUsView is the localized about-us page.
type AboutUsView struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Sections any       `json:"sections"`
}

// GetAboutUs returns the about-us page with every multi-language leaf in its
// sections collapsed for the resolved language.
func (s *CMSService) GetAboutUs(ctx context.Context, lang string) (*AboutUsView, error) {
	page, err := s.repo.GetAboutUsPage(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("about us page not set")
		}
		return nil, err
	}

	_, def := languages(ctx, s.repo)
	return &AboutUsView{
		ID:       page.ID,
		Title:    i18n.Resolve(page.Title, lang, def),
		Sections: i18n.LocalizeValue(page.Sections, lang, def),
	}, nil
}

// SettingsInput carries the general settings document.
type SettingsInput struct {
	StoreName        string
	EnabledLanguages []string
	DefaultLanguage  string
	SupportEmail     string
}

// GetSettings returns the settings singleton.
func (s *CMSService) GetSettings(ctx context.Context) (*domain.GeneralSettings, error) {
	return s.repo.GetSettings(ctx)
}

// UpdateSettings overwrites the settings singleton. The default language must
// be a known code and a member of the enabled set.
func (s *CMSService) UpdateSettings(ctx context.Context, in SettingsInput, by uuid.UUID) (*domain.GeneralSettings, error) {
	if len(in.EnabledLanguages) == 0 {
		return nil, apperr.Unprocessable("at least one language must be enabled")
	}
	defaultEnabled := false
	for _, code := range in.EnabledLanguages {
		if !i18n.IsCode(code) {
			return nil, apperr.Unprocessable("unknown language code: " + code)
		}
		if code == in.DefaultLanguage {
			defaultEnabled = true
		}
	}
	if !defaultEnabled {
		return nil, apperr.Unprocessable("default language must be one of the enabled languages")
	}

	return s.repo.UpdateSettings(ctx, &domain.GeneralSettings{
		StoreName:        in.StoreName,
		EnabledLanguages: in.EnabledLanguages,
		DefaultLanguage:  in.DefaultLanguage,
		SupportEmail:     in.SupportEmail,
		Audit:            domain.Audit{UpdatedBy: &by},
	})
}
