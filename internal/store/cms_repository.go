/**
 * @description
 * Database operations for CMS content: blogs, FAQs, header banners, team
 * members, the about-us page, general settings and uploaded media metadata.
 */
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const blogColumns = `id, slug, title, body, body_html, cover_media_id, is_published, published_at, created_at, updated_at`

// CreateBlog inserts a blog article.
func (r *Repository) CreateBlog(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	query := `
        INSERT INTO blogs (slug, title, body, body_html, cover_media_id, is_published, published_at, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING ` + blogColumns
	row := r.db.QueryRow(ctx, query,
		b.Slug, b.Title, b.Body, b.BodyHTML, b.CoverMediaID, b.IsPublished, b.PublishedAt, b.CreatedBy)

	created, err := scanBlog(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateBlog overwrites the mutable fields of a blog.
func (r *Repository) UpdateBlog(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	query := `
        UPDATE blogs
        SET slug = $2, title = $3, body = $4, body_html = $5, cover_media_id = $6,
            is_published = $7, published_at = $8, updated_at = NOW(), updated_by = $9
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + blogColumns
	updated, err := scanBlog(r.db.QueryRow(ctx, query,
		b.ID, b.Slug, b.Title, b.Body, b.BodyHTML, b.CoverMediaID, b.IsPublished, b.PublishedAt, b.UpdatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// GetBlogBySlug fetches a blog by its unique slug.
func (r *Repository) GetBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1 AND is_deleted = FALSE`
	b, err := scanBlog(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

// GetBlogByID fetches a blog by id.
func (r *Repository) GetBlogByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1 AND is_deleted = FALSE`
	b, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

// ListBlogs returns a page of blogs and the total count. When publishedOnly
// is set, drafts are excluded.
func (r *Repository) ListBlogs(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Blog, int, error) {
	filter := `is_deleted = FALSE`
	if publishedOnly {
		filter += ` AND is_published = TRUE`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs WHERE `+filter).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+blogColumns+`
        FROM blogs
        WHERE `+filter+`
        ORDER BY COALESCE(published_at, created_at) DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, total, rows.Err()
}

// SoftDeleteBlog marks a blog deleted.
func (r *Repository) SoftDeleteBlog(ctx context.Context, id, by uuid.UUID) error {
	return r.softDelete(ctx, "blogs", id, by)
}

const faqColumns = `id, question, answer, position, created_at, updated_at`

// CreateFAQ inserts a question/answer pair.
func (r *Repository) CreateFAQ(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error) {
	query := `
        INSERT INTO faqs (question, answer, position, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $4)
        RETURNING ` + faqColumns
	created, err := scanFAQ(r.db.QueryRow(ctx, query, f.Question, f.Answer, f.Position, f.CreatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateFAQ overwrites a question/answer pair.
func (r *Repository) UpdateFAQ(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error) {
	query := `
        UPDATE faqs
        SET question = $2, answer = $3, position = $4, updated_at = NOW(), updated_by = $5
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + faqColumns
	updated, err := scanFAQ(r.db.QueryRow(ctx, query, f.ID, f.Question, f.Answer, f.Position, f.UpdatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ListFAQs returns all FAQs in display order.
func (r *Repository) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+faqColumns+`
        FROM faqs
        WHERE is_deleted = FALSE
        ORDER BY position, created_at`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, *f)
	}
	return faqs, rows.Err()
}

// SoftDeleteFAQ marks an FAQ deleted.
func (r *Repository) SoftDeleteFAQ(ctx context.Context, id, by uuid.UUID) error {
	return r.softDelete(ctx, "faqs", id, by)
}

const bannerColumns = `id, caption, media_id, link_url, active_from, active_to, is_active, created_at, updated_at`

// CreateBanner inserts a header banner.
func (r *Repository) CreateBanner(ctx context.Context, b *domain.HeaderBanner) (*domain.HeaderBanner, error) {
	query := `
        INSERT INTO header_banners (caption, media_id, link_url, active_from, active_to, is_active, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        RETURNING ` + bannerColumns
	row := r.db.QueryRow(ctx, query,
		b.Caption, b.MediaID, b.LinkURL, b.ActiveFrom, b.ActiveTo, b.IsActive, b.CreatedBy)

	created, err := scanBanner(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateBanner overwrites the mutable fields of a banner.
func (r *Repository) UpdateBanner(ctx context.Context, b *domain.HeaderBanner) (*domain.HeaderBanner, error) {
	query := `
        UPDATE header_banners
        SET caption = $2, media_id = $3, link_url = $4, active_from = $5, active_to = $6,
            is_active = $7, updated_at = NOW(), updated_by = $8
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + bannerColumns
	updated, err := scanBanner(r.db.QueryRow(ctx, query,
		b.ID, b.Caption, b.MediaID, b.LinkURL, b.ActiveFrom, b.ActiveTo, b.IsActive, b.UpdatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ListActiveBanners returns the banners currently shown on the storefront.
func (r *Repository) ListActiveBanners(ctx context.Context) ([]domain.HeaderBanner, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+bannerColumns+`
        FROM header_banners
        WHERE is_active = TRUE AND is_deleted = FALSE
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var banners []domain.HeaderBanner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

// ListBanners returns every banner for the admin view.
func (r *Repository) ListBanners(ctx context.Context) ([]domain.HeaderBanner, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+bannerColumns+`
        FROM header_banners
        WHERE is_deleted = FALSE
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var banners []domain.HeaderBanner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

// SyncBannerWindows flips is_active to match each banner's activation window.
// Returns how many rows changed.
func (r *Repository) SyncBannerWindows(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE header_banners
        SET is_active = ((active_from IS NULL OR active_from <= $1) AND (active_to IS NULL OR active_to >= $1)),
            updated_at = NOW()
        WHERE is_deleted = FALSE
          AND is_active <> ((active_from IS NULL OR active_from <= $1) AND (active_to IS NULL OR active_to >= $1))`, now)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

// SoftDeleteBanner marks a banner deleted.
func (r *Repository) SoftDeleteBanner(ctx context.Context, id, by uuid.UUID) error {
	return r.softDelete(ctx, "header_banners", id, by)
}

const teamMemberColumns = `id, name, role, bio, photo_media_id, position, created_at, updated_at`

// CreateTeamMember inserts a team page entry.
func (r *Repository) CreateTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	query := `
        INSERT INTO team_members (name, role, bio, photo_media_id, position, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING ` + teamMemberColumns
	row := r.db.QueryRow(ctx, query, m.Name, m.RoleText, m.Bio, m.PhotoMediaID, m.Position, m.CreatedBy)

	created, err := scanTeamMember(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// UpdateTeamMember overwrites a team page entry.
func (r *Repository) UpdateTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	query := `
        UPDATE team_members
        SET name = $2, role = $3, bio = $4, photo_media_id = $5, position = $6,
            updated_at = NOW(), updated_by = $7
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + teamMemberColumns
	updated, err := scanTeamMember(r.db.QueryRow(ctx, query,
		m.ID, m.Name, m.RoleText, m.Bio, m.PhotoMediaID, m.Position, m.UpdatedBy))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ListTeamMembers returns the team page in display order.
func (r *Repository) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+teamMemberColumns+`
        FROM team_members
        WHERE is_deleted = FALSE
        ORDER BY position, created_at`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// SoftDeleteTeamMember marks a team page entry deleted.
func (r *Repository) SoftDeleteTeamMember(ctx context.Context, id, by uuid.UUID) error {
	return r.softDelete(ctx, "team_members", id, by)
}

// GetAboutUsPage fetches the singleton about-us document.
func (r *Repository) GetAboutUsPage(ctx context.Context) (*domain.AboutUsPage, error) {
	var page domain.AboutUsPage
	query := `
        SELECT id, title, sections, created_at, updated_at
        FROM about_us_pages
        WHERE is_deleted = FALSE
        ORDER BY created_at
        LIMIT 1`
	err := r.db.QueryRow(ctx, query).Scan(&page.ID, &page.Title, &page.Sections, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &page, nil
}

// UpsertAboutUsPage creates or replaces the singleton about-us document.
func (r *Repository) UpsertAboutUsPage(ctx context.Context, page *domain.AboutUsPage) (*domain.AboutUsPage, error) {
	existing, err := r.GetAboutUsPage(ctx)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	var out domain.AboutUsPage
	if existing == nil {
		query := `
            INSERT INTO about_us_pages (title, sections, created_by, updated_by)
            VALUES ($1, $2, $3, $3)
            RETURNING id, title, sections, created_at, updated_at`
		err = r.db.QueryRow(ctx, query, page.Title, page.Sections, page.CreatedBy).Scan(
			&out.ID, &out.Title, &out.Sections, &out.CreatedAt, &out.UpdatedAt)
	} else {
		query := `
            UPDATE about_us_pages
            SET title = $2, sections = $3, updated_at = NOW(), updated_by = $4
            WHERE id = $1
            RETURNING id, title, sections, created_at, updated_at`
		err = r.db.QueryRow(ctx, query, existing.ID, page.Title, page.Sections, page.UpdatedBy).Scan(
			&out.ID, &out.Title, &out.Sections, &out.CreatedAt, &out.UpdatedAt)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// GetSettings fetches the general settings singleton.
func (r *Repository) GetSettings(ctx context.Context) (*domain.GeneralSettings, error) {
	var s domain.GeneralSettings
	query := `
        SELECT id, store_name, enabled_languages, default_language, support_email, created_at, updated_at
        FROM general_settings
        ORDER BY created_at
        LIMIT 1`
	err := r.db.QueryRow(ctx, query).Scan(
		&s.ID, &s.StoreName, &s.EnabledLanguages, &s.DefaultLanguage, &s.SupportEmail, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// UpdateSettings overwrites the general settings singleton.
func (r *Repository) UpdateSettings(ctx context.Context, s *domain.GeneralSettings) (*domain.GeneralSettings, error) {
	var out domain.GeneralSettings
	query := `
        UPDATE general_settings
        SET store_name = $2, enabled_languages = $3, default_language = $4, support_email = $5,
            updated_at = NOW(), updated_by = $6
        WHERE id = $1
        RETURNING id, store_name, enabled_languages, default_language, support_email, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		s.ID, s.StoreName, s.EnabledLanguages, s.DefaultLanguage, s.SupportEmail, s.UpdatedBy).Scan(
		&out.ID, &out.StoreName, &out.EnabledLanguages, &out.DefaultLanguage, &out.SupportEmail,
		&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// CreateMedia stores metadata for an uploaded file.
func (r *Repository) CreateMedia(ctx context.Context, m *domain.Media) (*domain.Media, error) {
	var created domain.Media
	query := `
        INSERT INTO media (file_name, content_type, size_bytes, storage_path, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, file_name, content_type, size_bytes, storage_path, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, m.FileName, m.ContentType, m.SizeBytes, m.StoragePath, m.CreatedBy).Scan(
		&created.ID, &created.FileName, &created.ContentType, &created.SizeBytes, &created.StoragePath,
		&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

// GetMediaByID fetches uploaded file metadata.
func (r *Repository) GetMediaByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	var m domain.Media
	query := `
        SELECT id, file_name, content_type, size_bytes, storage_path, created_at, updated_at
        FROM media
        WHERE id = $1 AND is_deleted = FALSE`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.FileName, &m.ContentType, &m.SizeBytes, &m.StoragePath, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

// softDelete marks a row deleted in any audited table.
func (r *Repository) softDelete(ctx context.Context, table string, id, by uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE `+table+`
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW(), updated_by = $2
        WHERE id = $1 AND is_deleted = FALSE`, id, by)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(&b.ID, &b.Slug, &b.Title, &b.Body, &b.BodyHTML, &b.CoverMediaID,
		&b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanFAQ(row rowScanner) (*domain.FAQ, error) {
	var f domain.FAQ
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Position, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanBanner(row rowScanner) (*domain.HeaderBanner, error) {
	var b domain.HeaderBanner
	err := row.Scan(&b.ID, &b.Caption, &b.MediaID, &b.LinkURL, &b.ActiveFrom, &b.ActiveTo,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanTeamMember(row rowScanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.RoleText, &m.Bio, &m.PhotoMediaID, &m.Position,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
