package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zachkp/portfolio/internal/domain"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// Get returns the profile row, or nil when none has been saved yet.
func (r *profileRepository) Get(ctx context.Context) (*domain.Profile, error) {
	query := `
	SELECT id, title, description, bio, COALESCE(image_url, ''), COALESCE(linkedin_url, ''),
		COALESCE(github_url, ''), COALESCE(twitter_url, ''), COALESCE(resume_url, ''), updated_at
	FROM about_me
	ORDER BY updated_at DESC
	LIMIT 1`

	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query).Scan(&p.ID, &p.Title, &p.Description, &p.Bio, &p.ImageURL,
		&p.LinkedInURL, &p.GitHubURL, &p.TwitterURL, &p.ResumeURL, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
	INSERT INTO about_me (id, title, description, bio, image_url, linkedin_url, github_url, twitter_url, resume_url, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Description, p.Bio, nullable(p.ImageURL),
		nullable(p.LinkedInURL), nullable(p.GitHubURL), nullable(p.TwitterURL), nullable(p.ResumeURL),
		p.UpdatedAt.UTC())
	return err
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
	UPDATE about_me
	SET title = ?, description = ?, bio = ?, image_url = ?, linkedin_url = ?, github_url = ?,
		twitter_url = ?, resume_url = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Bio, nullable(p.ImageURL),
		nullable(p.LinkedInURL), nullable(p.GitHubURL), nullable(p.TwitterURL), nullable(p.ResumeURL),
		p.UpdatedAt.UTC(), p.ID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

type contactInfoRepository struct {
	db *sql.DB
}

func NewContactInfoRepository(db *sql.DB) domain.ContactInfoRepository {
	return &contactInfoRepository{db: db}
}

func (r *contactInfoRepository) Get(ctx context.Context) (*domain.ContactInfo, error) {
	query := `
	SELECT id, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(location, ''), created_at, updated_at
	FROM contact_info
	ORDER BY created_at
	LIMIT 1`

	c := &domain.ContactInfo{}
	err := r.db.QueryRowContext(ctx, query).Scan(&c.ID, &c.Email, &c.Phone, &c.Location, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contactInfoRepository) Create(ctx context.Context, c *domain.ContactInfo) error {
	query := `
	INSERT INTO contact_info (id, email, phone, location, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, c.ID, nullable(c.Email), nullable(c.Phone), nullable(c.Location),
		c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return err
}

func (r *contactInfoRepository) Update(ctx context.Context, c *domain.ContactInfo) error {
	query := `
	UPDATE contact_info
	SET email = ?, phone = ?, location = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, nullable(c.Email), nullable(c.Phone), nullable(c.Location),
		c.UpdatedAt.UTC(), c.ID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}
