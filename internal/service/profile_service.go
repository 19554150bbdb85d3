package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/storage"
)

// ProfileService owns the single "about me" record.
type ProfileService struct {
	repo   domain.ProfileRepository
	bucket storage.Bucket
	now    func() time.Time
}

func NewProfileService(repo domain.ProfileRepository, bucket storage.Bucket) *ProfileService {
	return &ProfileService{repo: repo, bucket: bucket, now: time.Now}
}

// Get returns the profile, or nil when it has never been saved.
func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Save updates the stored profile when there is one and creates it
// otherwise, so the table never holds more than one row.
func (s *ProfileService) Save(ctx context.Context, input *domain.Profile, image *Upload) (*domain.Profile, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	if input.ImageURL == "" && existing != nil {
		input.ImageURL = existing.ImageURL
	}
	input.BeforeSave(now)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := storeImage(ctx, s.bucket, domain.ProfileImageNamespace, image, now)
		if err != nil {
			return nil, err
		}
		input.ImageURL = url
	}

	if existing != nil {
		input.ID = existing.ID
		if err := s.repo.Update(ctx, input); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		return input, nil
	}

	input.ID = domain.NewID()
	if err := s.repo.Create(ctx, input); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return input, nil
}

// UploadImage replaces the profile picture of an already saved profile.
func (s *ProfileService) UploadImage(ctx context.Context, image *Upload) (*domain.Profile, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewValidationError("image", "Save the profile before uploading an image")
	}
	return s.Save(ctx, existing, image)
}

// ContactInfoService owns the single public contact details record.
type ContactInfoService struct {
	repo domain.ContactInfoRepository
	now  func() time.Time
}

func NewContactInfoService(repo domain.ContactInfoRepository) *ContactInfoService {
	return &ContactInfoService{repo: repo, now: time.Now}
}

func (s *ContactInfoService) Get(ctx context.Context) (*domain.ContactInfo, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get contact info: %w", err)
	}
	return info, nil
}

func (s *ContactInfoService) Save(ctx context.Context, input *domain.ContactInfo) (*domain.ContactInfo, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		input.CreatedAt = existing.CreatedAt
	} else {
		input.CreatedAt = time.Time{}
	}
	input.BeforeSave(s.now().UTC())
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if existing != nil {
		input.ID = existing.ID
		if err := s.repo.Update(ctx, input); err != nil {
			return nil, fmt.Errorf("update contact info: %w", err)
		}
		return input, nil
	}

	input.ID = domain.NewID()
	if err := s.repo.Create(ctx, input); err != nil {
		return nil, fmt.Errorf("create contact info: %w", err)
	}
	return input, nil
}
