package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/storage"
)

// ContentService manages one ordered, image-bearing content type.
type ContentService[T domain.ImageEntity] struct {
	repo   domain.CollectionRepository[T]
	bucket storage.Bucket
	now    func() time.Time
}

func NewContentService[T domain.ImageEntity](repo domain.CollectionRepository[T], bucket storage.Bucket) *ContentService[T] {
	return &ContentService[T]{repo: repo, bucket: bucket, now: time.Now}
}

func (s *ContentService[T]) List(ctx context.Context) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return records, nil
}

func (s *ContentService[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if !domain.ValidID(id) {
		return zero, domain.ErrNotFound
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", id, err)
	}
	return record, nil
}

func (s *ContentService[T]) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Create validates and stores a new record, uploading image first when
// one is given.
func (s *ContentService[T]) Create(ctx context.Context, record T, image *Upload) (T, error) {
	var zero T
	now := s.now().UTC()

	record.SetID("")
	record.SetCreated(time.Time{})
	record.BeforeSave(now)
	if err := record.Validate(); err != nil {
		return zero, err
	}
	record.SetID(domain.NewID())

	if image != nil {
		url, err := storeImage(ctx, s.bucket, record.ImageNamespace(), image, now)
		if err != nil {
			return zero, err
		}
		record.SetImage(url)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return zero, fmt.Errorf("create: %w", err)
	}
	return record, nil
}

// Update replaces the record with id. An empty image URL with no new file
// keeps the stored image.
func (s *ContentService[T]) Update(ctx context.Context, id string, record T, image *Upload) (T, error) {
	var zero T
	existing, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	now := s.now().UTC()

	record.SetID(id)
	record.SetCreated(existing.Created())
	if record.Image() == "" {
		record.SetImage(existing.Image())
	}
	record.BeforeSave(now)
	if err := record.Validate(); err != nil {
		return zero, err
	}

	if image != nil {
		url, err := storeImage(ctx, s.bucket, record.ImageNamespace(), image, now)
		if err != nil {
			return zero, err
		}
		record.SetImage(url)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return zero, fmt.Errorf("update %s: %w", id, err)
	}
	return record, nil
}

// UploadImage stores a new image for an existing record.
func (s *ContentService[T]) UploadImage(ctx context.Context, id string, image *Upload) (T, error) {
	var zero T
	record, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	now := s.now().UTC()

	url, err := storeImage(ctx, s.bucket, record.ImageNamespace(), image, now)
	if err != nil {
		return zero, err
	}
	record.SetImage(url)
	record.BeforeSave(now)
	if err := s.repo.Update(ctx, record); err != nil {
		return zero, fmt.Errorf("update %s: %w", id, err)
	}
	return record, nil
}

func (s *ContentService[T]) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

type ExperienceService = ContentService[*domain.Experience]
type EducationService = ContentService[*domain.Education]

type ProjectService struct {
	*ContentService[*domain.Project]
}

func NewProjectService(repo domain.ProjectRepository, bucket storage.Bucket) *ProjectService {
	return &ProjectService{NewContentService(repo, bucket)}
}

func (s *ProjectService) Featured(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FeaturedProjects(projects), nil
}

type SkillService struct {
	*ContentService[*domain.Skill]
}

func NewSkillService(repo domain.SkillRepository, bucket storage.Bucket) *SkillService {
	return &SkillService{NewContentService(repo, bucket)}
}

func (s *SkillService) Grouped(ctx context.Context) ([]domain.SkillGroup, error) {
	skills, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupSkillsByCategory(skills), nil
}

type CertificationService struct {
	*ContentService[*domain.Certification]
}

func NewCertificationService(repo domain.CertificationRepository, bucket storage.Bucket) *CertificationService {
	return &CertificationService{NewContentService(repo, bucket)}
}

// WithStatus lists certifications along with their status as of now.
func (s *CertificationService) WithStatus(ctx context.Context, now time.Time) ([]domain.CertificationView, error) {
	certs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CertificationViews(certs, now), nil
}
