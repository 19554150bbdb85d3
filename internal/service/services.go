package service

import (
	"context"
	"database/sql"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/ratelimit"
	"github.com/Zachkp/portfolio/internal/repository"
	"github.com/Zachkp/portfolio/internal/storage"
)

// Services is every service the handlers use.
type Services struct {
	Profile        *ProfileService
	ContactInfo    *ContactInfoService
	Contact        *ContactService
	Messages       *MessageService
	Projects       *ProjectService
	Skills         *SkillService
	Experience     *ExperienceService
	Education      *EducationService
	Certifications *CertificationService
	Visitors       *VisitorService
}

type Deps struct {
	DB       *sql.DB
	Bucket   storage.Bucket
	Notifier notify.Notifier
	Limiter  ratelimit.Limiter
	// VisitorSalt keys the visitor address hash.
	VisitorSalt string
}

func New(d Deps) *Services {
	return &Services{
		Profile:        NewProfileService(repository.NewProfileRepository(d.DB), d.Bucket),
		ContactInfo:    NewContactInfoService(repository.NewContactInfoRepository(d.DB)),
		Contact:        NewContactService(repository.NewMessageRepository(d.DB), d.Notifier, d.Limiter),
		Messages:       NewMessageService(repository.NewMessageRepository(d.DB)),
		Projects:       NewProjectService(repository.NewProjectRepository(d.DB), d.Bucket),
		Skills:         NewSkillService(repository.NewSkillRepository(d.DB), d.Bucket),
		Experience:     NewContentService(repository.NewExperienceRepository(d.DB), d.Bucket),
		Education:      NewContentService(repository.NewEducationRepository(d.DB), d.Bucket),
		Certifications: NewCertificationService(repository.NewCertificationRepository(d.DB), d.Bucket),
		Visitors:       NewVisitorService(repository.NewVisitorRepository(d.DB), d.VisitorSalt),
	}
}

// AdminStats builds the admin overview: visitor numbers, content counts
// and the latest page views.
func (s *Services) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	visitors, err := s.Visitors.Stats(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Visitors.Recent(ctx, recentVisitorLimit)
	if err != nil {
		return nil, err
	}

	stats := &domain.AdminStats{VisitorStats: *visitors, RecentVisitors: recent}
	c := &stats.Content

	projects, err := s.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	c.Projects = len(projects)
	c.FeaturedCount = domain.CountFeatured(projects)

	if c.Skills, err = s.Skills.Count(ctx); err != nil {
		return nil, err
	}
	if c.Experience, err = s.Experience.Count(ctx); err != nil {
		return nil, err
	}
	if c.Education, err = s.Education.Count(ctx); err != nil {
		return nil, err
	}
	if c.Certifications, err = s.Certifications.Count(ctx); err != nil {
		return nil, err
	}

	messages, err := s.Messages.List(ctx)
	if err != nil {
		return nil, err
	}
	c.Messages = len(messages)
	if c.UnreadMessages, err = s.Messages.UnreadCount(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
