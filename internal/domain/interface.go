package domain

import (
	"context"
	"time"
)

// CollectionRepository stores one ordered content type.
type CollectionRepository[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ProjectRepository = CollectionRepository[*Project]
type SkillRepository = CollectionRepository[*Skill]
type ExperienceRepository = CollectionRepository[*Experience]
type EducationRepository = CollectionRepository[*Education]
type CertificationRepository = CollectionRepository[*Certification]

// SingletonRepository stores a table expected to hold at most one row.
// Get returns (nil, nil) when the table is empty.
type SingletonRepository[T any] interface {
	Get(ctx context.Context) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
}

type ProfileRepository = SingletonRepository[Profile]
type ContactInfoRepository = SingletonRepository[ContactInfo]

type MessageRepository interface {
	List(ctx context.Context) ([]*ContactMessage, error)
	GetByID(ctx context.Context, id string) (*ContactMessage, error)
	Create(ctx context.Context, msg *ContactMessage) error
	UpdateStatus(ctx context.Context, id string, status MessageStatus) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	// Register stores a new account and decides its role: the first
	// account is admin, every later one a user.
	Register(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type VisitorRepository interface {
	Record(ctx context.Context, v *VisitorMetric) error
	Stats(ctx context.Context, now time.Time) (*VisitorStats, error)
	Recent(ctx context.Context, limit int) ([]VisitorMetric, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
