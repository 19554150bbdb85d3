package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is an ordered, admin-managed content record.
type Entity interface {
	GetID() string
	SetID(id string)
	Created() time.Time
	SetCreated(t time.Time)
	BeforeSave(now time.Time)
	Validate() error
}

// ImageEntity is an Entity that carries one uploaded image URL.
type ImageEntity interface {
	Entity
	Image() string
	SetImage(url string)
	// ImageNamespace is the storage folder uploads for this type go to.
	ImageNamespace() string
}

// Timestamps is embedded by every ordered content type.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Timestamps) Created() time.Time     { return t.CreatedAt }
func (t *Timestamps) SetCreated(c time.Time) { t.CreatedAt = c }

func (t *Timestamps) touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed record id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
