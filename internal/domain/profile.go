package domain

import "time"

// Profile is the singleton "about me" record behind the hero and about
// sections.
type Profile struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" form:"title" validate:"required,max=100"`
	Description string    `json:"description" form:"description" validate:"required,max=200"`
	Bio         string    `json:"bio" form:"bio" validate:"required,max=1000"`
	ImageURL    string    `json:"image_url,omitempty" form:"image_url"`
	LinkedInURL string    `json:"linkedin_url,omitempty" form:"linkedin_url" validate:"omitempty,url"`
	GitHubURL   string    `json:"github_url,omitempty" form:"github_url" validate:"omitempty,url"`
	TwitterURL  string    `json:"twitter_url,omitempty" form:"twitter_url" validate:"omitempty,url"`
	ResumeURL   string    `json:"resume_url,omitempty" form:"resume_url" validate:"omitempty,url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const ProfileImageNamespace = "profile"

func (p *Profile) BeforeSave(now time.Time) {
	p.Title = CleanText(p.Title)
	p.Description = CleanText(p.Description)
	p.Bio = CleanText(p.Bio)
	p.LinkedInURL = CleanText(p.LinkedInURL)
	p.GitHubURL = CleanText(p.GitHubURL)
	p.TwitterURL = CleanText(p.TwitterURL)
	p.ResumeURL = CleanText(p.ResumeURL)
	p.UpdatedAt = now
}

func (p *Profile) Validate() error {
	return ValidateStruct(p)
}

// ContactInfo is the singleton record of public contact details.
type ContactInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty" form:"email" validate:"omitempty,email,max=255"`
	Phone     string    `json:"phone,omitempty" form:"phone" validate:"max=20"`
	Location  string    `json:"location,omitempty" form:"location" validate:"max=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ContactInfo) BeforeSave(now time.Time) {
	c.Email = CleanText(c.Email)
	c.Phone = CleanText(c.Phone)
	c.Location = CleanText(c.Location)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *ContactInfo) Validate() error {
	return ValidateStruct(c)
}
