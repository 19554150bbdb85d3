package domain

import "time"

const DefaultProjectStatus = "completed"

type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title" form:"title" validate:"required,max=200"`
	Description     string   `json:"description" form:"description" validate:"required,max=500"`
	LongDescription string   `json:"long_description,omitempty" form:"long_description"`
	DemoURL         string   `json:"demo_url,omitempty" form:"demo_url" validate:"omitempty,url"`
	GitHubURL       string   `json:"github_url,omitempty" form:"github_url" validate:"omitempty,url"`
	ImageURL        string   `json:"image_url,omitempty" form:"image_url"`
	Technologies    []string `json:"technologies" form:"technologies"`
	Featured        bool     `json:"featured" form:"featured"`
	Status          string   `json:"status" form:"status" validate:"required"`
	OrderIndex      int      `json:"order_index" form:"order_index" validate:"min=0"`
	Timestamps
}

func (p *Project) GetID() string          { return p.ID }
func (p *Project) SetID(id string)        { p.ID = id }
func (p *Project) Image() string          { return p.ImageURL }
func (p *Project) SetImage(url string)    { p.ImageURL = url }
func (p *Project) ImageNamespace() string { return "projects" }

func (p *Project) BeforeSave(now time.Time) {
	p.Title = CleanText(p.Title)
	p.Description = CleanText(p.Description)
	p.LongDescription = CleanText(p.LongDescription)
	p.DemoURL = CleanText(p.DemoURL)
	p.GitHubURL = CleanText(p.GitHubURL)
	p.Status = CleanText(p.Status)
	p.Technologies = cleanList(p.Technologies)
	if p.Status == "" {
		p.Status = DefaultProjectStatus
	}
	p.touch(now)
}

func (p *Project) Validate() error {
	return ValidateStruct(p)
}

// FeaturedProjects keeps the featured subset in input order.
func FeaturedProjects(projects []*Project) []*Project {
	out := make([]*Project, 0, len(projects))
	for _, p := range projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func CountFeatured(projects []*Project) int {
	n := 0
	for _, p := range projects {
		if p.Featured {
			n++
		}
	}
	return n
}
