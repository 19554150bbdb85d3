package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Zachkp/portfolio/internal/domain"
)

func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	fields := []string{"title", "description", "long_description", "demo_url", "github_url",
		"image_url", "technologies", "featured", "status", "order_index", "updated_at"}
	return &collection[*domain.Project]{
		db:      db,
		table:   "projects",
		fields:  fields,
		selects: coalesced(fields, "long_description", "demo_url", "github_url", "image_url", "technologies", "status"),
		values: func(p *domain.Project) []any {
			tech, _ := json.Marshal(p.Technologies)
			return []any{p.Title, p.Description, nullable(p.LongDescription), nullable(p.DemoURL),
				nullable(p.GitHubURL), nullable(p.ImageURL), string(tech), p.Featured, nullable(p.Status),
				p.OrderIndex, p.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (*domain.Project, error) {
			p := &domain.Project{}
			var tech string
			err := row.Scan(&p.ID, &p.Title, &p.Description, &p.LongDescription, &p.DemoURL,
				&p.GitHubURL, &p.ImageURL, &tech, &p.Featured, &p.Status, &p.OrderIndex,
				&p.UpdatedAt, &p.CreatedAt)
			if err != nil {
				return nil, err
			}
			p.Technologies = []string{}
			if tech != "" {
				if err := json.Unmarshal([]byte(tech), &p.Technologies); err != nil {
					return nil, err
				}
			}
			return p, nil
		},
	}
}

func NewSkillRepository(db *sql.DB) domain.SkillRepository {
	fields := []string{"name", "category", "proficiency", "icon_url", "order_index", "updated_at"}
	selects := coalesced(fields, "icon_url")
	selects[2] = "COALESCE(proficiency, 0)"
	return &collection[*domain.Skill]{
		db:      db,
		table:   "skills",
		fields:  fields,
		selects: selects,
		values: func(s *domain.Skill) []any {
			return []any{s.Name, s.Category, s.Proficiency, nullable(s.IconURL), s.OrderIndex, s.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (*domain.Skill, error) {
			s := &domain.Skill{}
			err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.IconURL, &s.OrderIndex,
				&s.UpdatedAt, &s.CreatedAt)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}
}

func NewExperienceRepository(db *sql.DB) domain.ExperienceRepository {
	fields := []string{"company", "position", "employment_type", "start_date", "end_date", "current",
		"description", "location", "company_url", "logo_url", "order_index", "updated_at"}
	return &collection[*domain.Experience]{
		db:     db,
		table:  "experience",
		fields: fields,
		selects: coalesced(fields, "employment_type", "start_date", "end_date", "description",
			"location", "company_url", "logo_url"),
		values: func(e *domain.Experience) []any {
			return []any{e.Company, e.Position, nullable(e.EmploymentType), nullable(e.StartDate),
				nullable(e.EndDate), e.Current, nullable(e.Description), nullable(e.Location),
				nullable(e.CompanyURL), nullable(e.LogoURL), e.OrderIndex, e.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (*domain.Experience, error) {
			e := &domain.Experience{}
			err := row.Scan(&e.ID, &e.Company, &e.Position, &e.EmploymentType, &e.StartDate, &e.EndDate,
				&e.Current, &e.Description, &e.Location, &e.CompanyURL, &e.LogoURL, &e.OrderIndex,
				&e.UpdatedAt, &e.CreatedAt)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
	}
}

func NewEducationRepository(db *sql.DB) domain.EducationRepository {
	fields := []string{"institution", "degree", "field_of_study", "start_date", "end_date", "current",
		"description", "location", "grade", "image_url", "order_index", "updated_at"}
	return &collection[*domain.Education]{
		db:     db,
		table:  "education",
		fields: fields,
		selects: coalesced(fields, "field_of_study", "start_date", "end_date", "description",
			"location", "grade", "image_url"),
		values: func(e *domain.Education) []any {
			return []any{e.Institution, e.Degree, nullable(e.FieldOfStudy), nullable(e.StartDate),
				nullable(e.EndDate), e.Current, nullable(e.Description), nullable(e.Location),
				nullable(e.Grade), nullable(e.ImageURL), e.OrderIndex, e.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (*domain.Education, error) {
			e := &domain.Education{}
			err := row.Scan(&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate,
				&e.Current, &e.Description, &e.Location, &e.Grade, &e.ImageURL, &e.OrderIndex,
				&e.UpdatedAt, &e.CreatedAt)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
	}
}

func NewCertificationRepository(db *sql.DB) domain.CertificationRepository {
	fields := []string{"title", "issuer", "description", "issue_date", "expiry_date", "credential_id",
		"credential_url", "image_url", "order_index", "updated_at"}
	return &collection[*domain.Certification]{
		db:     db,
		table:  "certifications",
		fields: fields,
		selects: coalesced(fields, "description", "issue_date", "expiry_date", "credential_id",
			"credential_url", "image_url"),
		values: func(c *domain.Certification) []any {
			return []any{c.Title, c.Issuer, nullable(c.Description), nullable(c.IssueDate),
				nullable(c.ExpiryDate), nullable(c.CredentialID), nullable(c.CredentialURL),
				nullable(c.ImageURL), c.OrderIndex, c.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (*domain.Certification, error) {
			c := &domain.Certification{}
			err := row.Scan(&c.ID, &c.Title, &c.Issuer, &c.Description, &c.IssueDate, &c.ExpiryDate,
				&c.CredentialID, &c.CredentialURL, &c.ImageURL, &c.OrderIndex, &c.UpdatedAt, &c.CreatedAt)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}
