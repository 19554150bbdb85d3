package domain

import "time"

// Skill is one entry of the skills section, rated 1 to 5.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Category    string `json:"category" form:"category" validate:"required,max=50"`
	Proficiency int    `json:"proficiency" form:"proficiency" validate:"min=1,max=5"`
	IconURL     string `json:"icon_url,omitempty" form:"icon_url"`
	OrderIndex  int    `json:"order_index" form:"order_index" validate:"min=0"`
	Timestamps
}

func (s *Skill) GetID() string          { return s.ID }
func (s *Skill) SetID(id string)        { s.ID = id }
func (s *Skill) Image() string          { return s.IconURL }
func (s *Skill) SetImage(url string)    { s.IconURL = url }
func (s *Skill) ImageNamespace() string { return "skills" }

func (s *Skill) BeforeSave(now time.Time) {
	s.Name = CleanText(s.Name)
	s.Category = CleanText(s.Category)
	s.IconURL = CleanText(s.IconURL)
	s.touch(now)
}

func (s *Skill) Validate() error {
	return ValidateStruct(s)
}

// SkillGroup is every skill sharing one category string.
type SkillGroup struct {
	Category string   `json:"category" form:"category"`
	Skills   []*Skill `json:"skills" form:"skills"`
}

// GroupSkillsByCategory groups skills by exact category string. Groups
// appear in the order their category first shows up in skills, and members
// keep their input order.
func GroupSkillsByCategory(skills []*Skill) []SkillGroup {
	index := make(map[string]int)
	var groups []SkillGroup
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
