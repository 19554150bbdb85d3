package domain

import "time"

type Experience struct {
	ID             string `json:"id"`
	Company        string `json:"company" form:"company" validate:"required"`
	Position       string `json:"position" form:"position" validate:"required"`
	EmploymentType string `json:"employment_type,omitempty" form:"employment_type"`
	StartDate      string `json:"start_date,omitempty" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"end_date,omitempty" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Current        bool   `json:"current" form:"current"`
	Description    string `json:"description,omitempty" form:"description"`
	Location       string `json:"location,omitempty" form:"location"`
	CompanyURL     string `json:"company_url,omitempty" form:"company_url"`
	LogoURL        string `json:"logo_url,omitempty" form:"logo_url"`
	OrderIndex     int    `json:"order_index" form:"order_index"`
	Timestamps
}

func (e *Experience) GetID() string          { return e.ID }
func (e *Experience) SetID(id string)        { e.ID = id }
func (e *Experience) Image() string          { return e.LogoURL }
func (e *Experience) SetImage(url string)    { e.LogoURL = url }
func (e *Experience) ImageNamespace() string { return "logos/company" }

func (e *Experience) BeforeSave(now time.Time) {
	e.Company = CleanText(e.Company)
	e.Position = CleanText(e.Position)
	e.EmploymentType = CleanText(e.EmploymentType)
	e.StartDate = CleanText(e.StartDate)
	e.EndDate = CleanText(e.EndDate)
	e.Description = CleanText(e.Description)
	e.Location = CleanText(e.Location)
	e.CompanyURL = CleanText(e.CompanyURL)
	e.touch(now)
}

func (e *Experience) Validate() error {
	return ValidateStruct(e)
}

// Period renders "start - end", with "Present" for current roles.
func (e *Experience) Period() string {
	return period(e.StartDate, e.EndDate, e.Current)
}

type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution" form:"institution" validate:"required"`
	Degree       string `json:"degree" form:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study,omitempty" form:"field_of_study"`
	StartDate    string `json:"start_date,omitempty" form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date,omitempty" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Current      bool   `json:"current" form:"current"`
	Description  string `json:"description,omitempty" form:"description"`
	Location     string `json:"location,omitempty" form:"location"`
	Grade        string `json:"grade,omitempty" form:"grade"`
	ImageURL     string `json:"image_url,omitempty" form:"image_url"`
	OrderIndex   int    `json:"order_index" form:"order_index"`
	Timestamps
}

func (e *Education) GetID() string          { return e.ID }
func (e *Education) SetID(id string)        { e.ID = id }
func (e *Education) Image() string          { return e.ImageURL }
func (e *Education) SetImage(url string)    { e.ImageURL = url }
func (e *Education) ImageNamespace() string { return "logos/institution" }

func (e *Education) BeforeSave(now time.Time) {
	e.Institution = CleanText(e.Institution)
	e.Degree = CleanText(e.Degree)
	e.FieldOfStudy = CleanText(e.FieldOfStudy)
	e.StartDate = CleanText(e.StartDate)
	e.EndDate = CleanText(e.EndDate)
	e.Description = CleanText(e.Description)
	e.Location = CleanText(e.Location)
	e.Grade = CleanText(e.Grade)
	e.touch(now)
}

func (e *Education) Validate() error {
	return ValidateStruct(e)
}

func (e *Education) Period() string {
	return period(e.StartDate, e.EndDate, e.Current)
}

func period(start, end string, current bool) string {
	from := FormatMonthYear(start)
	to := FormatMonthYear(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}

// FormatMonthYear renders a DateLayout date as "Jan 2006". Unparseable
// input is returned unchanged.
func FormatMonthYear(date string) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return t.Format("Jan 2006")
}
