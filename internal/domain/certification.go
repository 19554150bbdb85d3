package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type CertStatus string

const (
	CertValid    CertStatus = "valid"
	CertExpired  CertStatus = "expired"
	CertNoExpiry CertStatus = "no_expiry"
)

type Certification struct {
	ID            string `json:"id"`
	Title         string `json:"title" form:"title" validate:"required,max=200"`
	Issuer        string `json:"issuer" form:"issuer" validate:"required,max=100"`
	Description   string `json:"description,omitempty" form:"description" validate:"max=500"`
	IssueDate     string `json:"issue_date,omitempty" form:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    string `json:"expiry_date,omitempty" form:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID  string `json:"credential_id,omitempty" form:"credential_id" validate:"max=100"`
	CredentialURL string `json:"credential_url,omitempty" form:"credential_url" validate:"omitempty,url"`
	ImageURL      string `json:"image_url,omitempty" form:"image_url"`
	OrderIndex    int    `json:"order_index" form:"order_index" validate:"min=0"`
	Timestamps
}

func (c *Certification) GetID() string          { return c.ID }
func (c *Certification) SetID(id string)        { c.ID = id }
func (c *Certification) Image() string          { return c.ImageURL }
func (c *Certification) SetImage(url string)    { c.ImageURL = url }
func (c *Certification) ImageNamespace() string { return "certifications" }

func (c *Certification) BeforeSave(now time.Time) {
	c.Title = CleanText(c.Title)
	c.Issuer = CleanText(c.Issuer)
	c.Description = CleanText(c.Description)
	c.IssueDate = CleanText(c.IssueDate)
	c.ExpiryDate = CleanText(c.ExpiryDate)
	c.CredentialID = CleanText(c.CredentialID)
	c.CredentialURL = CleanText(c.CredentialURL)
	c.touch(now)
}

func (c *Certification) Validate() error {
	return ValidateStruct(c)
}

// Status classifies the certification against now's calendar date. A
// certification expiring today is still valid.
func (c *Certification) Status(now time.Time) CertStatus {
	if c.ExpiryDate == "" {
		return CertNoExpiry
	}
	expiry, ok := parseDate(c.ExpiryDate)
	if !ok {
		return CertValid
	}
	if expiry.Before(dayOf(now)) {
		return CertExpired
	}
	return CertValid
}

func certificationStructValidation(sl validator.StructLevel) {
	cert := sl.Current().Interface().(Certification)

	issue, ok := parseDate(cert.IssueDate)
	if !ok {
		return
	}
	expiry, ok := parseDate(cert.ExpiryDate)
	if !ok {
		return
	}
	if expiry.Before(issue) {
		sl.ReportError(cert.ExpiryDate, "expiry_date", "ExpiryDate", "expiry_after_issue", "")
	}
}

// CertificationView pairs a certification with its status for rendering.
type CertificationView struct {
	*Certification
	Status CertStatus `json:"status"`
}

func CertificationViews(certs []*Certification, now time.Time) []CertificationView {
	out := make([]CertificationView, len(certs))
	for i, c := range certs {
		out[i] = CertificationView{Certification: c, Status: c.Status(now)}
	}
	return out
}
