package leads

import (
	"strings"
	"time"
)

// Lead kinds. Contact submissions come from the general enquiry form,
// careers submissions from the jobs page.
const (
	KindContact = "contact"
	KindCareers = "careers"
)

// Lead represents one form submission.
type Lead struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message,omitempty"`
	ResumeURL string    `json:"resume_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLeadRequest is the request body for both form endpoints. Kind is set
// by the route, never by the client.
type CreateLeadRequest struct {
	Kind      string `json:"-"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ResumeURL string `json:"resume_url"`
}

// Validate checks the request fields.
func (r *CreateLeadRequest) Validate() error {
	if r.Kind != KindContact && r.Kind != KindCareers {
		return ErrInvalidKind
	}
	if strings.TrimSpace(r.FullName) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.Phone) == "" {
		return ErrMissingContact
	}
	return nil
}
