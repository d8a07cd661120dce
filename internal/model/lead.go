package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLeadSource is recorded when the form does not name one.
const DefaultLeadSource = "contact_form"

// Lead is a contact-form submission. Leads are never mutated once stored.
type Lead struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Company            *string   `json:"company,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	Message            *string   `json:"message,omitempty"`
	InterestedCourseID *string   `json:"interested_course_id,omitempty"`
	Source             string    `json:"source"`
	CreatedAt          time.Time `json:"created_at"`
}

// SubmitLeadRequest is the DTO for POST /api/leads/submit
type SubmitLeadRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Email       string `json:"email" validate:"required,notblank,emailaddr,max=255"`
	Company     string `json:"company" validate:"max=255"`
	Phone       string `json:"phone" validate:"max=64"`
	Message     string `json:"message" validate:"max=5000"`
	CourseID    string `json:"course_id" validate:"max=255"`
	CourseTitle string `json:"course_title" validate:"max=255"`
	Source      string `json:"source" validate:"max=64"`
}

// SubmitLeadResponse is returned synchronously so the code is shown even if email fails.
type SubmitLeadResponse struct {
	PromoCode string    `json:"promo_code"`
	LeadID    uuid.UUID `json:"lead_id"`
}
