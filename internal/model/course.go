package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is a paid training offered in the catalog.
type Course struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Price               decimal.Decimal `json:"price"`
	Currency            string          `json:"currency"`
	MaxParticipants     int             `json:"max_participants"`
	CurrentParticipants int             `json:"current_participants"`
	StartDates          []time.Time     `json:"start_dates"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"-"`
}

// SeatsLeft returns the remaining capacity. Zero or less means the course is full.
func (c *Course) SeatsLeft() int {
	return c.MaxParticipants - c.CurrentParticipants
}

// Catalog sources reported to clients.
const (
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// CourseListResponse is the API response DTO for GET /api/courses.
type CourseListResponse struct {
	Courses []Course `json:"courses"`
	Source  string   `json:"source"`
}

// CourseResponse is the API response DTO for GET /api/courses/:id.
type CourseResponse struct {
	Course Course `json:"course"`
	Source string `json:"source"`
}
