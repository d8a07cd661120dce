// Package catalog holds the built-in course list used to seed the database
// and to keep the catalog readable while the database is down.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

//go:embed courses.json
var coursesJSON []byte

// StaticCatalog serves a fixed course list.
type StaticCatalog struct {
	courses []model.Course
}

// NewStaticCatalog decodes the embedded course list.
func NewStaticCatalog() (*StaticCatalog, error) {
	return parse(coursesJSON)
}

func parse(data []byte) (*StaticCatalog, error) {
	var courses []model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decode course catalog: %w", err)
	}
	seen := make(map[string]bool, len(courses))
	for _, c := range courses {
		if c.ID == "" {
			return nil, fmt.Errorf("course catalog: entry %q has no id", c.Title)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("course catalog: duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return &StaticCatalog{courses: courses}, nil
}

// Courses returns a copy of the list so callers cannot mutate the catalog.
func (s *StaticCatalog) Courses() []model.Course {
	out := make([]model.Course, len(s.courses))
	copy(out, s.courses)
	return out
}
