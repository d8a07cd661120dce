package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// FallbackProvider supplies courses when the data store cannot be read.
type FallbackProvider interface {
	Courses() []model.Course
}

// CatalogService serves the read-only course catalog.
type CatalogService struct {
	courses  CourseRepositoryInterface
	fallback FallbackProvider
}

// NewCatalogService creates a CatalogService. A nil fallback surfaces store errors.
func NewCatalogService(courses CourseRepositoryInterface, fallback FallbackProvider) *CatalogService {
	return &CatalogService{courses: courses, fallback: fallback}
}

// List returns active courses, falling back to the provider on store errors.
func (s *CatalogService) List(ctx context.Context) (*model.CourseListResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		if s.fallback == nil {
			return nil, fmt.Errorf("%w: list courses: %w", ErrDataStore, err)
		}
		log.Warn().Err(err).Msg("course store unavailable, serving fallback catalog")
		return &model.CourseListResponse{Courses: activeOnly(s.fallback.Courses()), Source: model.SourceFallback}, nil
	}
	return &model.CourseListResponse{Courses: activeOnly(courses), Source: model.SourceDatabase}, nil
}

// Get returns one active course.
// Returns ErrCourseNotFound when neither the store nor the fallback knows the id.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.CourseResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if s.fallback == nil {
			return nil, fmt.Errorf("%w: get course: %w", ErrDataStore, err)
		}
		log.Warn().Err(err).Str("course_id", id).Msg("course store unavailable, serving fallback catalog")
		for _, c := range s.fallback.Courses() {
			if c.ID == id && c.IsActive {
				return &model.CourseResponse{Course: c, Source: model.SourceFallback}, nil
			}
		}
		return nil, ErrCourseNotFound
	}
	if course == nil || !course.IsActive {
		return nil, ErrCourseNotFound
	}
	return &model.CourseResponse{Course: *course, Source: model.SourceDatabase}, nil
}

func activeOnly(courses []model.Course) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
