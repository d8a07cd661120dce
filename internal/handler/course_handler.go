package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// CatalogServiceInterface defines the interface for catalog reads.
type CatalogServiceInterface interface {
	List(ctx context.Context) (*model.CourseListResponse, error)
	Get(ctx context.Context, id string) (*model.CourseResponse, error)
}

// CourseHandler serves the public course catalog.
type CourseHandler struct {
	service CatalogServiceInterface
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(svc CatalogServiceInterface) *CourseHandler {
	return &CourseHandler{service: svc}
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	resp, err := h.service.List(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list courses")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "course catalog unavailable"})
	}
	return c.JSON(resp)
}

// GetCourse handles GET /api/courses/:id.
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	resp, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
		}
		if errors.Is(err, service.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
		}
		log.Error().Err(err).Str("course_id", id).Msg("failed to get course")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "course catalog unavailable"})
	}
	return c.JSON(resp)
}
