package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/middleware"
	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrDuplicatePendingRequest),
		errors.Is(err, services.ErrAlreadyProcessed):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidDecision):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error body. Internal failures are logged and their cause hidden.
func respondError(c *fiber.Ctx, log *zap.Logger, message string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error(message, zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validateBody runs struct validation and writes a 400 on failure. It reports whether
// the body is valid.
func validateBody(c *fiber.Ctx, validate *validator.Validate, body any) (bool, error) {
	err := validate.Struct(body)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, badRequest(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func mustActor(c *fiber.Ctx) models.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}

const dateLayout = "2006-01-02"

// parseOrderFilter reads status, schoolId, classId and the from/to dates from the query
// string. Both dates are whole days in loc; to is inclusive.
func parseOrderFilter(c *fiber.Ctx, loc *time.Location) (models.OrderFilter, error) {
	var filter models.OrderFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, err
	}
	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return filter, fmt.Errorf("from must be YYYY-MM-DD: %w", err)
		}
		t = t.UTC()
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return filter, fmt.Errorf("to must be YYYY-MM-DD: %w", err)
		}
		t = t.AddDate(0, 0, 1).UTC()
		filter.To = &t
	}
	return filter, nil
}
