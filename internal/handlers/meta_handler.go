package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// StatusHandler exposes the status label tables.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// RegisterRoutes registers the public status routes.
func (h *StatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/statuses", h.HandleGetStatuses)
}

// HandleGetStatuses returns labels, colors and the allowed next statuses of each code.
func (h *StatusHandler) HandleGetStatuses(c *fiber.Ctx) error {
	transitions := make(map[string][]models.OrderStatus)
	for _, s := range models.AllOrderStatuses() {
		next := models.NextStatuses(s)
		if next == nil {
			next = []models.OrderStatus{}
		}
		transitions[string(s)] = next
	}
	return c.JSON(fiber.Map{
		"catalog":     models.Catalog(),
		"transitions": transitions,
	})
}

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	service *services.AuditService
	log     *zap.Logger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(service *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{service: service, log: log}
}

// RegisterAdminRoutes registers the audit routes under an admin-only router.
func (h *AuditHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/audit-logs", h.HandleList)
}

// HandleList returns the most recent entries, filtered by ?entity=, ?entityId= and ?limit=.
func (h *AuditHandler) HandleList(c *fiber.Ctx) error {
	filter := models.AuditFilter{
		Entity:   models.AuditEntity(c.Query("entity")),
		EntityID: c.Query("entityId"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, err)
		}
		filter.Limit = limit
	}
	entries, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve audit logs", err)
	}
	return c.JSON(entries)
}
