package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// CancelRequestHandler handles the admin side of the cancellation workflow.
type CancelRequestHandler struct {
	service  *services.CancellationService
	validate *validator.Validate
	log      *zap.Logger
}

// NewCancelRequestHandler creates a new CancelRequestHandler.
func NewCancelRequestHandler(service *services.CancellationService, log *zap.Logger) *CancelRequestHandler {
	return &CancelRequestHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterAdminRoutes registers the cancellation routes for central admins.
func (h *CancelRequestHandler) RegisterAdminRoutes(router fiber.Router) {
	routes := router.Group("/cancel-requests")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Patch("/:id", h.HandleResolve)
	router.Get("/orders/:id/cancel-requests", h.HandleListForOrder)
	router.Post("/orders/:id/cancel-requests", h.HandleCreate)
}

// HandleList lists requests, optionally filtered by ?status=.
func (h *CancelRequestHandler) HandleList(c *fiber.Ctx) error {
	reqs, err := h.service.ListRequests(c.UserContext(), models.CancelRequestStatus(c.Query("status")))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve cancel requests", err)
	}
	return c.JSON(reqs)
}

// HandleGet retrieves one request.
func (h *CancelRequestHandler) HandleGet(c *fiber.Ctx) error {
	req, err := h.service.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve cancel request", err)
	}
	return c.JSON(req)
}

// HandleListForOrder returns the request history of one order.
func (h *CancelRequestHandler) HandleListForOrder(c *fiber.Ctx) error {
	reqs, err := h.service.ListRequestsForOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve cancel requests", err)
	}
	return c.JSON(reqs)
}

// CreateCancelRequest is the body for opening a request.
type CreateCancelRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

// HandleCreate opens a request on behalf of a parent.
func (h *CancelRequestHandler) HandleCreate(c *fiber.Ctx) error {
	var body CreateCancelRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, body); !ok {
		return err
	}
	req, err := h.service.RequestCancellation(c.UserContext(), c.Params("id"), body.Reason, mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not create cancel request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// ResolveCancelRequest is the body of an admin decision.
type ResolveCancelRequest struct {
	Decision  string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	AdminNote string `json:"adminNote" validate:"max=1000"`
}

// HandleResolve approves or rejects a pending request.
func (h *CancelRequestHandler) HandleResolve(c *fiber.Ctx) error {
	var body ResolveCancelRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, body); !ok {
		return err
	}
	req, err := h.service.ResolveCancellation(c.UserContext(), c.Params("id"), models.CancelRequestStatus(body.Decision), body.AdminNote, mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not resolve cancel request", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cancel request resolved",
		"request": req,
	})
}
