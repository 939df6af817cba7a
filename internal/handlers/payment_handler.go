package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// PaymentHandler handles HTTP requests for school payments.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
	log      *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterAdminRoutes registers the payment routes for central admins.
func (h *PaymentHandler) RegisterAdminRoutes(router fiber.Router) {
	routes := router.Group("/payments")
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Patch("/:id/paid", h.HandleMarkPaid)
	routes.Delete("/:id", h.HandleDelete)
}

// RegisterMudurRoutes registers the read-only payment listing for directors.
func (h *PaymentHandler) RegisterMudurRoutes(router fiber.Router) {
	router.Get("/payments", h.HandleList)
}

// HandleList lists payments. Directors only see their own school.
func (h *PaymentHandler) HandleList(c *fiber.Ctx) error {
	var filter models.PaymentFilter
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c, err)
	}
	if actor := mustActor(c); actor.Type == models.ActorMudur {
		filter.SchoolID = actor.SchoolID
	}
	payments, err := h.service.ListPayments(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve payments", err)
	}
	return c.JSON(payments)
}

// CreatePaymentRequest is the body for recording a payment owed by a school.
type CreatePaymentRequest struct {
	SchoolID    string          `json:"school_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=1000"`
}

// HandleCreate records a new PENDING payment.
func (h *PaymentHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}
	payment := &models.SchoolPayment{SchoolID: req.SchoolID, Amount: req.Amount, Description: req.Description}
	if err := h.service.CreatePayment(c.UserContext(), payment, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not create payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleMarkPaid marks a pending payment as paid.
func (h *PaymentHandler) HandleMarkPaid(c *fiber.Ctx) error {
	payment, err := h.service.MarkPaid(c.UserContext(), c.Params("id"), mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not mark payment as paid", err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment marked as paid",
		"payment": payment,
	})
}

// HandleDelete removes a payment record.
func (h *PaymentHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeletePayment(c.UserContext(), c.Params("id"), mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not delete payment", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
