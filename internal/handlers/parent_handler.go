package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// ParentHandler serves the unauthenticated parent-facing routes. Parents prove access
// with a class password or the phone number given at checkout.
type ParentHandler struct {
	orders   *services.OrderService
	cancels  *services.CancellationService
	catalog  *services.CatalogService
	validate *validator.Validate
	log      *zap.Logger
}

// NewParentHandler creates a new ParentHandler.
func NewParentHandler(orders *services.OrderService, cancels *services.CancellationService, catalog *services.CatalogService, log *zap.Logger) *ParentHandler {
	return &ParentHandler{
		orders:   orders,
		cancels:  cancels,
		catalog:  catalog,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the parent routes. throttle guards password and phone checks.
func (h *ParentHandler) RegisterRoutes(router fiber.Router, throttle fiber.Handler) {
	if throttle == nil {
		throttle = func(c *fiber.Ctx) error { return c.Next() }
	}
	parent := router.Group("/parent", throttle)
	parent.Post("/class-access", h.HandleClassAccess)
	parent.Get("/orders/:orderNumber", h.HandleTrackOrder)
	parent.Post("/orders/:orderNumber/cancel-requests", h.HandleRequestCancellation)
}

// ClassAccessRequest carries a class access password.
type ClassAccessRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleClassAccess resolves a class and its package from the access password.
func (h *ParentHandler) HandleClassAccess(c *fiber.Ctx) error {
	var req ClassAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}
	class, err := h.catalog.ResolveClassAccess(c.UserContext(), req.Password)
	if err != nil {
		return respondError(c, h.log, "Invalid class password", err)
	}
	class.Password = ""
	return c.JSON(class)
}

// HandleTrackOrder returns an order when ?phone= matches the one it was placed with.
func (h *ParentHandler) HandleTrackOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderForParent(c.UserContext(), c.Params("orderNumber"), c.Query("phone"))
	if err != nil {
		return respondError(c, h.log, "Order not found", err)
	}
	return c.JSON(parentView(order))
}

// ParentCancelRequest is the body of a parent's cancellation request.
type ParentCancelRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Reason string `json:"reason" validate:"required,max=1000"`
}

// HandleRequestCancellation opens a cancellation request for the parent's order.
func (h *ParentHandler) HandleRequestCancellation(c *fiber.Ctx) error {
	var body ParentCancelRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, body); !ok {
		return err
	}
	req, err := h.cancels.RequestCancellationForParent(c.UserContext(), c.Params("orderNumber"), body.Phone, body.Reason)
	if err != nil {
		return respondError(c, h.log, "Could not create cancel request", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Cancel request received",
		"id":      req.ID,
		"status":  req.Status.Info(),
	})
}

// ParentOrderView is the order as shown on the tracking page.
type ParentOrderView struct {
	OrderNumber     string            `json:"order_number"`
	Status          models.StatusInfo `json:"status"`
	StudentName     string            `json:"student_name"`
	ClassName       string            `json:"class_name,omitempty"`
	SchoolName      string            `json:"school_name,omitempty"`
	PackageName     string            `json:"package_name,omitempty"`
	TotalAmount     string            `json:"total_amount"`
	CargoTrackingNo *string           `json:"cargo_tracking_no,omitempty"`
	Cancellable     bool              `json:"cancellable"`
}

func parentView(o *models.Order) ParentOrderView {
	v := ParentOrderView{
		OrderNumber:     o.OrderNumber,
		Status:          o.Status.Info(),
		StudentName:     o.StudentName,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		CargoTrackingNo: o.CargoTrackingNo,
		Cancellable:     o.Status.IsCancellable(),
	}
	if o.Class != nil {
		v.ClassName = o.Class.Name
		if o.Class.School != nil {
			v.SchoolName = o.Class.School.Name
		}
	}
	if o.Package != nil {
		v.PackageName = o.Package.Name
	}
	return v
}
