package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// OrderHandler handles HTTP requests for orders and their reports.
type OrderHandler struct {
	service  *services.OrderService
	reports  *services.ReportService
	validate *validator.Validate
	loc      *time.Location
	log      *zap.Logger
}

// NewOrderHandler creates a new OrderHandler. loc is used to read date filters.
func NewOrderHandler(service *services.OrderService, reports *services.ReportService, loc *time.Location, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		reports:  reports,
		validate: validator.New(),
		loc:      loc,
		log:      log,
	}
}

// RegisterAdminRoutes registers the order routes for central admins.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/export", h.HandleExportOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/cargo", h.HandleUpdateCargo)
}

// RegisterMudurRoutes registers read-only order routes scoped to the director's school.
func (h *OrderHandler) RegisterMudurRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/export", h.HandleExportOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// filter reads the query filter and pins directors to their own school.
func (h *OrderHandler) filter(c *fiber.Ctx) (models.OrderFilter, error) {
	filter, err := parseOrderFilter(c, h.loc)
	if err != nil {
		return filter, err
	}
	if actor := mustActor(c); actor.Type == models.ActorMudur {
		filter.SchoolID = actor.SchoolID
	}
	return filter, nil
}

// HandleGetOrders lists orders matching the query filter.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return badRequest(c, err)
	}
	orders, err := h.service.ListOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve order", err)
	}
	if actor := mustActor(c); actor.Type == models.ActorMudur {
		if order.Class == nil || order.Class.SchoolID != actor.SchoolID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
	}
	return c.JSON(order)
}

// HandleDashboard returns status counts and revenue for the filtered orders.
func (h *OrderHandler) HandleDashboard(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return badRequest(c, err)
	}
	stats, err := h.reports.Dashboard(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, "Could not compute dashboard", err)
	}
	return c.JSON(stats)
}

// HandleExportOrders streams the filtered orders as a CSV attachment.
func (h *OrderHandler) HandleExportOrders(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return badRequest(c, err)
	}
	var buf bytes.Buffer
	n, err := h.reports.ExportOrdersCSV(c.UserContext(), &buf, filter)
	if err != nil {
		return respondError(c, h.log, "Could not export orders", err)
	}
	h.log.Info("orders exported", zap.Int("rows", n), zap.String("actor_id", mustActor(c).ID))

	name := fmt.Sprintf("siparisler-%s.csv", time.Now().In(h.loc).Format(dateLayout))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}

// UpdateStatusRequest is the body of a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}

	order, err := h.service.ApplyStatusChange(c.UserContext(), orderID, models.OrderStatus(req.Status), mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}

// UpdateCargoRequest is the body of a tracking number update.
type UpdateCargoRequest struct {
	TrackingNo string `json:"tracking_no" validate:"required,max=64"`
}

// HandleUpdateCargo records the carrier tracking number of an order.
func (h *OrderHandler) HandleUpdateCargo(c *fiber.Ctx) error {
	var req UpdateCargoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}
	order, err := h.service.UpdateCargoTracking(c.UserContext(), c.Params("id"), req.TrackingNo, mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not update cargo tracking", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cargo tracking updated",
		"order":   order,
	})
}
