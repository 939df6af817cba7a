package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// AuthHandler handles HTTP requests for staff authentication and accounts.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	throttle    fiber.Handler
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. throttle guards the login endpoints.
func NewAuthHandler(authService *services.AuthService, throttle fiber.Handler, log *zap.Logger) *AuthHandler {
	if throttle == nil {
		throttle = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		throttle:    throttle,
		log:         log,
	}
}

// RegisterRoutes registers the public login routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/admin/login", h.throttle, h.login(models.ActorAdmin))
	authRoutes.Post("/mudur/login", h.throttle, h.login(models.ActorMudur))
}

// RegisterAdminRoutes registers staff account management under an admin-only router.
func (h *AuthHandler) RegisterAdminRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Post("/", h.HandleCreateUser)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) login(userType models.ActorType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
		if ok, err := validateBody(c, h.validate, req); !ok {
			return err
		}

		res, err := h.authService.Login(c.UserContext(), req.Username, req.Password, userType)
		if err != nil {
			h.log.Info("login failed", zap.String("username", req.Username), zap.String("user_type", string(userType)), zap.String("ip", c.IP()))
			return respondError(c, h.log, "Authentication failed", err)
		}

		return c.JSON(fiber.Map{
			"message":    "Login successful",
			"token":      res.Token,
			"expires_at": res.ExpiresAt,
			"user":       res.User,
		})
	}
}

// CreateUserRequest is the body for creating a staff account.
type CreateUserRequest struct {
	Username string           `json:"username" validate:"required,min=3,max=100"`
	Password string           `json:"password" validate:"required,min=6"`
	Email    string           `json:"email" validate:"omitempty,email"`
	FullName string           `json:"full_name" validate:"omitempty,max=150"`
	Type     models.ActorType `json:"type" validate:"required,oneof=ADMIN MUDUR"`
	SchoolID string           `json:"school_id" validate:"required_if=Type MUDUR"`
}

// HandleCreateUser creates an admin or a school director account.
func (h *AuthHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Type:     req.Type,
	}
	if req.SchoolID != "" {
		user.SchoolID = &req.SchoolID
	}
	if err := h.authService.CreateStaff(c.UserContext(), user, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not create user", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleListUsers lists staff accounts of one type (?type=MUDUR by default).
func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	userType := models.ActorType(c.Query("type", string(models.ActorMudur)))
	users, err := h.authService.ListStaff(c.UserContext(), userType)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve users", err)
	}
	return c.JSON(users)
}
