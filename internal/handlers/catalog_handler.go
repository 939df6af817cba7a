package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

// CatalogHandler handles HTTP requests for schools, classes and packages.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
	log      *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterAdminRoutes registers the reference data routes for central admins.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	schools := router.Group("/schools")
	schools.Get("/", h.HandleListSchools)
	schools.Post("/", h.HandleCreateSchool)
	schools.Get("/:id", h.HandleGetSchool)
	schools.Put("/:id", h.HandleUpdateSchool)
	schools.Get("/:id/classes", h.HandleListClasses)

	classes := router.Group("/classes")
	classes.Get("/", h.HandleListClasses)
	classes.Post("/", h.HandleCreateClass)
	classes.Get("/:id", h.HandleGetClass)
	classes.Put("/:id", h.HandleUpdateClass)
	classes.Post("/:id/regenerate-password", h.HandleRegeneratePassword)

	packages := router.Group("/packages")
	packages.Get("/", h.HandleListPackages)
	packages.Post("/", h.HandleCreatePackage)
	packages.Get("/:id", h.HandleGetPackage)
	packages.Put("/:id", h.HandleUpdatePackage)
}

// RegisterMudurRoutes registers the director's view of their own school.
func (h *CatalogHandler) RegisterMudurRoutes(router fiber.Router) {
	router.Get("/school", h.HandleGetOwnSchool)
	router.Get("/classes", h.HandleListClasses)
}

// HandleListSchools lists every school.
func (h *CatalogHandler) HandleListSchools(c *fiber.Ctx) error {
	schools, err := h.service.ListSchools(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve schools", err)
	}
	return c.JSON(schools)
}

// HandleGetSchool retrieves a single school.
func (h *CatalogHandler) HandleGetSchool(c *fiber.Ctx) error {
	school, err := h.service.GetSchool(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve school", err)
	}
	return c.JSON(school)
}

// HandleGetOwnSchool returns the school a director belongs to.
func (h *CatalogHandler) HandleGetOwnSchool(c *fiber.Ctx) error {
	school, err := h.service.GetSchool(c.UserContext(), mustActor(c).SchoolID)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve school", err)
	}
	return c.JSON(school)
}

// HandleCreateSchool creates a school.
func (h *CatalogHandler) HandleCreateSchool(c *fiber.Ctx) error {
	var school models.School
	if err := c.BodyParser(&school); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, school); !ok {
		return err
	}
	school.ID = ""
	if err := h.service.CreateSchool(c.UserContext(), &school, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not create school", err)
	}
	return c.Status(fiber.StatusCreated).JSON(school)
}

// HandleUpdateSchool updates an existing school.
func (h *CatalogHandler) HandleUpdateSchool(c *fiber.Ctx) error {
	var school models.School
	if err := c.BodyParser(&school); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, school); !ok {
		return err
	}
	school.ID = c.Params("id")
	if err := h.service.UpdateSchool(c.UserContext(), &school, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not update school", err)
	}
	return c.JSON(school)
}

// HandleListClasses lists classes. The school comes from the path, ?schoolId=, or the
// director's own school.
func (h *CatalogHandler) HandleListClasses(c *fiber.Ctx) error {
	schoolID := c.Params("id", c.Query("schoolId"))
	if actor := mustActor(c); actor.Type == models.ActorMudur {
		schoolID = actor.SchoolID
	}
	classes, err := h.service.ListClasses(c.UserContext(), schoolID)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve classes", err)
	}
	return c.JSON(classes)
}

// HandleGetClass retrieves a single class.
func (h *CatalogHandler) HandleGetClass(c *fiber.Ctx) error {
	class, err := h.service.GetClass(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve class", err)
	}
	return c.JSON(class)
}

// HandleCreateClass creates a class, generating its access password when omitted.
func (h *CatalogHandler) HandleCreateClass(c *fiber.Ctx) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, class); !ok {
		return err
	}
	class.ID = ""
	if err := h.service.CreateClass(c.UserContext(), &class, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not create class", err)
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

// UpdateClassRequest is the body of a class update. The school cannot be changed.
type UpdateClassRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Password  string  `json:"password" validate:"omitempty,min=4,max=32"`
	PackageID *string `json:"package_id"`
}

// HandleUpdateClass updates an existing class.
func (h *CatalogHandler) HandleUpdateClass(c *fiber.Ctx) error {
	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, req); !ok {
		return err
	}
	class := models.Class{ID: c.Params("id"), Name: req.Name, Password: req.Password, PackageID: req.PackageID}
	if err := h.service.UpdateClass(c.UserContext(), &class, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not update class", err)
	}
	return c.JSON(class)
}

// HandleRegeneratePassword issues a new access password for a class.
func (h *CatalogHandler) HandleRegeneratePassword(c *fiber.Ctx) error {
	class, err := h.service.RegenerateClassPassword(c.UserContext(), c.Params("id"), mustActor(c))
	if err != nil {
		return respondError(c, h.log, "Could not regenerate class password", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Class password regenerated",
		"password": class.Password,
	})
}

// HandleListPackages lists every package.
func (h *CatalogHandler) HandleListPackages(c *fiber.Ctx) error {
	pkgs, err := h.service.ListPackages(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "Could not retrieve packages", err)
	}
	return c.JSON(pkgs)
}

// HandleGetPackage retrieves a single package.
func (h *CatalogHandler) HandleGetPackage(c *fiber.Ctx) error {
	pkg, err := h.service.GetPackage(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve package", err)
	}
	return c.JSON(pkg)
}

// HandleCreatePackage creates a package with its items.
func (h *CatalogHandler) HandleCreatePackage(c *fiber.Ctx) error {
	var pkg models.Package
	if err := c.BodyParser(&pkg); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, pkg); !ok {
		return err
	}
	pkg.ID = ""
	resetItemIDs(&pkg)
	if err := h.service.CreatePackage(c.UserContext(), &pkg, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not create package", err)
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

// HandleUpdatePackage updates a package and replaces its items.
func (h *CatalogHandler) HandleUpdatePackage(c *fiber.Ctx) error {
	var pkg models.Package
	if err := c.BodyParser(&pkg); err != nil {
		return badRequest(c, err)
	}
	if ok, err := validateBody(c, h.validate, pkg); !ok {
		return err
	}
	pkg.ID = c.Params("id")
	resetItemIDs(&pkg)
	if err := h.service.UpdatePackage(c.UserContext(), &pkg, mustActor(c)); err != nil {
		return respondError(c, h.log, "Could not update package", err)
	}
	return c.JSON(pkg)
}

// Items are always replaced wholesale, so client-sent IDs are ignored.
func resetItemIDs(pkg *models.Package) {
	for i := range pkg.Items {
		pkg.Items[i].ID = ""
	}
}
