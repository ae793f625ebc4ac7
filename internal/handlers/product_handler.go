package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"katalog/internal/models"
	"katalog/internal/services"
	"katalog/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the product pages. Each handler is stateless per
// request: it reads the request, calls the service and renders a template or
// redirects.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the page routes with the Fiber app. PUT and
// DELETE arrive as POST rewritten by the method-override middleware.
func (h *ProductHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.HandleHome)
	app.Get("/products", h.HandleListProducts)
	app.Get("/products/create", h.HandleCreateForm)
	app.Post("/products", h.HandleCreateProduct)
	app.Get("/products/:id", h.HandleShowProduct)
	app.Get("/products/:id/edit", h.HandleEditForm)
	app.Put("/products/:id", h.HandleUpdateProduct)
	app.Delete("/products/:id", h.HandleDeleteProduct)
}

// errProductNotFound renders the shared error page with a 404.
var errProductNotFound = fiber.NewError(fiber.StatusNotFound, "Product not found")

// parseID reads the :id route parameter. Non-numeric ids behave like any
// other unknown product.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, errProductNotFound
	}
	return uint(id), nil
}

// HandleHome renders the home page.
func (h *ProductHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title": "Product Management App",
	})
}

// HandleListProducts renders the product listing.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list products")
		return err
	}
	return c.Render("products/index", fiber.Map{
		"Title":    "All Products",
		"Products": products,
	})
}

// HandleCreateForm renders the empty create form.
func (h *ProductHandler) HandleCreateForm(c *fiber.Ctx) error {
	return c.Render("products/create", fiber.Map{
		"Title": "Create Product",
		"Form":  &models.ProductForm{Price: "0.00", Stock: "0"},
	})
}

// HandleCreateProduct stores a new product. On success it redirects to the
// listing; on validation failure it re-renders the form with the submitted
// values and all field errors, without touching storage.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form := new(models.ProductForm)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	if _, err := h.service.CreateProduct(form); err != nil {
		if verrs, ok := models.AsValidationErrors(err); ok {
			return c.Render("products/create", fiber.Map{
				"Title":  "Create Product",
				"Form":   form,
				"Errors": verrs.Messages(),
			})
		}
		h.log.Error().Err(err).Msg("failed to create product")
		return err
	}

	return c.Redirect("/products", fiber.StatusFound)
}

// HandleShowProduct renders the detail page for one product.
func (h *ProductHandler) HandleShowProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errProductNotFound
		}
		h.log.Error().Err(err).Uint("product_id", id).Msg("failed to get product")
		return err
	}

	return c.Render("products/show", fiber.Map{
		"Title":   product.Name,
		"Product": product,
	})
}

// HandleEditForm renders the edit form pre-filled with the stored values.
func (h *ProductHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errProductNotFound
		}
		h.log.Error().Err(err).Uint("product_id", id).Msg("failed to get product")
		return err
	}

	return c.Render("products/edit", fiber.Map{
		"Title": "Edit " + product.Name,
		"ID":    product.ID,
		"Form":  models.FormFromProduct(product),
	})
}

// HandleUpdateProduct replaces all mutable fields of a product. Unknown ids
// 404 before validation; validation failures re-render the edit form with
// the submitted values and leave the row unchanged.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	form := new(models.ProductForm)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	if _, err := h.service.UpdateProduct(id, form); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errProductNotFound
		}
		if verrs, ok := models.AsValidationErrors(err); ok {
			return c.Render("products/edit", fiber.Map{
				"Title":  "Edit " + form.Name,
				"ID":     id,
				"Form":   form,
				"Errors": verrs.Messages(),
			})
		}
		h.log.Error().Err(err).Uint("product_id", id).Msg("failed to update product")
		return err
	}

	return c.Redirect(fmt.Sprintf("/products/%d", id), fiber.StatusFound)
}

// HandleDeleteProduct removes a product permanently and redirects to the
// listing.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errProductNotFound
		}
		h.log.Error().Err(err).Uint("product_id", id).Msg("failed to delete product")
		return err
	}

	return c.Redirect("/products", fiber.StatusFound)
}
