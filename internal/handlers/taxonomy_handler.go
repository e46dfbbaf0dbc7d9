package handlers

import (
	"net/http"

	"github.com/inklink/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TaxonomyHandler serves the category and tag listings used by discovery UIs
type TaxonomyHandler struct {
	taxonomyRepository repositories.TaxonomyRepository
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyRepo repositories.TaxonomyRepository) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyRepository: taxonomyRepo}
}

// RegisterTaxonomyRoutes registers category and tag routes
func (h *TaxonomyHandler) RegisterTaxonomyRoutes(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.GET("/tags", h.ListTags)
}

// ListCategories returns all categories
func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	categories, err := h.taxonomyRepository.ListCategories()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// ListTags returns all tags
func (h *TaxonomyHandler) ListTags(c echo.Context) error {
	tags, err := h.taxonomyRepository.ListTags()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}
