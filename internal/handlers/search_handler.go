package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles the story discovery endpoint
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// RegisterSearchRoutes registers search routes
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search runs a filtered story search. All filters are optional; categories
// may be repeated (?categories=a&categories=b) and dates are RFC 3339.
func (h *SearchHandler) Search(c echo.Context) error {
	filters := models.SearchFilters{
		Query:      c.QueryParam("query"),
		Categories: c.QueryParams()["categories"],
		Author:     c.QueryParam("author"),
		Sort:       models.SortMode(c.QueryParam("sort")),
	}

	if raw := c.QueryParam("min_reading_time"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid min_reading_time")
		}
		filters.MinReadingTime = n
	}
	if raw := c.QueryParam("max_reading_time"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid max_reading_time")
		}
		filters.MaxReadingTime = n
	}
	if raw := c.QueryParam("published_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid published_after")
		}
		filters.PublishedAfter = &t
	}
	if raw := c.QueryParam("published_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid published_before")
		}
		filters.PublishedBefore = &t
	}

	page := h.searchService.NormalizePage(parsePageSpec(c))
	stories, total, err := h.searchService.Search(filters, page)
	if err != nil {
		return serviceError(err)
	}
	return pagedResponse(c, "stories", stories, total, page)
}
