package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the authenticated user's ID from the JWT
// claims stored by the auth middleware. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// parsePageSpec reads page/size query parameters; services clamp the values
func parsePageSpec(c echo.Context) models.PageSpec {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return models.PageSpec{Page: page, Size: size}
}

// serviceError maps the core error taxonomy onto HTTP statuses
func serviceError(err error) error {
	switch {
	case apperrors.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.IsAuthorization(err):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case apperrors.IsInvalidState(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pagedResponse writes the standard success envelope with paging meta. The
// page should already be normalized by the owning service so the meta
// reflects the configured bounds.
func pagedResponse(c echo.Context, key string, items any, total int64, page models.PageSpec) error {
	if page.Page < 1 || page.Size < 1 {
		page = page.Normalized(models.DefaultPageSize, models.MaxPageSize)
	}
	totalPages := int(math.Ceil(float64(total) / float64(page.Size)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			key: items,
		},
		"meta": echo.Map{
			"currentPage":     page.Page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    page.Size,
			"hasNextPage":     page.Page < totalPages,
			"hasPreviousPage": page.Page > 1,
		},
	})
}
