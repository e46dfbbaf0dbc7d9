package handlers

import (
	"net/http"
	"strings"

	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to likes and bookmarks
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/stories/:id/reactions/:type/toggle", h.Toggle)
	g.GET("/stories/:id/reactions/:type/count", h.Count)
	g.GET("/stories/:id/reactions/:type/status", h.Status)
}

func reactionTypeParam(c echo.Context) models.ReactionType {
	return models.ReactionType(strings.ToUpper(c.Param("type")))
}

// Toggle flips the authenticated user's reaction on a story
func (h *ReactionHandler) Toggle(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.reactionService.Toggle(storyID, userID, reactionTypeParam(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Count returns the reaction count for a story and type
func (h *ReactionHandler) Count(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	count, err := h.reactionService.Count(storyID, reactionTypeParam(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// Status reports whether the authenticated user has the reaction active
func (h *ReactionHandler) Status(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	active, err := h.reactionService.HasReacted(storyID, userID, reactionTypeParam(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"active": active})
}
