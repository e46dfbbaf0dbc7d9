package handlers

import (
	"net/http"

	"github.com/inklink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to follows
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/follow-status", h.Status)
	g.GET("/users/:id/follow-counts", h.Counts)
}

// Follow makes the authenticated user follow the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID := getUserIDFromContext(c)
	if followerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Follow(followerID, followingID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow removes the authenticated user's follow of the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID := getUserIDFromContext(c)
	if followerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(followerID, followingID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Status reports whether the authenticated user follows the target user
func (h *FollowHandler) Status(c echo.Context) error {
	followerID := getUserIDFromContext(c)
	if followerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	following, err := h.followService.IsFollowing(followerID, followingID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": following})
}

// Counts returns follower/following counts for a user
func (h *FollowHandler) Counts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	followers, following, err := h.followService.Counts(userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"followers": followers,
		"following": following,
	})
}
