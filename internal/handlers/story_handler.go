package handlers

import (
	"net/http"

	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests related to stories
type StoryHandler struct {
	storyService *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.ListPublished)
	g.GET("/stories/:id", h.GetStory)
	g.PUT("/stories/:id", h.UpdateStory)
	g.DELETE("/stories/:id", h.DeleteStory)
	g.POST("/stories/:id/publish", h.PublishStory)
	g.POST("/stories/:id/archive", h.ArchiveStory)
	g.POST("/stories/:id/unarchive", h.UnarchiveStory)
	g.GET("/users/:id/stories", h.ListByAuthor)
}

// CreateStory creates a new draft story for the authenticated user
func (h *StoryHandler) CreateStory(c echo.Context) error {
	authorID := getUserIDFromContext(c)
	if authorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.storyService.Create(authorID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, story)
}

// GetStory returns one story and records the view
func (h *StoryHandler) GetStory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	story, err := h.storyService.GetByID(id)
	if err != nil {
		return serviceError(err)
	}

	// View counting is best-effort; a failed increment never fails the read.
	_ = h.storyService.RecordView(id)

	return c.JSON(http.StatusOK, story)
}

// UpdateStory applies partial edits to the authenticated user's story
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	requesterID := getUserIDFromContext(c)
	if requesterID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.storyService.Update(id, requesterID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, story)
}

// DeleteStory removes a story and its dependents
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	requesterID := getUserIDFromContext(c)
	if requesterID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.storyService.Delete(id, requesterID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PublishStory transitions a draft to published
func (h *StoryHandler) PublishStory(c echo.Context) error {
	return h.transition(c, h.storyService.Publish)
}

// ArchiveStory transitions a published story to archived
func (h *StoryHandler) ArchiveStory(c echo.Context) error {
	return h.transition(c, h.storyService.Archive)
}

// UnarchiveStory restores an archived story to published
func (h *StoryHandler) UnarchiveStory(c echo.Context) error {
	return h.transition(c, h.storyService.Unarchive)
}

func (h *StoryHandler) transition(c echo.Context, op func(storyID, requesterID uint) (*models.Story, error)) error {
	requesterID := getUserIDFromContext(c)
	if requesterID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	story, err := op(id, requesterID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, story)
}

// ListPublished returns published stories in the requested ordering
func (h *StoryHandler) ListPublished(c echo.Context) error {
	sort := models.SortMode(c.QueryParam("sort"))
	page := h.storyService.NormalizePage(parsePageSpec(c))

	stories, total, err := h.storyService.ListPublished(sort, page)
	if err != nil {
		return serviceError(err)
	}
	return pagedResponse(c, "stories", stories, total, page)
}

// ListByAuthor returns an author's stories, optionally filtered by status
func (h *StoryHandler) ListByAuthor(c echo.Context) error {
	authorID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var status *models.StoryStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.StoryStatus(raw)
		if s != models.StoryStatusDraft && s != models.StoryStatusPublished && s != models.StoryStatusArchived {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		status = &s
	}

	page := h.storyService.NormalizePage(parsePageSpec(c))
	stories, total, err := h.storyService.ListByAuthor(authorID, status, page)
	if err != nil {
		return serviceError(err)
	}
	return pagedResponse(c, "stories", stories, total, page)
}
