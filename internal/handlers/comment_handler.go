package handlers

import (
	"net/http"

	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/stories/:id/comments", h.AddComment)
	g.GET("/stories/:id/comments", h.ListForStory)
	g.PUT("/comments/:id", h.EditComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.GET("/comments/:id/replies", h.ListReplies)
}

// AddComment creates a comment or single-level reply on a story
func (h *CommentHandler) AddComment(c echo.Context) error {
	authorID := getUserIDFromContext(c)
	if authorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.Add(storyID, authorID, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListForStory returns a page of a story's top-level comments
func (h *CommentHandler) ListForStory(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	page := h.commentService.NormalizePage(parsePageSpec(c))
	comments, total, err := h.commentService.ListForStory(storyID, page)
	if err != nil {
		return serviceError(err)
	}
	return pagedResponse(c, "comments", comments, total, page)
}

// EditComment replaces a comment's body
func (h *CommentHandler) EditComment(c echo.Context) error {
	requesterID := getUserIDFromContext(c)
	if requesterID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.Edit(commentID, requesterID, req.Body)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	requesterID := getUserIDFromContext(c)
	if requesterID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(commentID, requesterID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReplies returns the direct replies of a comment
func (h *CommentHandler) ListReplies(c echo.Context) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	replies, err := h.commentService.ListReplies(commentID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}
