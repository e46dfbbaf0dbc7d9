package services

import (
	"errors"
	"strings"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService owns comment threads: single-level replies, ownership
// rules and the comment/reply notification fan-out.
type CommentService struct {
	comments      repositories.CommentRepository
	stories       repositories.StoryRepository
	users         repositories.UserRepository
	notifications *NotificationService
	pages         pageBounds
	sanitizer     *bluemonday.Policy
	log           *zap.Logger
}

// NewCommentService creates a new CommentService. Non-positive page bounds
// fall back to the models defaults.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	storyRepo repositories.StoryRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
	pageDefault, pageMax int,
	log *zap.Logger,
) *CommentService {
	return &CommentService{
		comments:      commentRepo,
		stories:       storyRepo,
		users:         userRepo,
		notifications: notifications,
		pages:         newPageBounds(pageDefault, pageMax),
		sanitizer:     bluemonday.UGCPolicy(),
		log:           log,
	}
}

func (s *CommentService) validBody(body string) (string, error) {
	body = strings.TrimSpace(s.sanitizer.Sanitize(body))
	n := len([]rune(body))
	if n < models.CommentMinLength || n > models.CommentMaxLength {
		return "", apperrors.Validation("comment body must be between %d and %d characters",
			models.CommentMinLength, models.CommentMaxLength)
	}
	return body, nil
}

// Add creates a comment on a story, or, when a parent comment is given, a
// single-level reply to one of the story's top-level comments. The story
// author and, for replies, the parent comment's author are notified; no
// recipient receives two notifications for the same comment, and nobody is
// notified of their own activity. A fan-out failure never fails the comment.
func (s *CommentService) Add(storyID, authorID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	body, err := s.validBody(req.Body)
	if err != nil {
		return nil, err
	}

	story, err := s.stories.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("story %d not found", storyID)
		}
		return nil, err
	}

	var parent *models.Comment
	if req.ParentCommentID != nil {
		parent, err = s.comments.GetCommentByID(*req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("parent comment %d not found", *req.ParentCommentID)
			}
			return nil, err
		}
		if parent.StoryID != storyID {
			return nil, apperrors.Validation("parent comment %d belongs to another story", parent.ID)
		}
		if parent.IsReply() {
			return nil, apperrors.Validation("replies can only target top-level comments")
		}
	}

	comment := &models.Comment{
		StoryID:         storyID,
		AuthorID:        authorID,
		ParentCommentID: req.ParentCommentID,
		Body:            body,
	}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, err
	}

	s.notifyComment(story, parent, comment)
	return comment, nil
}

func (s *CommentService) notifyComment(story *models.Story, parent *models.Comment, comment *models.Comment) {
	dispatch := func(event models.Event) {
		if err := s.notifications.Dispatch(event); err != nil {
			s.log.Error("comment notification failed",
				zap.Uint("comment_id", comment.ID), zap.Error(err))
		}
	}

	dispatch(models.Event{
		Type:        models.NotificationStoryCommented,
		RecipientID: story.AuthorID,
		ActorID:     comment.AuthorID,
		StoryID:     &story.ID,
		CommentID:   &comment.ID,
	})

	// The parent author gets the reply notification unless they already got
	// the story-comment one above (same recipient, same comment).
	if parent != nil && parent.AuthorID != story.AuthorID {
		dispatch(models.Event{
			Type:        models.NotificationCommentReplied,
			RecipientID: parent.AuthorID,
			ActorID:     comment.AuthorID,
			StoryID:     &story.ID,
			CommentID:   &comment.ID,
		})
	}
}

// Edit replaces a comment's body. Only the comment's author may edit, and
// an edit permanently flags the comment as edited.
func (s *CommentService) Edit(commentID, requesterID uint, newBody string) (*models.Comment, error) {
	body, err := s.validBody(newBody)
	if err != nil {
		return nil, err
	}
	comment, err := s.getComment(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, apperrors.Authorization("only the author may edit comment %d", commentID)
	}

	comment.Body = body
	comment.Edited = true
	if err := s.comments.UpdateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and all of its direct replies. Allowed for the
// comment's author, the story's author, or an admin.
func (s *CommentService) Delete(commentID, requesterID uint) error {
	comment, err := s.getComment(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != requesterID {
		story, err := s.stories.GetStoryByID(comment.StoryID)
		if err != nil {
			return err
		}
		if story.AuthorID != requesterID {
			requester, err := s.users.GetUserByID(requesterID)
			if err != nil || !requester.IsAdmin() {
				return apperrors.Authorization(
					"only the comment author, the story author or an admin may delete comment %d", commentID)
			}
		}
	}
	return s.comments.DeleteCommentWithReplies(commentID)
}

// ListForStory returns a page of the story's top-level comments, newest
// first. Replies are fetched separately per parent via ListReplies.
func (s *CommentService) ListForStory(storyID uint, page models.PageSpec) ([]models.Comment, int64, error) {
	if _, err := s.stories.GetStoryByID(storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("story %d not found", storyID)
		}
		return nil, 0, err
	}
	page = s.pages.normalize(page)
	return s.comments.ListTopLevelByStory(storyID, page)
}

// NormalizePage clamps a page request to the configured bounds
func (s *CommentService) NormalizePage(page models.PageSpec) models.PageSpec {
	return s.pages.normalize(page)
}

// ListReplies returns the direct replies of a comment in conversation order
func (s *CommentService) ListReplies(commentID uint) ([]models.Comment, error) {
	if _, err := s.getComment(commentID); err != nil {
		return nil, err
	}
	return s.comments.ListReplies(commentID)
}

func (s *CommentService) getComment(commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment %d not found", commentID)
		}
		return nil, err
	}
	return comment, nil
}
