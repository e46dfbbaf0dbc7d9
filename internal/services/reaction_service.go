package services

import (
	"errors"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReactionService owns like/bookmark toggling and keeps the denormalized
// like counter consistent with the reactions table. Correctness under
// concurrent toggles is delegated to the composite unique constraint; the
// counter is always recomputed from the authoritative rows, never
// incremented independently, so transient drift self-heals.
type ReactionService struct {
	reactions     repositories.ReactionRepository
	stories       repositories.StoryRepository
	notifications *NotificationService
	log           *zap.Logger
}

// NewReactionService creates a new ReactionService
func NewReactionService(
	reactionRepo repositories.ReactionRepository,
	storyRepo repositories.StoryRepository,
	notifications *NotificationService,
	log *zap.Logger,
) *ReactionService {
	return &ReactionService{
		reactions:     reactionRepo,
		stories:       storyRepo,
		notifications: notifications,
		log:           log,
	}
}

// Toggle flips the (story, user, type) reaction: an existing row is removed,
// a missing one is inserted. A duplicate insert losing a race against a
// concurrent toggle resolves to the "active" outcome instead of erroring.
// Adding a LIKE notifies the story's author unless the liker is the author.
func (s *ReactionService) Toggle(storyID, userID uint, rtype models.ReactionType) (*models.ToggleResult, error) {
	if !rtype.Valid() {
		return nil, apperrors.Validation("unknown reaction type %q", rtype)
	}
	story, err := s.stories.GetStoryByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("story %d not found", storyID)
		}
		return nil, err
	}

	removed, err := s.reactions.DeleteReaction(storyID, userID, rtype)
	if err != nil {
		return nil, err
	}

	active := false
	if !removed {
		err := s.reactions.CreateReaction(&models.Reaction{
			StoryID: storyID,
			UserID:  userID,
			Type:    rtype,
		})
		switch {
		case err == nil:
			active = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost a race against a concurrent toggle by the same user;
			// the row exists, so the reaction is active either way.
			active = true
		default:
			return nil, err
		}
	}

	count, err := s.refreshCount(story, rtype)
	if err != nil {
		return nil, err
	}

	if active && rtype == models.ReactionLike && userID != story.AuthorID {
		event := models.Event{
			Type:        models.NotificationStoryLiked,
			RecipientID: story.AuthorID,
			ActorID:     userID,
			StoryID:     &story.ID,
		}
		if err := s.notifications.Dispatch(event); err != nil {
			// Fan-out failure never rolls back the reaction itself.
			s.log.Error("like notification failed",
				zap.Uint("story_id", storyID), zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	return &models.ToggleResult{Active: active, Count: count}, nil
}

// refreshCount recomputes the reaction count from the reactions table and,
// for likes, persists it onto the story's denormalized counter.
func (s *ReactionService) refreshCount(story *models.Story, rtype models.ReactionType) (int64, error) {
	count, err := s.reactions.CountByStory(story.ID, rtype)
	if err != nil {
		return 0, err
	}
	if rtype == models.ReactionLike {
		if err := s.stories.SetLikeCount(story.ID, count); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// HasReacted reports whether the user currently has the reaction active
func (s *ReactionService) HasReacted(storyID, userID uint, rtype models.ReactionType) (bool, error) {
	if !rtype.Valid() {
		return false, apperrors.Validation("unknown reaction type %q", rtype)
	}
	return s.reactions.HasReacted(storyID, userID, rtype)
}

// Count returns the authoritative reaction count for a story and type
func (s *ReactionService) Count(storyID uint, rtype models.ReactionType) (int64, error) {
	if !rtype.Valid() {
		return 0, apperrors.Validation("unknown reaction type %q", rtype)
	}
	return s.reactions.CountByStory(storyID, rtype)
}
