package services

import (
	"errors"

	"github.com/inklink/backend/internal/apperrors"
	"github.com/inklink/backend/internal/models"
	"github.com/inklink/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FollowService manages follower relationships and emits the NEW_FOLLOWER
// event through the notification dispatcher.
type FollowService struct {
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications *NotificationService
	log           *zap.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
	log *zap.Logger,
) *FollowService {
	return &FollowService{
		follows:       followRepo,
		users:         userRepo,
		notifications: notifications,
		log:           log,
	}
}

// Follow makes followerID follow followingID and notifies the followee.
// Following yourself is a validation error; following someone twice is a
// silent no-op (the unique index collapses the race).
func (s *FollowService) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return apperrors.Validation("users cannot follow themselves")
	}
	if _, err := s.users.GetUserByID(followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user %d not found", followingID)
		}
		return err
	}

	err := s.follows.CreateFollow(&models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	event := models.Event{
		Type:        models.NotificationNewFollower,
		RecipientID: followingID,
		ActorID:     followerID,
	}
	if err := s.notifications.Dispatch(event); err != nil {
		s.log.Error("follower notification failed",
			zap.Uint("follower_id", followerID), zap.Uint("following_id", followingID), zap.Error(err))
	}
	return nil
}

// Unfollow removes the follow edge; removing a missing edge is a no-op
func (s *FollowService) Unfollow(followerID, followingID uint) error {
	_, err := s.follows.DeleteFollow(followerID, followingID)
	return err
}

// IsFollowing reports whether follower follows following
func (s *FollowService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.follows.IsFollowing(followerID, followingID)
}

// Counts returns the follower and following counts for a user
func (s *FollowService) Counts(userID uint) (followers int64, following int64, err error) {
	followers, err = s.follows.CountFollowers(userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.follows.CountFollowing(userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
