package services

import (
	"strings"
	"testing"

	"github.com/inklink/backend/internal/models"
	"go.uber.org/zap"
)

// fixture wires every service against a shared in-memory store, mirroring
// the wiring in the router.
type fixture struct {
	store *memStore

	userRepo         *fakeUserRepo
	storyRepo        *fakeStoryRepo
	reactionRepo     *fakeReactionRepo
	commentRepo      *fakeCommentRepo
	notificationRepo *fakeNotificationRepo
	followRepo       *fakeFollowRepo
	taxonomyRepo     *fakeTaxonomyRepo

	notifications *NotificationService
	stories       *StoryService
	reactions     *ReactionService
	comments      *CommentService
	follows       *FollowService
	search        *SearchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPages(t, 0, 0)
}

// newFixtureWithPages wires the services with explicit page bounds, the way
// the router threads them in from configuration.
func newFixtureWithPages(t *testing.T, pageDefault, pageMax int) *fixture {
	t.Helper()
	store := newMemStore()
	f := &fixture{
		store:            store,
		userRepo:         &fakeUserRepo{store: store},
		storyRepo:        &fakeStoryRepo{store: store},
		reactionRepo:     &fakeReactionRepo{store: store},
		commentRepo:      &fakeCommentRepo{store: store},
		notificationRepo: &fakeNotificationRepo{store: store},
		followRepo:       &fakeFollowRepo{store: store},
		taxonomyRepo:     &fakeTaxonomyRepo{store: store},
	}
	log := zap.NewNop()
	f.notifications = NewNotificationService(f.notificationRepo, f.userRepo, 0, pageDefault, pageMax, log)
	f.stories = NewStoryService(f.storyRepo, f.userRepo, f.taxonomyRepo, 0, pageDefault, pageMax, log)
	f.reactions = NewReactionService(f.reactionRepo, f.storyRepo, f.notifications, log)
	f.comments = NewCommentService(f.commentRepo, f.storyRepo, f.userRepo, f.notifications, pageDefault, pageMax, log)
	f.follows = NewFollowService(f.followRepo, f.userRepo, f.notifications, log)
	f.search = NewSearchService(f.storyRepo, f.userRepo, 0, pageDefault, pageMax)
	return f
}

// publishableBody returns a body comfortably above the publishable minimum
// with the requested word count.
func publishableBody(words int) string {
	return strings.TrimSpace(strings.Repeat("lorem ", words))
}

func (f *fixture) mustCreateStory(t *testing.T, authorID uint, req models.CreateStoryRequest) *models.Story {
	t.Helper()
	story, err := f.stories.Create(authorID, req)
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	return story
}

func (f *fixture) mustPublish(t *testing.T, storyID, authorID uint) *models.Story {
	t.Helper()
	story, err := f.stories.Publish(storyID, authorID)
	if err != nil {
		t.Fatalf("publish story %d: %v", storyID, err)
	}
	return story
}

// publishedStory creates and publishes a story in one step.
func (f *fixture) publishedStory(t *testing.T, authorID uint, title string) *models.Story {
	t.Helper()
	story := f.mustCreateStory(t, authorID, models.CreateStoryRequest{
		Title: title,
		Body:  publishableBody(40),
	})
	return f.mustPublish(t, story.ID, authorID)
}
