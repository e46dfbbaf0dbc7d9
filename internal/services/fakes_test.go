package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inklink/backend/internal/models"
	"gorm.io/gorm"
)

// memStore is the shared backing state for the in-memory fake repositories.
// The fakes honor the same contracts as the Postgres implementations,
// including gorm.ErrRecordNotFound and gorm.ErrDuplicatedKey.
type memStore struct {
	mu sync.Mutex

	users         map[uint]*models.User
	stories       map[uint]*models.Story
	comments      map[uint]*models.Comment
	reactions     map[uint]*models.Reaction
	notifications map[uint]*models.Notification
	follows       map[uint]*models.Follow
	tags          map[uint]*models.Tag
	categories    map[uint]*models.Category

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[uint]*models.User),
		stories:       make(map[uint]*models.Story),
		comments:      make(map[uint]*models.Comment),
		reactions:     make(map[uint]*models.Reaction),
		notifications: make(map[uint]*models.Notification),
		follows:       make(map[uint]*models.Follow),
		tags:          make(map[uint]*models.Tag),
		categories:    make(map[uint]*models.Category),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(username string, role models.UserRole) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &models.User{ID: s.id(), Username: username, Role: role}
	s.users[user.ID] = user
	return user
}

func (s *memStore) categoryName(id uint) string {
	if c, ok := s.categories[id]; ok {
		return c.Name
	}
	return ""
}

// --- users ---

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.id()
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListUserIDs() ([]uint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ids := make([]uint, 0, len(r.store.users))
	for id := range r.store.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// --- stories ---

type fakeStoryRepo struct {
	store *memStore

	// tagReplaceErr makes the next UpdateStory with tags fail without
	// applying any of the edits, like a rolled-back transaction.
	tagReplaceErr error
}

func (r *fakeStoryRepo) CreateStory(story *models.Story) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	story.ID = r.store.id()
	story.CreatedAt = time.Now()
	story.UpdatedAt = story.CreatedAt
	cp := *story
	r.store.stories[story.ID] = &cp
	return nil
}

func (r *fakeStoryRepo) GetStoryByID(id uint) (*models.Story, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	story, ok := r.store.stories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *story
	return &cp, nil
}

func (r *fakeStoryRepo) UpdateStory(story *models.Story, tags *[]models.Tag) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stories[story.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if tags != nil && r.tagReplaceErr != nil {
		err := r.tagReplaceErr
		r.tagReplaceErr = nil
		return err
	}
	if tags != nil {
		story.Tags = append([]models.Tag(nil), *tags...)
	}
	story.UpdatedAt = time.Now()
	cp := *story
	r.store.stories[story.ID] = &cp
	return nil
}

func (r *fakeStoryRepo) DeleteStoryCascade(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.stories, id)
	for cid, comment := range r.store.comments {
		if comment.StoryID == id {
			delete(r.store.comments, cid)
		}
	}
	for rid, reaction := range r.store.reactions {
		if reaction.StoryID == id {
			delete(r.store.reactions, rid)
		}
	}
	for nid, notification := range r.store.notifications {
		if notification.StoryID != nil && *notification.StoryID == id {
			delete(r.store.notifications, nid)
		}
	}
	return nil
}

func (r *fakeStoryRepo) ListByAuthor(authorID uint, status *models.StoryStatus, page models.PageSpec) ([]models.Story, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []models.Story
	for _, story := range r.store.stories {
		if story.AuthorID != authorID {
			continue
		}
		if status != nil && story.Status != *status {
			continue
		}
		matched = append(matched, *story)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return pageOf(matched, page), int64(len(matched)), nil
}

func (r *fakeStoryRepo) Search(criteria models.SearchCriteria, page models.PageSpec) ([]models.Story, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []models.Story
	for _, story := range r.store.stories {
		if story.Status != models.StoryStatusPublished {
			continue
		}
		if criteria.Query != "" {
			q := strings.ToLower(criteria.Query)
			if !strings.Contains(strings.ToLower(story.Title), q) &&
				!strings.Contains(strings.ToLower(story.Body), q) {
				continue
			}
		}
		if len(criteria.Categories) > 0 {
			if story.CategoryID == nil {
				continue
			}
			name := r.store.categoryName(*story.CategoryID)
			found := false
			for _, want := range criteria.Categories {
				if want == name {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if criteria.AuthorID != nil && story.AuthorID != *criteria.AuthorID {
			continue
		}
		if criteria.MinReadingTime > 0 && story.ReadingTime < criteria.MinReadingTime {
			continue
		}
		if criteria.MaxReadingTime > 0 && story.ReadingTime > criteria.MaxReadingTime {
			continue
		}
		if criteria.PublishedAfter != nil &&
			(story.PublishedAt == nil || story.PublishedAt.Before(*criteria.PublishedAfter)) {
			continue
		}
		if criteria.PublishedBefore != nil &&
			(story.PublishedAt == nil || story.PublishedAt.After(*criteria.PublishedBefore)) {
			continue
		}
		if criteria.Sort == models.SortTrending &&
			(story.PublishedAt == nil || story.PublishedAt.Before(criteria.TrendingSince)) {
			continue
		}
		matched = append(matched, *story)
	}

	publishedAfterOf := func(a, b models.Story) bool {
		switch {
		case a.PublishedAt == nil:
			return false
		case b.PublishedAt == nil:
			return true
		default:
			return a.PublishedAt.After(*b.PublishedAt)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch criteria.Sort {
		case models.SortPopular:
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
		case models.SortTrending:
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
		case models.SortReadingTime:
			if a.ReadingTime != b.ReadingTime {
				return a.ReadingTime < b.ReadingTime
			}
		}
		return publishedAfterOf(a, b)
	})
	return pageOf(matched, page), int64(len(matched)), nil
}

func (r *fakeStoryRepo) IncrementViewCount(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	story, ok := r.store.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	story.ViewCount++
	return nil
}

func (r *fakeStoryRepo) SetLikeCount(id uint, count int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	story, ok := r.store.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	story.LikeCount = count
	return nil
}

func pageOf(stories []models.Story, page models.PageSpec) []models.Story {
	start := page.Offset()
	if start >= len(stories) {
		return []models.Story{}
	}
	end := start + page.Size
	if end > len(stories) {
		end = len(stories)
	}
	return stories[start:end]
}

// --- reactions ---

type fakeReactionRepo struct {
	store *memStore

	// simulateRaceOnce makes the next CreateReaction behave as if a
	// concurrent toggle inserted the same row first.
	simulateRaceOnce bool
}

func (r *fakeReactionRepo) find(storyID, userID uint, rtype models.ReactionType) *models.Reaction {
	for _, reaction := range r.store.reactions {
		if reaction.StoryID == storyID && reaction.UserID == userID && reaction.Type == rtype {
			return reaction
		}
	}
	return nil
}

func (r *fakeReactionRepo) CreateReaction(reaction *models.Reaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.simulateRaceOnce {
		r.simulateRaceOnce = false
		racer := &models.Reaction{
			ID: r.store.id(), StoryID: reaction.StoryID,
			UserID: reaction.UserID, Type: reaction.Type, CreatedAt: time.Now(),
		}
		r.store.reactions[racer.ID] = racer
	}
	if r.find(reaction.StoryID, reaction.UserID, reaction.Type) != nil {
		return gorm.ErrDuplicatedKey
	}
	reaction.ID = r.store.id()
	reaction.CreatedAt = time.Now()
	cp := *reaction
	r.store.reactions[reaction.ID] = &cp
	return nil
}

func (r *fakeReactionRepo) DeleteReaction(storyID, userID uint, rtype models.ReactionType) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing := r.find(storyID, userID, rtype); existing != nil {
		delete(r.store.reactions, existing.ID)
		return true, nil
	}
	return false, nil
}

func (r *fakeReactionRepo) HasReacted(storyID, userID uint, rtype models.ReactionType) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.find(storyID, userID, rtype) != nil, nil
}

func (r *fakeReactionRepo) CountByStory(storyID uint, rtype models.ReactionType) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, reaction := range r.store.reactions {
		if reaction.StoryID == storyID && reaction.Type == rtype {
			count++
		}
	}
	return count, nil
}

// --- comments ---

type fakeCommentRepo struct{ store *memStore }

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	comment.ID = r.store.id()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	r.store.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	comment, ok := r.store.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *comment
	return &cp, nil
}

func (r *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	comment.UpdatedAt = time.Now()
	cp := *comment
	r.store.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) DeleteCommentWithReplies(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	removed := map[uint]bool{id: true}
	for cid, comment := range r.store.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == id {
			removed[cid] = true
			delete(r.store.comments, cid)
		}
	}
	delete(r.store.comments, id)
	for nid, notification := range r.store.notifications {
		if notification.CommentID != nil && removed[*notification.CommentID] {
			delete(r.store.notifications, nid)
		}
	}
	return nil
}

func (r *fakeCommentRepo) ListTopLevelByStory(storyID uint, page models.PageSpec) ([]models.Comment, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []models.Comment
	for _, comment := range r.store.comments {
		if comment.StoryID == storyID && comment.ParentCommentID == nil {
			matched = append(matched, *comment)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []models.Comment{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeCommentRepo) ListReplies(parentCommentID uint) ([]models.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var replies []models.Comment
	for _, comment := range r.store.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == parentCommentID {
			replies = append(replies, *comment)
		}
	}
	sort.Slice(replies, func(i, j int) bool {
		if replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].ID < replies[j].ID
		}
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

// --- notifications ---

type fakeNotificationRepo struct {
	store *memStore

	createErr error           // forced failure for fan-out isolation tests
	purgeErr  map[uint]error  // per-recipient purge failures for sweep tests
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	notification.ID = r.store.id()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	cp := *notification
	r.store.notifications[notification.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	notification, ok := r.store.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *notification
	return &cp, nil
}

func (r *fakeNotificationRepo) ListByRecipient(recipientID uint, page models.PageSpec) ([]models.Notification, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []models.Notification
	for _, notification := range r.store.notifications {
		if notification.RecipientID == recipientID {
			matched = append(matched, *notification)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []models.Notification{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, notification := range r.store.notifications {
		if notification.RecipientID == recipientID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if notification, ok := r.store.notifications[id]; ok {
		notification.Read = true
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, notification := range r.store.notifications {
		if notification.RecipientID == recipientID {
			notification.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(recipientID uint, cutoff time.Time) (int64, error) {
	if err, ok := r.purgeErr[recipientID]; ok {
		return 0, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for id, notification := range r.store.notifications {
		if notification.RecipientID == recipientID && notification.CreatedAt.Before(cutoff) {
			delete(r.store.notifications, id)
			removed++
		}
	}
	return removed, nil
}

// --- follows ---

type fakeFollowRepo struct{ store *memStore }

func (r *fakeFollowRepo) find(followerID, followingID uint) *models.Follow {
	for _, follow := range r.store.follows {
		if follow.FollowerID == followerID && follow.FollowingID == followingID {
			return follow
		}
	}
	return nil
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.find(follow.FollowerID, follow.FollowingID) != nil {
		return gorm.ErrDuplicatedKey
	}
	follow.ID = r.store.id()
	follow.CreatedAt = time.Now()
	cp := *follow
	r.store.follows[follow.ID] = &cp
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing := r.find(followerID, followingID); existing != nil {
		delete(r.store.follows, existing.ID)
		return true, nil
	}
	return false, nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.find(followerID, followingID) != nil, nil
}

func (r *fakeFollowRepo) CountFollowers(userID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, follow := range r.store.follows {
		if follow.FollowingID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) CountFollowing(userID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, follow := range r.store.follows {
		if follow.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

// --- taxonomy ---

type fakeTaxonomyRepo struct{ store *memStore }

func (r *fakeTaxonomyRepo) GetOrCreateTags(names []string) ([]models.Tag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var found *models.Tag
		for _, tag := range r.store.tags {
			if tag.Name == name {
				found = tag
				break
			}
		}
		if found == nil {
			found = &models.Tag{ID: r.store.id(), Name: name}
			r.store.tags[found.ID] = found
		}
		tags = append(tags, *found)
	}
	return tags, nil
}

func (r *fakeTaxonomyRepo) GetOrCreateCategory(name string) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, category := range r.store.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	category := &models.Category{ID: r.store.id(), Name: name}
	r.store.categories[category.ID] = category
	cp := *category
	return &cp, nil
}

func (r *fakeTaxonomyRepo) GetCategoryByName(name string) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, category := range r.store.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTaxonomyRepo) ListCategories() ([]models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var categories []models.Category
	for _, category := range r.store.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *fakeTaxonomyRepo) ListTags() ([]models.Tag, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var tags []models.Tag
	for _, tag := range r.store.tags {
		tags = append(tags, *tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}
