package engine

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// StoryService implements story authoring: create, edit, delete, and the
// owner's story listing. Worry entries require at least one known category;
// grateful entries carry none.
type StoryService struct {
	cfg     Config
	stories repositories.StoryRepository
	users   repositories.UserRepository
	now     func() time.Time
}

// NewStoryService creates a StoryService.
func NewStoryService(cfg Config, stories repositories.StoryRepository, users repositories.UserRepository) *StoryService {
	return &StoryService{cfg: cfg, stories: stories, users: users, now: time.Now}
}

// Create posts a new story for the owner, stamping the owner's current
// facet-visibility flags as the story's snapshot.
func (s *StoryService) Create(ctx context.Context, ownerID uint, req models.CreateStoryRequest) (*models.Story, error) {
	owner, err := s.users.GetUserByID(ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	categories, err := s.checkContent(req.FeedType, req.Content, req.Categories)
	if err != nil {
		return nil, err
	}

	story := &models.Story{
		OwnerID:    ownerID,
		FeedType:   req.FeedType,
		Content:    req.Content,
		Categories: categories,
		IsPublic:   true,
		Visibility: models.VisibilitySnapshot{
			AgeGroupPublic:   owner.AgeGroupPublic,
			CityPublic:       owner.CityPublic,
			OccupationPublic: owner.OccupationPublic,
		},
	}
	if req.IsPublic != nil {
		story.IsPublic = *req.IsPublic
	}

	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Update edits the content and categories of an owned story.
func (s *StoryService) Update(ctx context.Context, storyID string, ownerID uint, req models.UpdateStoryRequest) (*models.Story, error) {
	story, err := s.getOwned(ctx, storyID, ownerID)
	if err != nil {
		return nil, err
	}

	categories, err := s.checkContent(story.FeedType, req.Content, req.Categories)
	if err != nil {
		return nil, err
	}

	if err := s.stories.UpdateStoryContent(ctx, storyID, req.Content, categories); err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	story.Content = req.Content
	story.Categories = categories
	return story, nil
}

// Delete removes an owned story.
func (s *StoryService) Delete(ctx context.Context, storyID string, ownerID uint) error {
	if _, err := s.getOwned(ctx, storyID, ownerID); err != nil {
		return err
	}
	if err := s.stories.DeleteStory(ctx, storyID); err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListMine returns the owner's stories for the profile view, in the
// requested order.
func (s *StoryService) ListMine(ctx context.Context, ownerID uint, order SortOrder) ([]models.Story, error) {
	stories, err := s.stories.GetStoriesByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sortStories(stories, order)
	return stories, nil
}

func (s *StoryService) getOwned(ctx context.Context, storyID string, ownerID uint) (*models.Story, error) {
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if story.OwnerID != ownerID {
		return nil, rejectf(ReasonNotOwner, "only the author can change this story")
	}
	return story, nil
}

// checkContent validates content length and the category rule for the feed
// type, returning the normalized category list.
func (s *StoryService) checkContent(feedType, content string, categories []string) ([]string, error) {
	if utf8.RuneCountInString(content) > models.MaxStoryContentLength {
		return nil, rejectf(ReasonContentTooLong, "stories are limited to %d characters", models.MaxStoryContentLength)
	}

	if feedType == models.FeedTypeGrateful {
		// Grateful entries never carry categories.
		return nil, nil
	}

	if len(categories) == 0 {
		return nil, rejectf(ReasonCategoryRequired, "pick at least one category for a worry entry")
	}
	for _, cat := range categories {
		if !s.cfg.KnownCategory(cat) {
			return nil, rejectf(ReasonUnknownCategory, "unknown category %q", cat)
		}
	}
	return categories, nil
}
