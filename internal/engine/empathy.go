package engine

import (
	"context"
	"errors"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// excerptLength is the number of runes of story content carried in a
// notification preview.
const excerptLength = 30

// EmpathyService implements the per-viewer, per-story empathy toggle.
type EmpathyService struct {
	stories       repositories.StoryRepository
	notifications repositories.NotificationRepository
	log           zerolog.Logger
	now           func() time.Time
}

// NewEmpathyService creates an EmpathyService.
func NewEmpathyService(stories repositories.StoryRepository, notifications repositories.NotificationRepository, log zerolog.Logger) *EmpathyService {
	return &EmpathyService{
		stories:       stories,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// Toggle flips the viewer's empathy on the story and returns the resulting
// state (true when the viewer now empathizes). Applying it twice returns
// the empathizer set and counter to their original values. An unknown story
// id is a no-op reported as ErrNotFound.
func (s *EmpathyService) Toggle(ctx context.Context, storyID string, viewerID uint) (bool, error) {
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if story.HasEmpathyFrom(viewerID) {
		if _, err := s.stories.RemoveEmpathy(ctx, storyID, viewerID); err != nil {
			return false, err
		}
		return false, nil
	}

	applied, err := s.stories.AddEmpathy(ctx, storyID, viewerID)
	if err != nil {
		return false, err
	}

	// Only the transition into the set notifies, and never for the
	// viewer's own story. A lost race means another tap already settled
	// the same transition, notification included.
	if applied && story.OwnerID != viewerID {
		notification := &models.Notification{
			Kind:        models.NotificationEmpathy,
			ActorID:     viewerID,
			RecipientID: story.OwnerID,
			StoryID:     storyID,
			Excerpt:     story.Excerpt(excerptLength),
			CreatedAt:   s.now(),
		}
		if err := s.notifications.CreateNotification(notification); err != nil {
			s.log.Warn().Err(err).Str("story_id", storyID).Msg("empathy notification not delivered")
		}
	}
	return true, nil
}
