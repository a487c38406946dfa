package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// StickerService implements the scarce support-sticker exchange. A sender
// may support a given story at most once, and the sticker balance never
// goes negative.
type StickerService struct {
	cfg           Config
	stories       repositories.StoryRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	log           zerolog.Logger
	now           func() time.Time
}

// NewStickerService creates a StickerService.
func NewStickerService(cfg Config, stories repositories.StoryRepository, users repositories.UserRepository, notifications repositories.NotificationRepository, log zerolog.Logger) *StickerService {
	return &StickerService{
		cfg:           cfg,
		stories:       stories,
		users:         users,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// Send settles one sticker from the sender onto the story. Sending to
// another user's story spends a sticker; sending to your own story is the
// self-simulation path, which credits a sticker instead and frames the
// receipt as from an anonymous friend. The two settlements must never be
// conflated.
func (s *StickerService) Send(ctx context.Context, storyID string, senderID uint, emoji, message string) (*models.StickerReceipt, error) {
	if !s.cfg.InCatalog(emoji, message) {
		return nil, rejectf(ReasonUnknownSticker, "that sticker is not in the catalog")
	}

	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sender, err := s.users.GetUserByID(senderID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if story.ReceiptFrom(senderID) != nil {
		return nil, rejectf(ReasonDuplicateSticker, "you have already supported this story")
	}

	if story.OwnerID == senderID {
		return s.settleSelfSend(ctx, story, senderID, emoji, message)
	}
	return s.settleOtherSend(ctx, story, sender, emoji, message)
}

// settleOtherSend spends one sticker from the sender's balance and appends
// the receipt to the story.
func (s *StickerService) settleOtherSend(ctx context.Context, story *models.Story, sender *models.User, emoji, message string) (*models.StickerReceipt, error) {
	if sender.StickerBalance <= 0 {
		return nil, rejectf(ReasonInsufficientBalance, "no support stickers left to send")
	}

	spent, err := s.users.AdjustStickerBalance(sender.ID, -1)
	if err != nil {
		return nil, err
	}
	if !spent {
		return nil, rejectf(ReasonInsufficientBalance, "no support stickers left to send")
	}

	receipt := models.StickerReceipt{
		ID:        uuid.NewString(),
		SenderID:  sender.ID,
		Emoji:     emoji,
		Message:   message,
		CreatedAt: s.now(),
	}
	appended, err := s.stories.AppendSticker(ctx, story.ID.Hex(), receipt)
	if err == nil && !appended {
		err = rejectf(ReasonDuplicateSticker, "you have already supported this story")
	}
	if err != nil {
		// Roll back the optimistic spend; the exchange did not happen.
		if _, refundErr := s.users.AdjustStickerBalance(sender.ID, 1); refundErr != nil {
			s.log.Error().Err(refundErr).Uint("user_id", sender.ID).Msg("sticker refund failed")
		}
		return nil, err
	}

	s.notify(&models.Notification{
		Kind:        models.NotificationSticker,
		ActorID:     sender.ID,
		RecipientID: story.OwnerID,
		StoryID:     story.ID.Hex(),
		Excerpt:     story.Excerpt(excerptLength),
		Emoji:       emoji,
		Message:     message,
		CreatedAt:   s.now(),
	})
	return &receipt, nil
}

// settleSelfSend is the deliberate simulation path for supporting your own
// story: the receipt is attributed to an anonymous friend and the balance
// goes up by one, modeling received support.
func (s *StickerService) settleSelfSend(ctx context.Context, story *models.Story, senderID uint, emoji, message string) (*models.StickerReceipt, error) {
	receipt := models.StickerReceipt{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Anonymous: true,
		Emoji:     emoji,
		Message:   message,
		CreatedAt: s.now(),
	}
	appended, err := s.stories.AppendSticker(ctx, story.ID.Hex(), receipt)
	if err != nil {
		return nil, err
	}
	if !appended {
		return nil, rejectf(ReasonDuplicateSticker, "you have already supported this story")
	}

	if _, err := s.users.AdjustStickerBalance(senderID, 1); err != nil {
		return nil, err
	}

	s.notify(&models.Notification{
		Kind:        models.NotificationSticker,
		ActorID:     models.AnonymousActorID,
		RecipientID: senderID,
		StoryID:     story.ID.Hex(),
		Excerpt:     story.Excerpt(excerptLength),
		Emoji:       emoji,
		Message:     message,
		CreatedAt:   s.now(),
	})
	return &receipt, nil
}

func (s *StickerService) notify(notification *models.Notification) {
	if err := s.notifications.CreateNotification(notification); err != nil {
		s.log.Warn().Err(err).Str("story_id", notification.StoryID).Msg("sticker notification not delivered")
	}
}
