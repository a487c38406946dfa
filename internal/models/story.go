package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed types for stories.
const (
	FeedTypeWorry    = "worry"
	FeedTypeGrateful = "grateful"
)

// MaxStoryContentLength bounds story content, in runes.
const MaxStoryContentLength = 750

// VisibilitySnapshot is a copy of the owner's facet-visibility flags taken
// when the story is created. Reads always go through the snapshot, so
// flipping a flag later never changes what an existing story already shows.
type VisibilitySnapshot struct {
	AgeGroupPublic   bool `json:"age_group_public" bson:"age_group_public"`
	CityPublic       bool `json:"city_public" bson:"city_public"`
	OccupationPublic bool `json:"occupation_public" bson:"occupation_public"`
}

// Story represents a single anonymous entry stored in MongoDB. The
// empathizer set and sticker receipts are embedded in the document.
type Story struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID    uint               `json:"owner_id" bson:"owner_id"`
	FeedType   string             `json:"feed_type" bson:"feed_type"`
	Content    string             `json:"content" bson:"content"`
	Categories []string           `json:"categories,omitempty" bson:"categories,omitempty"`

	EmpathyCount int              `json:"empathy_count" bson:"empathy_count"`
	EmpathizedBy []uint           `json:"empathized_by,omitempty" bson:"empathized_by,omitempty"`
	Stickers     []StickerReceipt `json:"stickers,omitempty" bson:"stickers,omitempty"`

	IsPublic   bool               `json:"is_public" bson:"is_public"`
	Visibility VisibilitySnapshot `json:"visibility" bson:"visibility"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasEmpathyFrom reports whether the viewer is in the empathizer set.
func (s *Story) HasEmpathyFrom(viewerID uint) bool {
	for _, id := range s.EmpathizedBy {
		if id == viewerID {
			return true
		}
	}
	return false
}

// ReceiptFrom returns the sticker receipt left by the sender, if any.
func (s *Story) ReceiptFrom(senderID uint) *StickerReceipt {
	for i := range s.Stickers {
		if s.Stickers[i].SenderID == senderID {
			return &s.Stickers[i]
		}
	}
	return nil
}

// Excerpt returns the first n runes of the story content for notification
// previews, with a trailing ellipsis when truncated.
func (s *Story) Excerpt(n int) string {
	runes := []rune(s.Content)
	if len(runes) <= n {
		return s.Content
	}
	return string(runes[:n]) + "..."
}

// CreateStoryRequest defines the request body for posting a new story.
type CreateStoryRequest struct {
	FeedType   string   `json:"feed_type" validate:"required,oneof=worry grateful"`
	Content    string   `json:"content" validate:"required,max=750"`
	Categories []string `json:"categories,omitempty"`
	IsPublic   *bool    `json:"is_public,omitempty"`
}

// UpdateStoryRequest defines the request body for editing an existing story.
type UpdateStoryRequest struct {
	Content    string   `json:"content" validate:"required,max=750"`
	Categories []string `json:"categories,omitempty"`
}
