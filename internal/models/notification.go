package models

import "time"

// Notification kinds.
const (
	NotificationEmpathy = "empathy"
	NotificationSticker = "sticker"
)

// AnonymousActorID marks notifications framed as coming from an anonymous
// third party (the self-send simulation path).
const AnonymousActorID uint = 0

// Notification represents a user notification (PostgreSQL). Notifications
// are routed to the story owner's inbox; the sole exception is the
// self-sent sticker, which lands in the acting viewer's own inbox framed
// as from an anonymous friend.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Kind        string    `json:"kind" gorm:"size:20;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	StoryID     string    `json:"story_id"`
	Excerpt     string    `json:"excerpt"`
	Emoji       string    `json:"emoji,omitempty"`
	Message     string    `json:"message,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
