package models

import "time"

// StickerOption is one entry of the injected sticker catalog.
type StickerOption struct {
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// StickerReceipt records one support sticker sent to a story. SenderID is
// always the real sender and is the basis of the at-most-one-per-(story,
// sender) invariant. Anonymous marks self-sent receipts, which the display
// layer attributes to an anonymous friend rather than the sender.
type StickerReceipt struct {
	ID        string    `json:"id" bson:"id"`
	SenderID  uint      `json:"-" bson:"sender_id"`
	Anonymous bool      `json:"anonymous" bson:"anonymous"`
	Emoji     string    `json:"emoji" bson:"emoji"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SendStickerRequest defines the request body for sending a sticker.
type SendStickerRequest struct {
	Emoji   string `json:"emoji" validate:"required"`
	Message string `json:"message" validate:"required"`
}
