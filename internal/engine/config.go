package engine

import (
	"time"

	"github.com/muje-team/muje-backend/internal/models"
)

// Config carries the injected tuning data for the engine: the sticker
// catalog, the category list, cooldown durations, and feed/draft constants.
// Everything here is data, not compiled-in logic, so tests can run with
// small fixed catalogs.
type Config struct {
	// StickerCatalog is the fixed set of sendable stickers. Arbitrary size.
	StickerCatalog []models.StickerOption

	// Categories is the set of selectable story categories.
	Categories []string

	// EncouragementEvery inserts an encouragement card after every k-th
	// real feed item. Zero disables interleaving.
	EncouragementEvery int

	// EncouragementMessages is the rotation of encouragement card texts.
	EncouragementMessages []string

	// Facet cooldowns. A facet may change only once the cooldown has
	// elapsed since its last change.
	NicknameCooldown   time.Duration
	AgeGroupCooldown   time.Duration
	CityCooldown       time.Duration
	OccupationCooldown time.Duration

	// DraftTTL is how long a saved draft stays loadable.
	DraftTTL time.Duration

	// InitialStickerBalance seeds new accounts.
	InitialStickerBalance int
}

// InCatalog reports whether the emoji/message pair is a catalog entry.
func (c *Config) InCatalog(emoji, message string) bool {
	for _, opt := range c.StickerCatalog {
		if opt.Emoji == emoji && opt.Message == message {
			return true
		}
	}
	return false
}

// KnownCategory reports whether the category is on the injected list.
func (c *Config) KnownCategory(category string) bool {
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}
