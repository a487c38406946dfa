package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an anonymous account (PostgreSQL). Profile facets carry
// their own last-changed timestamp for the cooldown gate and a visibility
// flag that is snapshotted onto stories at creation time.
type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Nickname   string `json:"nickname"`
	AvatarURL  string `json:"avatar_url"`

	AgeGroup   string `json:"age_group"`
	City       string `json:"city"`
	Occupation string `json:"occupation"`

	AgeGroupPublic   bool `json:"age_group_public" gorm:"default:true"`
	CityPublic       bool `json:"city_public" gorm:"default:true"`
	OccupationPublic bool `json:"occupation_public" gorm:"default:true"`

	NicknameChangedAt   time.Time `json:"nickname_changed_at"`
	AgeGroupChangedAt   time.Time `json:"age_group_changed_at"`
	CityChangedAt       time.Time `json:"city_changed_at"`
	OccupationChangedAt time.Time `json:"occupation_changed_at"`

	NicknameChangeCount int `json:"nickname_change_count"`

	// StickerBalance is the scarce supply of support stickers the user can
	// spend. Never negative.
	StickerBalance int `json:"sticker_balance" gorm:"default:0"`
}

// SignupRequest defines the request body for creating an account profile.
type SignupRequest struct {
	Nickname         string `json:"nickname" validate:"required,min=1,max=20"`
	AvatarURL        string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AgeGroup         string `json:"age_group" validate:"required,max=20"`
	City             string `json:"city" validate:"required,max=40"`
	Occupation       string `json:"occupation" validate:"required,max=40"`
	AgeGroupPublic   *bool  `json:"age_group_public,omitempty"`
	CityPublic       *bool  `json:"city_public,omitempty"`
	OccupationPublic *bool  `json:"occupation_public,omitempty"`
}

// UpdateProfileRequest defines the request body for profile mutation. Gated
// facets use pointers so "absent" and "set to empty" are distinguishable;
// visibility flags are never gated.
type UpdateProfileRequest struct {
	Nickname   *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=20"`
	AvatarURL  *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AgeGroup   *string `json:"age_group,omitempty" validate:"omitempty,max=20"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=40"`
	Occupation *string `json:"occupation,omitempty" validate:"omitempty,max=40"`

	AgeGroupPublic   *bool `json:"age_group_public,omitempty"`
	CityPublic       *bool `json:"city_public,omitempty"`
	OccupationPublic *bool `json:"occupation_public,omitempty"`
}

// UserCompact is a reduced user representation safe to embed in responses.
type UserCompact struct {
	ID        uint   `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact converts a User to its compact representation.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}
