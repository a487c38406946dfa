package engine

import (
	"errors"
	"math"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// SkippedField reports a facet left unchanged by the cooldown gate, with
// the remaining wait surfaced to the caller.
type SkippedField struct {
	Field         string `json:"field"`
	RemainingDays int    `json:"remaining_days"`
}

// ProfileUpdateResult describes a partially applied profile mutation.
type ProfileUpdateResult struct {
	User    *models.User   `json:"user"`
	Applied []string       `json:"applied"`
	Skipped []SkippedField `json:"skipped"`
}

// ProfileService implements profile mutation behind the cooldown gate. The
// policy is duration-based for every gated facet; the durations are
// configuration constants, not logic.
type ProfileService struct {
	cfg   Config
	users repositories.UserRepository
	now   func() time.Time
}

// NewProfileService creates a ProfileService.
func NewProfileService(cfg Config, users repositories.UserRepository) *ProfileService {
	return &ProfileService{cfg: cfg, users: users, now: time.Now}
}

// Signup creates a new account with the initial sticker balance. Facet
// timestamps stay zero so the first change of each facet is always allowed.
func (s *ProfileService) Signup(req models.SignupRequest) (*models.User, error) {
	user := &models.User{
		Nickname:         req.Nickname,
		AvatarURL:        req.AvatarURL,
		AgeGroup:         req.AgeGroup,
		City:             req.City,
		Occupation:       req.Occupation,
		AgeGroupPublic:   true,
		CityPublic:       true,
		OccupationPublic: true,
		StickerBalance:   s.cfg.InitialStickerBalance,
	}
	if req.AgeGroupPublic != nil {
		user.AgeGroupPublic = *req.AgeGroupPublic
	}
	if req.CityPublic != nil {
		user.CityPublic = *req.CityPublic
	}
	if req.OccupationPublic != nil {
		user.OccupationPublic = *req.OccupationPublic
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get loads a user profile.
func (s *ProfileService) Get(userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies the requested field changes. Each gated facet is checked
// against its own cooldown; ineligible fields are silently skipped while
// eligible fields in the same request still commit. Visibility flags and
// the avatar are never gated. Last write wins across sessions.
func (s *ProfileService) Update(userID uint, req models.UpdateProfileRequest) (*ProfileUpdateResult, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := s.now()
	result := &ProfileUpdateResult{Applied: []string{}, Skipped: []SkippedField{}}

	apply := func(field string, changedAt *time.Time, cooldown time.Duration, set func()) {
		if remaining := cooldown - now.Sub(*changedAt); !changedAt.IsZero() && remaining > 0 {
			days := int(math.Ceil(remaining.Hours() / 24))
			result.Skipped = append(result.Skipped, SkippedField{Field: field, RemainingDays: days})
			return
		}
		set()
		*changedAt = now
		result.Applied = append(result.Applied, field)
	}

	if req.Nickname != nil && *req.Nickname != user.Nickname {
		apply("nickname", &user.NicknameChangedAt, s.cfg.NicknameCooldown, func() {
			user.Nickname = *req.Nickname
			user.NicknameChangeCount++
		})
	}
	if req.AgeGroup != nil && *req.AgeGroup != user.AgeGroup {
		apply("age_group", &user.AgeGroupChangedAt, s.cfg.AgeGroupCooldown, func() {
			user.AgeGroup = *req.AgeGroup
		})
	}
	if req.City != nil && *req.City != user.City {
		apply("city", &user.CityChangedAt, s.cfg.CityCooldown, func() {
			user.City = *req.City
		})
	}
	if req.Occupation != nil && *req.Occupation != user.Occupation {
		apply("occupation", &user.OccupationChangedAt, s.cfg.OccupationCooldown, func() {
			user.Occupation = *req.Occupation
		})
	}

	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	// Visibility flags change freely; under the snapshot model they only
	// affect stories created from here on.
	if req.AgeGroupPublic != nil {
		user.AgeGroupPublic = *req.AgeGroupPublic
	}
	if req.CityPublic != nil {
		user.CityPublic = *req.CityPublic
	}
	if req.OccupationPublic != nil {
		user.OccupationPublic = *req.OccupationPublic
	}

	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	result.User = user
	return result, nil
}
