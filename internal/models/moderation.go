package models

// ModerationRecord is a viewer-local moderation state: hidden story ids and
// blocked user ids. It is never shared with other viewers. The backing
// store is a swappable capability (device cache by default).
type ModerationRecord struct {
	ViewerID       uint     `json:"viewer_id"`
	HiddenStoryIDs []string `json:"hidden_story_ids"`
	BlockedUserIDs []uint   `json:"blocked_user_ids"`
}

// HiddenSet returns the hidden story ids as a lookup set.
func (m *ModerationRecord) HiddenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.HiddenStoryIDs))
	for _, id := range m.HiddenStoryIDs {
		set[id] = struct{}{}
	}
	return set
}

// BlockedSet returns the blocked user ids as a lookup set.
func (m *ModerationRecord) BlockedSet() map[uint]struct{} {
	set := make(map[uint]struct{}, len(m.BlockedUserIDs))
	for _, id := range m.BlockedUserIDs {
		set[id] = struct{}{}
	}
	return set
}
