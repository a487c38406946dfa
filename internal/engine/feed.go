package engine

import (
	"sort"

	"github.com/muje-team/muje-backend/internal/models"
)

// Feed tabs.
type Tab string

const (
	TabWorry      Tab = "worry"
	TabGrateful   Tab = "grateful"
	TabEmpathized Tab = "empathized"
)

// Feed sort orders. SortEmpathy is the profile-only "most empathized"
// option; the default is reverse-chronological.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortEmpathy SortOrder = "empathy"
)

// Feed item kinds.
const (
	FeedItemStory         = "story"
	FeedItemBlocked       = "blocked"
	FeedItemEncouragement = "encouragement"
)

// FeedItem is one entry of a composed feed. A blocked-author placeholder
// keeps its slot in the sequence and exposes only the owner id, so the
// viewer can undo the block. Encouragement cards carry just a message.
type FeedItem struct {
	Kind    string        `json:"kind"`
	Story   *models.Story `json:"story,omitempty"`
	OwnerID uint          `json:"owner_id,omitempty"`
	Message string        `json:"message,omitempty"`
}

// FeedComposer derives per-viewer visible feeds from the raw story
// collection. Compose is a pure function of its inputs: identical inputs
// always yield identical output order and membership.
type FeedComposer struct {
	cfg Config
}

// NewFeedComposer creates a FeedComposer with the given tuning data.
func NewFeedComposer(cfg Config) *FeedComposer {
	return &FeedComposer{cfg: cfg}
}

// Compose filters, orders, and decorates the story collection for one
// viewer. Hidden stories are dropped unless their owner is also blocked, in
// which case the block wins and the story stays as a placeholder.
func (f *FeedComposer) Compose(stories []models.Story, viewerID uint, tab Tab, categories []string, mod *models.ModerationRecord, order SortOrder) []FeedItem {
	hidden := mod.HiddenSet()
	blocked := mod.BlockedSet()

	kept := make([]models.Story, 0, len(stories))
	for _, story := range stories {
		if !f.matchesTab(&story, viewerID, tab) {
			continue
		}
		if !story.IsPublic && story.OwnerID != viewerID {
			continue
		}
		if len(categories) > 0 && !intersects(story.Categories, categories) {
			continue
		}
		if _, isHidden := hidden[story.ID.Hex()]; isHidden {
			if _, isBlocked := blocked[story.OwnerID]; !isBlocked {
				continue
			}
		}
		kept = append(kept, story)
	}

	sortStories(kept, order)

	items := make([]FeedItem, 0, len(kept))
	realCount := 0
	for i := range kept {
		story := kept[i]
		if _, isBlocked := blocked[story.OwnerID]; isBlocked {
			items = append(items, FeedItem{Kind: FeedItemBlocked, OwnerID: story.OwnerID})
		} else {
			items = append(items, FeedItem{Kind: FeedItemStory, Story: &kept[i]})
		}
		realCount++

		if f.cfg.EncouragementEvery > 0 &&
			realCount%f.cfg.EncouragementEvery == 0 &&
			i != len(kept)-1 &&
			len(f.cfg.EncouragementMessages) > 0 {
			slot := realCount/f.cfg.EncouragementEvery - 1
			msg := f.cfg.EncouragementMessages[slot%len(f.cfg.EncouragementMessages)]
			items = append(items, FeedItem{Kind: FeedItemEncouragement, Message: msg})
		}
	}
	return items
}

func (f *FeedComposer) matchesTab(story *models.Story, viewerID uint, tab Tab) bool {
	switch tab {
	case TabWorry:
		return story.FeedType == models.FeedTypeWorry
	case TabGrateful:
		return story.FeedType == models.FeedTypeGrateful
	case TabEmpathized:
		// Spans both feed types; membership in the empathizer set decides.
		return story.HasEmpathyFrom(viewerID)
	default:
		return false
	}
}

func sortStories(stories []models.Story, order SortOrder) {
	switch order {
	case SortEmpathy:
		sort.SliceStable(stories, func(i, j int) bool {
			if stories[i].EmpathyCount != stories[j].EmpathyCount {
				return stories[i].EmpathyCount > stories[j].EmpathyCount
			}
			return stories[i].CreatedAt.After(stories[j].CreatedAt)
		})
	default:
		sort.SliceStable(stories, func(i, j int) bool {
			return stories[i].CreatedAt.After(stories[j].CreatedAt)
		})
	}
}

// intersects reports whether the two category sets share a member (OR
// semantics over the selected filters).
func intersects(categories, filter []string) bool {
	for _, c := range categories {
		for _, f := range filter {
			if c == f {
				return true
			}
		}
	}
	return false
}
