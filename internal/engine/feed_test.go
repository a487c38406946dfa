package engine

import (
	"context"
	"testing"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worryStory(ownerID uint, createdAt time.Time) models.Story {
	return models.Story{
		OwnerID:    ownerID,
		FeedType:   models.FeedTypeWorry,
		Content:    "some worry",
		Categories: []string{"career"},
		IsPublic:   true,
		CreatedAt:  createdAt,
	}
}

func emptyRecord() *models.ModerationRecord {
	return &models.ModerationRecord{ViewerID: 1}
}

func TestComposeFiltersTab(t *testing.T) {
	repo := newFakeStoryRepo()
	repo.add(worryStory(2, time.Time{}))
	grateful := worryStory(3, time.Time{})
	grateful.FeedType = models.FeedTypeGrateful
	grateful.Categories = nil
	repo.add(grateful)

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)
	require.Len(t, items, 1)
	assert.Equal(t, models.FeedTypeWorry, items[0].Story.FeedType)

	items = composer.Compose(stories, 1, TabGrateful, nil, emptyRecord(), SortNewest)
	require.Len(t, items, 1)
	assert.Equal(t, models.FeedTypeGrateful, items[0].Story.FeedType)
}

func TestComposeEmpathizedTabSpansFeedTypes(t *testing.T) {
	repo := newFakeStoryRepo()
	worry := worryStory(2, time.Time{})
	worry.EmpathizedBy = []uint{1}
	worry.EmpathyCount = 1
	repo.add(worry)

	grateful := worryStory(3, time.Time{})
	grateful.FeedType = models.FeedTypeGrateful
	grateful.Categories = nil
	grateful.EmpathizedBy = []uint{1}
	grateful.EmpathyCount = 1
	repo.add(grateful)

	repo.add(worryStory(4, time.Time{})) // no empathy from viewer 1

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabEmpathized, nil, emptyRecord(), SortNewest)
	assert.Len(t, items, 2)
}

func TestComposeHiddenStoryDropped(t *testing.T) {
	repo := newFakeStoryRepo()
	hiddenID := repo.add(worryStory(2, time.Time{}))
	repo.add(worryStory(3, time.Time{}))

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	record := emptyRecord()
	record.HiddenStoryIDs = []string{hiddenID}

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, record, SortNewest)
	require.Len(t, items, 1)
	assert.NotEqual(t, hiddenID, items[0].Story.ID.Hex())
}

func TestComposeBlockedAuthorPlaceholder(t *testing.T) {
	repo := newFakeStoryRepo()
	repo.add(worryStory(2, time.Time{}))
	repo.add(worryStory(3, time.Time{}))

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	record := emptyRecord()
	record.BlockedUserIDs = []uint{2}

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, record, SortNewest)
	require.Len(t, items, 2)

	var placeholders int
	for _, item := range items {
		if item.Kind == FeedItemBlocked {
			placeholders++
			assert.Nil(t, item.Story)
			assert.Equal(t, uint(2), item.OwnerID)
		}
	}
	assert.Equal(t, 1, placeholders)
}

func TestComposeBlockWinsOverHide(t *testing.T) {
	repo := newFakeStoryRepo()
	id := repo.add(worryStory(2, time.Time{}))

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	record := emptyRecord()
	record.HiddenStoryIDs = []string{id}
	record.BlockedUserIDs = []uint{2}

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, record, SortNewest)
	require.Len(t, items, 1)
	assert.Equal(t, FeedItemBlocked, items[0].Kind)
}

func TestComposePrivateStoryOnlyVisibleToOwner(t *testing.T) {
	repo := newFakeStoryRepo()
	private := worryStory(2, time.Time{})
	private.IsPublic = false
	repo.add(private)

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	assert.Empty(t, composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest))
	assert.Len(t, composer.Compose(stories, 2, TabWorry, nil, emptyRecord(), SortNewest), 1)
}

func TestComposeCategoryFilterOrSemantics(t *testing.T) {
	repo := newFakeStoryRepo()
	career := worryStory(2, time.Time{})
	repo.add(career)
	family := worryStory(3, time.Time{})
	family.Categories = []string{"family"}
	repo.add(family)
	health := worryStory(4, time.Time{})
	health.Categories = []string{"health"}
	repo.add(health)

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, []string{"career", "family"}, emptyRecord(), SortNewest)
	assert.Len(t, items, 2)
}

func TestComposeEncouragementInterleave(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeStoryRepo()
	for i := 0; i < 5; i++ {
		repo.add(worryStory(2, base.Add(-time.Duration(i)*time.Hour)))
	}

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig()) // every 2nd real item
	items := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)

	// 5 stories with a card after the 2nd and 4th, never after the last.
	require.Len(t, items, 7)
	assert.Equal(t, FeedItemStory, items[0].Kind)
	assert.Equal(t, FeedItemStory, items[1].Kind)
	assert.Equal(t, FeedItemEncouragement, items[2].Kind)
	assert.Equal(t, "first", items[2].Message)
	assert.Equal(t, FeedItemEncouragement, items[5].Kind)
	assert.Equal(t, "second", items[5].Message)
	assert.Equal(t, FeedItemStory, items[6].Kind)
}

func TestComposeNoEncouragementAfterLastItem(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeStoryRepo()
	repo.add(worryStory(2, base))
	repo.add(worryStory(3, base.Add(-time.Hour)))

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)
	require.Len(t, items, 2)
	assert.Equal(t, FeedItemStory, items[len(items)-1].Kind)
}

func TestComposeDeterministic(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeStoryRepo()
	for i := 0; i < 8; i++ {
		repo.add(worryStory(uint(i+2), base.Add(-time.Duration(i)*time.Minute)))
	}

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	first := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)
	second := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)
	assert.Equal(t, first, second)
}

func TestComposeSortNewestDefault(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeStoryRepo()
	oldID := repo.add(worryStory(2, base.Add(-2*time.Hour)))
	newID := repo.add(worryStory(3, base))

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortNewest)
	require.Len(t, items, 2)
	assert.Equal(t, newID, items[0].Story.ID.Hex())
	assert.Equal(t, oldID, items[1].Story.ID.Hex())
}

func TestComposeSortByEmpathy(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeStoryRepo()
	low := worryStory(2, base)
	low.EmpathyCount = 1
	lowID := repo.add(low)
	high := worryStory(3, base.Add(-time.Hour))
	high.EmpathyCount = 7
	highID := repo.add(high)

	stories, err := repo.GetAllStories(context.Background())
	require.NoError(t, err)

	composer := NewFeedComposer(testConfig())
	items := composer.Compose(stories, 1, TabWorry, nil, emptyRecord(), SortEmpathy)
	require.Len(t, items, 2)
	assert.Equal(t, highID, items[0].Story.ID.Hex())
	assert.Equal(t, lowID, items[1].Story.ID.Hex())
}
