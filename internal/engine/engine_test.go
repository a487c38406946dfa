package engine

import (
	"context"
	"errors"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes shared across the engine tests. They mirror the guarded
// update semantics of the real repositories so race-sensitive paths can be
// exercised deterministically.

func testConfig() Config {
	return Config{
		StickerCatalog: []models.StickerOption{
			{Emoji: "💪", Message: "You've got this!"},
			{Emoji: "🌟", Message: "Cheering for you!"},
		},
		Categories:            []string{"career", "family", "health"},
		EncouragementEvery:    2,
		EncouragementMessages: []string{"first", "second"},
		NicknameCooldown:      90 * 24 * time.Hour,
		AgeGroupCooldown:      300 * 24 * time.Hour,
		CityCooldown:          180 * 24 * time.Hour,
		OccupationCooldown:    180 * 24 * time.Hour,
		DraftTTL:              30 * 24 * time.Hour,
		InitialStickerBalance: 2,
	}
}

type fakeStoryRepo struct {
	stories    map[string]*models.Story
	appendErr  error
	createdSeq int
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: make(map[string]*models.Story)}
}

// add seeds a story and returns its hex id. Creation times step backwards
// so insertion order is newest-first under the default sort.
func (f *fakeStoryRepo) add(story models.Story) string {
	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	if story.CreatedAt.IsZero() {
		f.createdSeq++
		story.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(f.createdSeq) * time.Hour)
	}
	f.stories[story.ID.Hex()] = &story
	return story.ID.Hex()
}

func (f *fakeStoryRepo) CreateStory(_ context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	f.createdSeq++
	story.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(f.createdSeq) * time.Hour)
	story.UpdatedAt = story.CreatedAt
	clone := *story
	f.stories[story.ID.Hex()] = &clone
	return nil
}

func (f *fakeStoryRepo) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	story, ok := f.stories[id]
	if !ok {
		return nil, repositories.ErrStoryNotFound
	}
	clone := *story
	return &clone, nil
}

func (f *fakeStoryRepo) GetAllStories(_ context.Context) ([]models.Story, error) {
	out := make([]models.Story, 0, len(f.stories))
	for _, story := range f.stories {
		out = append(out, *story)
	}
	return out, nil
}

func (f *fakeStoryRepo) GetStoriesByOwnerID(_ context.Context, ownerID uint) ([]models.Story, error) {
	var out []models.Story
	for _, story := range f.stories {
		if story.OwnerID == ownerID {
			out = append(out, *story)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) UpdateStoryContent(_ context.Context, id string, content string, categories []string) error {
	story, ok := f.stories[id]
	if !ok {
		return repositories.ErrStoryNotFound
	}
	story.Content = content
	story.Categories = categories
	return nil
}

func (f *fakeStoryRepo) DeleteStory(_ context.Context, id string) error {
	if _, ok := f.stories[id]; !ok {
		return repositories.ErrStoryNotFound
	}
	delete(f.stories, id)
	return nil
}

func (f *fakeStoryRepo) AddEmpathy(_ context.Context, storyID string, viewerID uint) (bool, error) {
	story, ok := f.stories[storyID]
	if !ok {
		return false, repositories.ErrStoryNotFound
	}
	if story.HasEmpathyFrom(viewerID) {
		return false, nil
	}
	story.EmpathizedBy = append(story.EmpathizedBy, viewerID)
	story.EmpathyCount++
	return true, nil
}

func (f *fakeStoryRepo) RemoveEmpathy(_ context.Context, storyID string, viewerID uint) (bool, error) {
	story, ok := f.stories[storyID]
	if !ok {
		return false, repositories.ErrStoryNotFound
	}
	for i, id := range story.EmpathizedBy {
		if id == viewerID {
			story.EmpathizedBy = append(story.EmpathizedBy[:i], story.EmpathizedBy[i+1:]...)
			story.EmpathyCount--
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStoryRepo) AppendSticker(_ context.Context, storyID string, receipt models.StickerReceipt) (bool, error) {
	if f.appendErr != nil {
		return false, f.appendErr
	}
	story, ok := f.stories[storyID]
	if !ok {
		return false, repositories.ErrStoryNotFound
	}
	if story.ReceiptFrom(receipt.SenderID) != nil {
		return false, nil
	}
	story.Stickers = append(story.Stickers, receipt)
	return true, nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) add(user models.User) uint {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.ID] = &user
	return user.ID
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) AdjustStickerBalance(userID uint, delta int) (bool, error) {
	user, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	if user.StickerBalance+delta < 0 {
		return false, nil
	}
	user.StickerBalance += delta
	return true, nil
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	delete(f.users, id)
	return nil
}

type fakeNotificationRepo struct {
	created   []models.Notification
	createErr error
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(notificationID uint, recipientID uint) error { return nil }

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error { return nil }

type fakeReportRepo struct {
	reports map[string]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*models.Report)}
}

func (f *fakeReportRepo) CreateReport(report *models.Report) error {
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeReportRepo) GetReportByID(id string) (*models.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, repositories.ErrReportNotFound
	}
	clone := *report
	return &clone, nil
}

func (f *fakeReportRepo) ListReports(status string) ([]models.Report, error) {
	var out []models.Report
	for _, report := range f.reports {
		if status == "" || report.Status == status {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) TransitionFromPending(id string, status string, at time.Time) (bool, error) {
	report, ok := f.reports[id]
	if !ok || report.Status != models.ReportStatusPending {
		return false, nil
	}
	report.Status = status
	report.ResolvedAt = &at
	return true, nil
}

type fakeModerationRepo struct {
	records map[uint]*models.ModerationRecord
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{records: make(map[uint]*models.ModerationRecord)}
}

func (f *fakeModerationRepo) record(viewerID uint) *models.ModerationRecord {
	record, ok := f.records[viewerID]
	if !ok {
		record = &models.ModerationRecord{ViewerID: viewerID}
		f.records[viewerID] = record
	}
	return record
}

func (f *fakeModerationRepo) GetRecord(_ context.Context, viewerID uint) (*models.ModerationRecord, error) {
	clone := *f.record(viewerID)
	return &clone, nil
}

func (f *fakeModerationRepo) HideStory(_ context.Context, viewerID uint, storyID string) error {
	record := f.record(viewerID)
	for _, id := range record.HiddenStoryIDs {
		if id == storyID {
			return nil
		}
	}
	record.HiddenStoryIDs = append(record.HiddenStoryIDs, storyID)
	return nil
}

func (f *fakeModerationRepo) UnhideStory(_ context.Context, viewerID uint, storyID string) error {
	record := f.record(viewerID)
	for i, id := range record.HiddenStoryIDs {
		if id == storyID {
			record.HiddenStoryIDs = append(record.HiddenStoryIDs[:i], record.HiddenStoryIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeModerationRepo) BlockUser(_ context.Context, viewerID uint, targetID uint) error {
	record := f.record(viewerID)
	for _, id := range record.BlockedUserIDs {
		if id == targetID {
			return nil
		}
	}
	record.BlockedUserIDs = append(record.BlockedUserIDs, targetID)
	return nil
}

func (f *fakeModerationRepo) UnblockUser(_ context.Context, viewerID uint, targetID uint) error {
	record := f.record(viewerID)
	for i, id := range record.BlockedUserIDs {
		if id == targetID {
			record.BlockedUserIDs = append(record.BlockedUserIDs[:i], record.BlockedUserIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeDraftRepo struct {
	drafts map[string]*models.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*models.Draft)}
}

func (f *fakeDraftRepo) GetDraft(_ context.Context, deviceID string) (*models.Draft, error) {
	draft, ok := f.drafts[deviceID]
	if !ok {
		return nil, nil
	}
	clone := *draft
	return &clone, nil
}

func (f *fakeDraftRepo) SaveDraft(_ context.Context, deviceID string, draft *models.Draft) error {
	clone := *draft
	f.drafts[deviceID] = &clone
	return nil
}

func (f *fakeDraftRepo) DeleteDraft(_ context.Context, deviceID string) error {
	delete(f.drafts, deviceID)
	return nil
}

var errBoom = errors.New("boom")

func timeZero() time.Time {
	return time.Time{}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
