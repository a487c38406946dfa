package engine

import (
	"context"
	"testing"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationFixture() (*ModerationService, *fakeStoryRepo, *fakeUserRepo, *fakeReportRepo) {
	moderation := newFakeModerationRepo()
	reports := newFakeReportRepo()
	stories := newFakeStoryRepo()
	users := newFakeUserRepo()
	return NewModerationService(moderation, reports, stories, users), stories, users, reports
}

func TestHideUnhideRoundTrip(t *testing.T) {
	svc, stories, _, _ := newModerationFixture()
	id := stories.add(worryStory(2, timeZero()))

	require.NoError(t, svc.HideStory(context.Background(), 1, id))
	record, err := svc.Record(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, record.HiddenStoryIDs, id)

	require.NoError(t, svc.UnhideStory(context.Background(), 1, id))
	record, err = svc.Record(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, record.HiddenStoryIDs)
}

func TestHideUnknownStory(t *testing.T) {
	svc, _, _, _ := newModerationFixture()

	err := svc.HideStory(context.Background(), 1, "64f000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	svc, _, users, _ := newModerationFixture()
	target := users.add(models.User{})

	require.NoError(t, svc.BlockUser(context.Background(), 1, target))
	record, err := svc.Record(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, record.BlockedUserIDs, target)

	require.NoError(t, svc.UnblockUser(context.Background(), 1, target))
	record, err = svc.Record(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, record.BlockedUserIDs)
}

func TestBlockUnknownUser(t *testing.T) {
	svc, _, _, _ := newModerationFixture()

	err := svc.BlockUser(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModerationRecordsArePerViewer(t *testing.T) {
	svc, _, users, _ := newModerationFixture()
	target := users.add(models.User{})

	require.NoError(t, svc.BlockUser(context.Background(), 1, target))

	other, err := svc.Record(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, other.BlockedUserIDs)
}

func TestFileReportStartsPending(t *testing.T) {
	svc, stories, _, _ := newModerationFixture()
	id := stories.add(worryStory(2, timeZero()))

	report, err := svc.FileReport(context.Background(), 1, models.FileReportRequest{
		TargetType: models.ReportTargetStory,
		TargetID:   id,
		Reason:     "spam",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, uint(1), report.ReporterID)
	assert.Nil(t, report.ResolvedAt)
}

func TestFileReportUnknownTarget(t *testing.T) {
	svc, _, _, _ := newModerationFixture()

	_, err := svc.FileReport(context.Background(), 1, models.FileReportRequest{
		TargetType: models.ReportTargetStory,
		TargetID:   "64f000000000000000000000",
		Reason:     "spam",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FileReport(context.Background(), 1, models.FileReportRequest{
		TargetType: models.ReportTargetUser,
		TargetID:   "999",
		Reason:     "abusive",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTriageResolveIsTerminal(t *testing.T) {
	svc, stories, _, reports := newModerationFixture()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	id := stories.add(worryStory(2, timeZero()))

	filed, err := svc.FileReport(context.Background(), 1, models.FileReportRequest{
		TargetType: models.ReportTargetStory,
		TargetID:   id,
		Reason:     "harassment",
	})
	require.NoError(t, err)

	resolved, err := svc.TriageReport(context.Background(), filed.ID, models.ReportStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, now, *resolved.ResolvedAt)

	// A second transition is rejected and leaves the stored status alone.
	_, err = svc.TriageReport(context.Background(), filed.ID, models.ReportStatusDismissed)
	inv := AsInvariant(err)
	require.NotNil(t, inv)
	assert.Equal(t, ReasonTerminalReport, inv.Reason)
	assert.Equal(t, models.ReportStatusResolved, reports.reports[filed.ID].Status)
}

func TestTriageUnknownReport(t *testing.T) {
	svc, _, _, _ := newModerationFixture()

	_, err := svc.TriageReport(context.Background(), "missing", models.ReportStatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReportsFiltersByStatus(t *testing.T) {
	svc, stories, _, _ := newModerationFixture()
	id := stories.add(worryStory(2, timeZero()))

	first, err := svc.FileReport(context.Background(), 1, models.FileReportRequest{
		TargetType: models.ReportTargetStory, TargetID: id, Reason: "spam",
	})
	require.NoError(t, err)
	_, err = svc.FileReport(context.Background(), 3, models.FileReportRequest{
		TargetType: models.ReportTargetStory, TargetID: id, Reason: "abusive",
	})
	require.NoError(t, err)

	_, err = svc.TriageReport(context.Background(), first.ID, models.ReportStatusDismissed)
	require.NoError(t, err)

	pending, err := svc.ListReports(context.Background(), models.ReportStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListReports(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
