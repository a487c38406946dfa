package engine

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// ModerationService implements per-viewer hide/block, report filing, and
// the admin triage state machine.
type ModerationService struct {
	moderation repositories.ModerationRepository
	reports    repositories.ReportRepository
	stories    repositories.StoryRepository
	users      repositories.UserRepository
	now        func() time.Time
}

// NewModerationService creates a ModerationService.
func NewModerationService(moderation repositories.ModerationRepository, reports repositories.ReportRepository, stories repositories.StoryRepository, users repositories.UserRepository) *ModerationService {
	return &ModerationService{
		moderation: moderation,
		reports:    reports,
		stories:    stories,
		users:      users,
		now:        time.Now,
	}
}

// Record loads the viewer's moderation record.
func (s *ModerationService) Record(ctx context.Context, viewerID uint) (*models.ModerationRecord, error) {
	return s.moderation.GetRecord(ctx, viewerID)
}

// HideStory adds the story to the viewer's hidden set.
func (s *ModerationService) HideStory(ctx context.Context, viewerID uint, storyID string) error {
	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		if errors.Is(err, repositories.ErrStoryNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.moderation.HideStory(ctx, viewerID, storyID)
}

// UnhideStory removes the story from the viewer's hidden set.
func (s *ModerationService) UnhideStory(ctx context.Context, viewerID uint, storyID string) error {
	return s.moderation.UnhideStory(ctx, viewerID, storyID)
}

// BlockUser adds the user to the viewer's blocked set.
func (s *ModerationService) BlockUser(ctx context.Context, viewerID uint, targetID uint) error {
	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.moderation.BlockUser(ctx, viewerID, targetID)
}

// UnblockUser removes the user from the viewer's blocked set, reversing the
// block exactly.
func (s *ModerationService) UnblockUser(ctx context.Context, viewerID uint, targetID uint) error {
	return s.moderation.UnblockUser(ctx, viewerID, targetID)
}

// FileReport creates a pending report against a story or user.
func (s *ModerationService) FileReport(ctx context.Context, reporterID uint, req models.FileReportRequest) (*models.Report, error) {
	switch req.TargetType {
	case models.ReportTargetStory:
		if _, err := s.stories.GetStoryByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, repositories.ErrStoryNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	case models.ReportTargetUser:
		id, err := strconv.ParseUint(req.TargetID, 10, 32)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.users.GetUserByID(uint(id)); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	report := &models.Report{
		ID:         uuid.NewString(),
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		ReporterID: reporterID,
		Reason:     req.Reason,
		Detail:     req.Detail,
		Status:     models.ReportStatusPending,
		CreatedAt:  s.now(),
	}
	if err := s.reports.CreateReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns reports for admin triage, optionally filtered by
// status.
func (s *ModerationService) ListReports(ctx context.Context, status string) ([]models.Report, error) {
	return s.reports.ListReports(status)
}

// TriageReport moves a pending report into resolved or dismissed. Both
// outcomes are terminal; any transition away from them is rejected.
func (s *ModerationService) TriageReport(ctx context.Context, reportID string, status string) (*models.Report, error) {
	report, err := s.reports.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	at := s.now()
	moved, err := s.reports.TransitionFromPending(reportID, status, at)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, rejectf(ReasonTerminalReport, "report is already %s", report.Status)
	}

	report.Status = status
	report.ResolvedAt = &at
	return report, nil
}
