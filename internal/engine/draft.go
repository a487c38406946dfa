package engine

import (
	"context"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// DraftService implements the single-slot, expiring composition draft.
type DraftService struct {
	cfg    Config
	drafts repositories.DraftRepository
	now    func() time.Time
}

// NewDraftService creates a DraftService.
func NewDraftService(cfg Config, drafts repositories.DraftRepository) *DraftService {
	return &DraftService{cfg: cfg, drafts: drafts, now: time.Now}
}

// Has reports whether a live (unexpired) draft occupies the slot. Callers
// use this to drive the overwrite-confirmation dialog.
func (s *DraftService) Has(ctx context.Context, deviceID string) (bool, error) {
	draft, err := s.load(ctx, deviceID)
	return draft != nil, err
}

// Save overwrites the slot, stamping SavedAt. When a live draft already
// exists the caller must have confirmed the overwrite.
func (s *DraftService) Save(ctx context.Context, deviceID string, draft models.Draft, overwrite bool) (*models.Draft, error) {
	if !overwrite {
		existing, err := s.load(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, rejectf(ReasonDraftExists, "a saved draft already exists; confirm to overwrite it")
		}
	}

	draft.SavedAt = s.now()
	if err := s.drafts.SaveDraft(ctx, deviceID, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Load returns the draft while it is within its lifetime. An expired draft
// is deleted and reported as absent.
func (s *DraftService) Load(ctx context.Context, deviceID string) (*models.Draft, error) {
	return s.load(ctx, deviceID)
}

// Delete clears the slot. Called on successful submission or explicit
// discard.
func (s *DraftService) Delete(ctx context.Context, deviceID string) error {
	return s.drafts.DeleteDraft(ctx, deviceID)
}

func (s *DraftService) load(ctx context.Context, deviceID string) (*models.Draft, error) {
	draft, err := s.drafts.GetDraft(ctx, deviceID)
	if err != nil || draft == nil {
		return nil, err
	}
	if s.now().Sub(draft.SavedAt) >= s.cfg.DraftTTL {
		if err := s.drafts.DeleteDraft(ctx, deviceID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return draft, nil
}
