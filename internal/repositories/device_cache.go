package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	_ "modernc.org/sqlite"
)

// ModerationRepository defines persistence for per-viewer moderation sets.
// The default implementation is the local device cache; a remote per-user
// preference table can be swapped in without touching feed composition.
type ModerationRepository interface {
	GetRecord(ctx context.Context, viewerID uint) (*models.ModerationRecord, error)
	HideStory(ctx context.Context, viewerID uint, storyID string) error
	UnhideStory(ctx context.Context, viewerID uint, storyID string) error
	BlockUser(ctx context.Context, viewerID uint, targetID uint) error
	UnblockUser(ctx context.Context, viewerID uint, targetID uint) error
}

// DraftRepository defines persistence for the single-slot composition draft.
type DraftRepository interface {
	// GetDraft returns the stored draft for the device, or nil when the
	// slot is empty.
	GetDraft(ctx context.Context, deviceID string) (*models.Draft, error)
	SaveDraft(ctx context.Context, deviceID string, draft *models.Draft) error
	DeleteDraft(ctx context.Context, deviceID string) error
}

const deviceCacheSchema = `
CREATE TABLE IF NOT EXISTS hidden_stories (
	viewer_id INTEGER NOT NULL,
	story_id  TEXT NOT NULL,
	PRIMARY KEY (viewer_id, story_id)
);
CREATE TABLE IF NOT EXISTS blocked_users (
	viewer_id  INTEGER NOT NULL,
	blocked_id INTEGER NOT NULL,
	PRIMARY KEY (viewer_id, blocked_id)
);
CREATE TABLE IF NOT EXISTS drafts (
	device_id  TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	categories TEXT NOT NULL DEFAULT '[]',
	feed_type  TEXT NOT NULL,
	is_public  INTEGER NOT NULL DEFAULT 1,
	saved_at   TIMESTAMP NOT NULL
);
`

// DeviceCache implements ModerationRepository and DraftRepository on a local
// SQLite database. It holds only transient per-viewer state; nothing in it
// is replicated to the record store.
type DeviceCache struct {
	db *sql.DB
}

// NewDeviceCache opens (or creates) the cache database at the given path,
// verifies the connection, and applies the schema. The caller should call
// Close when the cache is no longer needed.
func NewDeviceCache(path string) (*DeviceCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open device cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping device cache: %w", err)
	}

	if _, err := db.Exec(deviceCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate device cache: %w", err)
	}

	return &DeviceCache{db: db}, nil
}

// Close closes the underlying database.
func (c *DeviceCache) Close() error {
	return c.db.Close()
}

// GetRecord loads the viewer's moderation record.
func (c *DeviceCache) GetRecord(ctx context.Context, viewerID uint) (*models.ModerationRecord, error) {
	record := &models.ModerationRecord{ViewerID: viewerID}

	rows, err := c.db.QueryContext(ctx, `SELECT story_id FROM hidden_stories WHERE viewer_id = ?`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		record.HiddenStoryIDs = append(record.HiddenStoryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	blocked, err := c.db.QueryContext(ctx, `SELECT blocked_id FROM blocked_users WHERE viewer_id = ?`, viewerID)
	if err != nil {
		return nil, err
	}
	defer blocked.Close()
	for blocked.Next() {
		var id uint
		if err := blocked.Scan(&id); err != nil {
			return nil, err
		}
		record.BlockedUserIDs = append(record.BlockedUserIDs, id)
	}
	return record, blocked.Err()
}

// HideStory inserts a story id into the viewer's hidden set.
func (c *DeviceCache) HideStory(ctx context.Context, viewerID uint, storyID string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO hidden_stories (viewer_id, story_id) VALUES (?, ?)`,
		viewerID, storyID)
	return err
}

// UnhideStory removes a story id from the viewer's hidden set.
func (c *DeviceCache) UnhideStory(ctx context.Context, viewerID uint, storyID string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM hidden_stories WHERE viewer_id = ? AND story_id = ?`,
		viewerID, storyID)
	return err
}

// BlockUser inserts a user id into the viewer's blocked set.
func (c *DeviceCache) BlockUser(ctx context.Context, viewerID uint, targetID uint) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO blocked_users (viewer_id, blocked_id) VALUES (?, ?)`,
		viewerID, targetID)
	return err
}

// UnblockUser removes a user id from the viewer's blocked set.
func (c *DeviceCache) UnblockUser(ctx context.Context, viewerID uint, targetID uint) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM blocked_users WHERE viewer_id = ? AND blocked_id = ?`,
		viewerID, targetID)
	return err
}

// GetDraft returns the device's draft slot, or nil when empty.
func (c *DeviceCache) GetDraft(ctx context.Context, deviceID string) (*models.Draft, error) {
	var (
		draft      models.Draft
		categories string
		isPublic   int
		savedAt    string
	)
	row := c.db.QueryRowContext(ctx,
		`SELECT content, categories, feed_type, is_public, saved_at FROM drafts WHERE device_id = ?`,
		deviceID)
	err := row.Scan(&draft.Content, &categories, &draft.FeedType, &isPublic, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categories), &draft.Categories); err != nil {
		return nil, fmt.Errorf("decode draft categories: %w", err)
	}
	draft.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("decode draft saved_at: %w", err)
	}
	draft.IsPublic = isPublic != 0
	return &draft, nil
}

// SaveDraft upserts the single draft slot for the device.
func (c *DeviceCache) SaveDraft(ctx context.Context, deviceID string, draft *models.Draft) error {
	categories, err := json.Marshal(draft.Categories)
	if err != nil {
		return fmt.Errorf("encode draft categories: %w", err)
	}
	if draft.Categories == nil {
		categories = []byte("[]")
	}

	isPublic := 0
	if draft.IsPublic {
		isPublic = 1
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO drafts (device_id, content, categories, feed_type, is_public, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (device_id) DO UPDATE SET
			content = excluded.content,
			categories = excluded.categories,
			feed_type = excluded.feed_type,
			is_public = excluded.is_public,
			saved_at = excluded.saved_at`,
		deviceID, draft.Content, string(categories), draft.FeedType, isPublic, draft.SavedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// DeleteDraft clears the device's draft slot.
func (c *DeviceCache) DeleteDraft(ctx context.Context, deviceID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM drafts WHERE device_id = ?`, deviceID)
	return err
}
