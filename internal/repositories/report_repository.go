package repositories

import (
	"errors"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"gorm.io/gorm"
)

// ErrReportNotFound is returned when a report id does not resolve to a row.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository defines the interface for moderation report operations.
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id string) (*models.Report, error)
	ListReports(status string) ([]models.Report, error)
	// TransitionFromPending moves a pending report into a terminal status.
	// Returns false without mutating when the report is no longer pending.
	TransitionFromPending(id string, status string, at time.Time) (bool, error)
}

type postgresReportRepository struct {
	db *gorm.DB
}

// NewPostgresReportRepository creates a ReportRepository backed by PostgreSQL.
func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *postgresReportRepository) ListReports(status string) ([]models.Report, error) {
	var reports []models.Report
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *postgresReportRepository) TransitionFromPending(id string, status string, at time.Time) (bool, error) {
	res := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(map[string]interface{}{"status": status, "resolved_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
