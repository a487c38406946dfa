package models

import "time"

// Report target types.
const (
	ReportTargetStory = "story"
	ReportTargetUser  = "user"
)

// Report statuses. A report starts pending and is transitioned exactly once
// by an administrator; both outcomes are terminal.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report represents a viewer-filed moderation report (PostgreSQL).
type Report struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	TargetType string     `json:"target_type" gorm:"size:10;index"`
	TargetID   string     `json:"target_id" gorm:"index"`
	ReporterID uint       `json:"reporter_id" gorm:"index"`
	Reason     string     `json:"reason" gorm:"size:20"`
	Detail     string     `json:"detail,omitempty"`
	Status     string     `json:"status" gorm:"size:10;index;default:pending"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// FileReportRequest defines the request body for filing a report.
type FileReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=story user"`
	TargetID   string `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,oneof=inappropriate abusive spam harassment impersonation other"`
	Detail     string `json:"detail,omitempty" validate:"omitempty,max=500"`
}
