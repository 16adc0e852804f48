package models

import "time"

// BlockedRange is an ad hoc unavailability interval for an independent
// provider branch on a specific calendar date. Date is "YYYY-MM-DD",
// times are "HH:MM" clock strings.
type BlockedRange struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `gorm:"index:idx_blocked_branch_date" json:"branch_id"`

	Date      string `gorm:"size:10;index:idx_blocked_branch_date" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
