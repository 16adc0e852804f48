package models

import "time"

const (
	DateBlockPending  = "pending"
	DateBlockApproved = "approved"
	DateBlockRejected = "rejected"
)

// DateBlockRequest is a clinic-affiliated doctor's request to be unavailable
// on a date. Only approved requests affect availability. A request with
// neither StartTime nor EndTime blocks the whole day.
type DateBlockRequest struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index:idx_date_block_lookup" json:"doctor_id"`
	ClinicID uint `gorm:"index:idx_date_block_lookup" json:"clinic_id"`

	Date      string `gorm:"size:10;index:idx_date_block_lookup" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:10;default:'pending'" json:"status"`

	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullDay reports whether the request blocks the entire date.
func (r *DateBlockRequest) FullDay() bool {
	return r.StartTime == "" && r.EndTime == ""
}
