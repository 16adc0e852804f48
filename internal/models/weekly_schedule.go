package models

import "time"

const (
	ScheduleOwnerClinic = "clinic"
	ScheduleOwnerBranch = "branch"
)

// WeeklySchedule is one row per (owner, day-of-week). The owner is either a
// clinic (shared by all its doctors) or an independent provider branch.
// DayOfWeek follows the schedule convention: 0=Monday .. 6=Sunday.
// Times are "HH:MM" clock strings; only hour and minute are meaningful.
type WeeklySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerType string `gorm:"size:10;index:idx_schedule_owner_day,unique" json:"owner_type"`
	OwnerID   uint   `gorm:"index:idx_schedule_owner_day,unique" json:"owner_id"`
	DayOfWeek int    `gorm:"index:idx_schedule_owner_day,unique" json:"day_of_week"`

	Enabled    bool   `json:"enabled"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
