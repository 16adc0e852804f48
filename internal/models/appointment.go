package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the public booking code handed to the patient.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ProviderID uint     `gorm:"index" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider"`

	// BranchID is set for independent-provider bookings, ClinicID for
	// clinic-affiliated ones; never both.
	BranchID *uint `json:"branch_id"`
	ClinicID *uint `json:"clinic_id"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ScheduledFor time.Time `gorm:"index" json:"scheduled_for"`
	DurationMin  int       `gorm:"default:30" json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
