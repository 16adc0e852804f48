package models

import "time"

const (
	RoleProvider = "provider"
	RoleClinic   = "clinic"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ClinicID is set for clinic-admin accounts.
	ClinicID *uint   `json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'provider'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
