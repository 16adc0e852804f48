package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClinicAffiliation ties a provider to a clinic as one of its doctors. While
// an affiliation is active the clinic's weekly template governs the
// provider's availability exclusively; the provider's own template is
// ignored for as long as the record stays active.
type ClinicAffiliation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProviderID uint   `gorm:"index" json:"provider_id"`
	ClinicID   uint   `gorm:"index" json:"clinic_id"`
	Clinic     Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"clinic"`

	// DoctorID is the clinic-side identity of the provider, used by the
	// clinic's rosters and date-block requests.
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
