package models

import "time"

type Provider struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Specialty string `gorm:"size:100" json:"specialty"`
	Bio       string `gorm:"size:500" json:"bio"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderBranch is a physical location of an independent provider. Weekly
// templates and blocked ranges attach to the branch, not the provider.
type ProviderBranch struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	ProviderID uint     `gorm:"index" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	Name      string `gorm:"size:100" json:"name"`
	Address   string `gorm:"size:255" json:"address"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
