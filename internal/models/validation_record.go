package models

import "time"

// Validation sources
const (
	SourceValidate = "validate"
	SourceForm     = "form"
)

// ValidationRecord is the outcome of one validation. It holds brand and field
// states only; card digits, dates and codes are never persisted.
type ValidationRecord struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Source            string    `gorm:"not null;index" json:"source"`
	SessionID         string    `gorm:"index" json:"session_id,omitempty"`
	ClientID          string    `gorm:"index" json:"client_id,omitempty"`
	Brand             string    `gorm:"not null;index" json:"brand"`
	Valid             bool      `gorm:"not null" json:"valid"`
	NumberState       string    `gorm:"not null" json:"number_state"`
	ExpirationState   string    `gorm:"not null" json:"expiration_state"`
	SecurityCodeState string    `gorm:"not null" json:"security_code_state"`
	PostalCodeState   string    `json:"postal_code_state,omitempty"`
	IncludeZip        bool      `gorm:"default:false" json:"include_zip"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

// BrandStat aggregates validation outcomes for one brand.
type BrandStat struct {
	Brand   string `json:"brand"`
	Total   int64  `json:"total"`
	Valid   int64  `json:"valid"`
	Invalid int64  `json:"invalid"`
}
