package models

import (
	"time"

	"github.com/google/uuid"
)

// Investor represents a capital-providing investor record.
//
// CheckSizeMin/CheckSizeMax are pointers; nil means the bound is unknown.
// The engine does not require min <= max.
type Investor struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Type         string    `json:"type" db:"type"`
	Firm         string    `json:"firm" db:"firm"`
	Title        string    `json:"title" db:"title"`
	Bio          string    `json:"bio" db:"bio"`
	Sector       string    `json:"sector" db:"sector"`
	SubSector    string    `json:"sub_sector" db:"sub_sector"`
	Stage        string    `json:"stage" db:"stage"`
	Geography    string    `json:"geography" db:"geography"`
	CheckSizeMin *int64    `json:"check_size_min" db:"check_size_min"`
	CheckSizeMax *int64    `json:"check_size_max" db:"check_size_max"`
	Thesis       string    `json:"thesis" db:"thesis"`
	Email        string    `json:"email" db:"email"`
	WebsiteURL   string    `json:"website_url" db:"website_url"`
	Tags         string    `json:"tags" db:"tags"`
	Confidence   int       `json:"confidence" db:"confidence"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
