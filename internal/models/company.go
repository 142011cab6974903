package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a funding-seeking company record.
//
// Numeric funding and traction fields are pointers: nil means the value is
// unknown, which the matching engine treats differently from zero.
type Company struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Sector        string    `json:"sector" db:"sector"`
	SubSector     string    `json:"sub_sector" db:"sub_sector"`
	Stage         string    `json:"stage" db:"stage"`
	Geography     string    `json:"geography" db:"geography"`
	BusinessModel string    `json:"business_model" db:"business_model"`
	TargetMarket  string    `json:"target_market" db:"target_market"`
	FundingTarget *int64    `json:"funding_target" db:"funding_target"`
	FundingRaised *int64    `json:"funding_raised" db:"funding_raised"`
	Revenue       *int64    `json:"revenue" db:"revenue"`
	RevenueGrowth *float64  `json:"revenue_growth" db:"revenue_growth"`
	Customers     *int64    `json:"customers" db:"customers"`
	MRR           *int64    `json:"mrr" db:"mrr"`
	WebsiteURL    string    `json:"website_url" db:"website_url"`
	FounderName   string    `json:"founder_name" db:"founder_name"`
	FounderEmail  string    `json:"founder_email" db:"founder_email"`
	Tags          string    `json:"tags" db:"tags"`
	Confidence    int       `json:"confidence" db:"confidence"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
