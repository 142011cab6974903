package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a persisted company/investor match. One row exists per
// (company_id, investor_id) pair; regenerating matches replaces it.
type Match struct {
	ID             uuid.UUID `json:"id" db:"id"`
	CompanyID      uuid.UUID `json:"company_id" db:"company_id"`
	InvestorID     uuid.UUID `json:"investor_id" db:"investor_id"`
	Score          int       `json:"score" db:"score"`
	SectorScore    int       `json:"sector_score" db:"sector_score"`
	StageScore     int       `json:"stage_score" db:"stage_score"`
	TractionScore  int       `json:"traction_score" db:"traction_score"`
	CheckSizeScore int       `json:"check_size_score" db:"check_size_score"`
	GeoScore       int       `json:"geo_score" db:"geo_score"`
	ThesisScore    int       `json:"thesis_score" db:"thesis_score"`
	Explanation    string    `json:"explanation" db:"explanation"`
	MatchReasons   string    `json:"match_reasons" db:"match_reasons"`
	Status         string    `json:"status" db:"status"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// MatchStatus represents match lifecycle states
type MatchStatus string

const (
	MatchSuggested        MatchStatus = "suggested"
	MatchContacted        MatchStatus = "contacted"
	MatchMeetingScheduled MatchStatus = "meeting_scheduled"
	MatchPassed           MatchStatus = "passed"
	MatchInvested         MatchStatus = "invested"
)
