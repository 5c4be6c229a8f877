package model

import "time"

// AssessmentStatus represents the current state of an assessment run.
type AssessmentStatus string

const (
	AssessmentStatusQueued      AssessmentStatus = "queued"
	AssessmentStatusPermitting  AssessmentStatus = "permitting"
	AssessmentStatusResearching AssessmentStatus = "researching"
	AssessmentStatusScoring     AssessmentStatus = "scoring"
	AssessmentStatusComplete    AssessmentStatus = "complete"
	AssessmentStatusFailed      AssessmentStatus = "failed"
)

// Site is the input to an assessment.
type Site struct {
	Address string        `json:"address"`
	System  SystemDetails `json:"system"`
}

// Assessment is a single feasibility assessment run for a site.
type Assessment struct {
	ID        string             `json:"id"`
	Site      Site               `json:"site"`
	Status    AssessmentStatus   `json:"status"`
	Result    *FeasibilityResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
