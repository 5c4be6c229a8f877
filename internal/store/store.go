// Package store persists assessment runs behind a driver-agnostic
// interface with SQLite and Postgres backends.
package store

import (
	"context"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// AssessmentFilter specifies criteria for listing assessments.
type AssessmentFilter struct {
	Status  model.AssessmentStatus `json:"status,omitempty"`
	Address string                 `json:"address,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
	Offset  int                    `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessment runs.
type Store interface {
	CreateAssessment(ctx context.Context, site model.Site) (*model.Assessment, error)
	UpdateAssessmentStatus(ctx context.Context, id string, status model.AssessmentStatus) error
	CompleteAssessment(ctx context.Context, id string, result *model.FeasibilityResult) error
	FailAssessment(ctx context.Context, id string, cause string) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
