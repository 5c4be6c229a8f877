package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgresCreateAssessment(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "123 Main St, Los Angeles, CA 90001", pgxmock.AnyArg(),
			"queued", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := s.CreateAssessment(context.Background(), testSite())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.AssessmentStatusQueued, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateAssessmentStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE assessments SET status`).
		WithArgs("permitting", pgxmock.AnyArg(), "abc-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateAssessmentStatus(context.Background(), "abc-123", model.AssessmentStatusPermitting)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateAssessmentStatusNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE assessments SET status`).
		WithArgs("scoring", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateAssessmentStatus(context.Background(), "missing", model.AssessmentStatusScoring)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgresCompleteAssessment(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE assessments SET result`).
		WithArgs(pgxmock.AnyArg(), "complete", pgxmock.AnyArg(), "abc-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	result := &model.FeasibilityResult{
		Jurisdiction: model.JurisdictionSanFrancisco,
		OverallScore: 62,
		Decision:     model.DecisionConditionalGo,
	}
	err := s.CompleteAssessment(context.Background(), "abc-123", result)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFailAssessment(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE assessments SET error`).
		WithArgs("news search unavailable", "failed", pgxmock.AnyArg(), "abc-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.FailAssessment(context.Background(), "abc-123", "news search unavailable")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAssessment(t *testing.T) {
	s, mock := newMockStore(t)

	site := testSite()
	siteJSON, err := json.Marshal(site)
	require.NoError(t, err)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "site", "status", "result", "error", "created_at", "updated_at"}).
		AddRow("abc-123", siteJSON, model.AssessmentStatusQueued, []byte(nil), (*string)(nil), now, now)

	mock.ExpectQuery(`SELECT .+ FROM assessments WHERE id`).
		WithArgs("abc-123").
		WillReturnRows(rows)

	got, err := s.GetAssessment(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, site.Address, got.Site.Address)
	assert.Nil(t, got.Result)
}

func TestPostgresGetAssessmentNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM assessments WHERE id`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAssessment(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgresListAssessments(t *testing.T) {
	s, mock := newMockStore(t)

	siteJSON, err := json.Marshal(testSite())
	require.NoError(t, err)
	resultJSON, err := json.Marshal(&model.FeasibilityResult{OverallScore: 46})
	require.NoError(t, err)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "site", "status", "result", "error", "created_at", "updated_at"}).
		AddRow("a1", siteJSON, model.AssessmentStatusComplete, resultJSON, (*string)(nil), now, now).
		AddRow("a2", siteJSON, model.AssessmentStatusComplete, resultJSON, (*string)(nil), now, now)

	mock.ExpectQuery(`SELECT .+ FROM assessments WHERE 1=1 AND status`).
		WithArgs("complete", 100).
		WillReturnRows(rows)

	got, err := s.ListAssessments(context.Background(), AssessmentFilter{Status: model.AssessmentStatusComplete})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	require.NotNil(t, got[0].Result)
	assert.InDelta(t, 46.0, got[0].Result.OverallScore, 0.001)
}
