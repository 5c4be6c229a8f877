package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/heliowatt/feasibility-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store backed by a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to the given database URL and verifies connectivity.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	address    TEXT NOT NULL,
	site       JSONB NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	result     JSONB,
	error      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments(status);
CREATE INDEX IF NOT EXISTS idx_assessments_address ON assessments(address);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateAssessment(ctx context.Context, site model.Site) (*model.Assessment, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	siteJSON, err := json.Marshal(site)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal site")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, address, site, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, site.Address, siteJSON, string(model.AssessmentStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert assessment")
	}

	return &model.Assessment{
		ID:        id,
		Site:      site,
		Status:    model.AssessmentStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) UpdateAssessmentStatus(ctx context.Context, id string, status model.AssessmentStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update assessment status %s", id)
	}
	return checkTagAffected(tag, "assessment", id)
}

func (s *PostgresStore) CompleteAssessment(ctx context.Context, id string, result *model.FeasibilityResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments SET result = $1, status = $2, updated_at = $3 WHERE id = $4`,
		resultJSON, string(model.AssessmentStatusComplete), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete assessment %s", id)
	}
	return checkTagAffected(tag, "assessment", id)
}

func (s *PostgresStore) FailAssessment(ctx context.Context, id string, cause string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assessments SET error = $1, status = $2, updated_at = $3 WHERE id = $4`,
		cause, string(model.AssessmentStatusFailed), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail assessment %s", id)
	}
	return checkTagAffected(tag, "assessment", id)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, site, status, result, error, created_at, updated_at FROM assessments WHERE id = $1`,
		id,
	)
	a, err := scanPgAssessment(row)
	if err == pgx.ErrNoRows {
		return nil, eris.New("assessment not found")
	}
	return a, err
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, site, status, result, error, created_at, updated_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $1`
	}
	if filter.Address != "" {
		args = append(args, filter.Address)
		query += ` AND address = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func scanPgAssessment(row scannable) (*model.Assessment, error) {
	var a model.Assessment
	var siteJSON []byte
	var resultJSON []byte
	var errText *string

	err := row.Scan(&a.ID, &siteJSON, &a.Status, &resultJSON, &errText, &a.CreatedAt, &a.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}

	if err := json.Unmarshal(siteJSON, &a.Site); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal site")
	}
	if len(resultJSON) > 0 {
		a.Result = &model.FeasibilityResult{}
		if err := json.Unmarshal(resultJSON, a.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
	}
	if errText != nil {
		a.Error = *errText
	}

	return &a, nil
}

func checkTagAffected(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

