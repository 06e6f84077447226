package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamfelixjp/jobbers-app/apperror"
)

// MonthCount is one (year, month) group of the monthly volume aggregate.
type MonthCount struct {
	Year  int
	Month int
	Count int
}

// JobStore persists jobs. The service layer depends on this interface so the
// business rules can be exercised in tests without a database.
type JobStore interface {
	Create(ctx context.Context, job *Job) (*Job, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	// List returns one page of matching jobs plus the total match count
	// ignoring pagination.
	List(ctx context.Context, p ListParams) ([]Job, int, error)
	Update(ctx context.Context, job *Job) (*Job, error)
	Delete(ctx context.Context, id string) error
	// CountByStatus groups the owner's jobs by status.
	CountByStatus(ctx context.Context, ownerID string) (map[string]int, error)
	// MonthlyCounts groups the owner's jobs by (year, month) of creation,
	// newest first, at most limit groups.
	MonthlyCounts(ctx context.Context, ownerID string, limit int) ([]MonthCount, error)
}

// PgxJobStore is the PostgreSQL implementation of JobStore.
type PgxJobStore struct {
	db *pgxpool.Pool
}

// NewPgxJobStore creates a new PgxJobStore.
func NewPgxJobStore(db *pgxpool.Pool) *PgxJobStore {
	return &PgxJobStore{db: db}
}

var _ JobStore = (*PgxJobStore)(nil)

const jobColumns = `id, company, position, status, job_type, job_location, created_by, created_at, updated_at`

func scanJob(row pgx.Row, job *Job) error {
	return row.Scan(
		&job.ID, &job.Company, &job.Position, &job.Status, &job.JobType,
		&job.JobLocation, &job.CreatedBy, &job.CreatedAt, &job.UpdatedAt,
	)
}

// Create inserts a new job with an application-generated id.
func (s *PgxJobStore) Create(ctx context.Context, job *Job) (*Job, error) {
	job.ID = uuid.NewString()
	query := `INSERT INTO jobs (id, company, position, status, job_type, job_location, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query,
		job.ID, job.Company, job.Position, job.Status, job.JobType, job.JobLocation, job.CreatedBy,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create job", err)
	}
	return job, nil
}

// GetByID loads a single job.
func (s *PgxJobStore) GetByID(ctx context.Context, id string) (*Job, error) {
	var job Job
	err := scanJob(s.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id), &job)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no job with id %s", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get job", err)
	}
	return &job, nil
}

// List runs the filtered, sorted, paginated select plus the matching count.
// The two queries are separate round trips, like the listing they serve.
func (s *PgxJobStore) List(ctx context.Context, p ListParams) ([]Job, int, error) {
	query, args := buildListQuery(p)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to list jobs", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var job Job
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, apperror.NewDatabaseError("failed to scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to read jobs", err)
	}

	countQuery, countArgs := buildCountQuery(p)
	var total int
	if err := s.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to count jobs", err)
	}

	return jobs, total, nil
}

// Update replaces the mutable fields of a job in a single UPDATE by id. The
// statement is the only write; atomicity relies on the database's per-row
// guarantee.
func (s *PgxJobStore) Update(ctx context.Context, job *Job) (*Job, error) {
	query := `UPDATE jobs
	          SET company = $2, position = $3, status = $4, job_type = $5, job_location = $6, updated_at = now()
	          WHERE id = $1
	          RETURNING ` + jobColumns
	var updated Job
	err := scanJob(s.db.QueryRow(ctx, query,
		job.ID, job.Company, job.Position, job.Status, job.JobType, job.JobLocation,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("no job with id %s", job.ID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update job", err)
	}
	return &updated, nil
}

// Delete removes a job.
func (s *PgxJobStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete job", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("no job with id %s", id), nil)
	}
	return nil
}

// CountByStatus groups the owner's jobs by status. Statuses with no jobs are
// simply absent from the map; the service fills in the zeroes.
func (s *PgxJobStore) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	rows, err := s.db.Query(ctx,
		`SELECT status, COUNT(*) FROM jobs WHERE created_by = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to aggregate job statuses", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan status count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read status counts", err)
	}
	return counts, nil
}

// MonthlyCounts groups the owner's jobs by calendar month of creation,
// newest month first, capped at limit groups.
func (s *PgxJobStore) MonthlyCounts(ctx context.Context, ownerID string, limit int) ([]MonthCount, error) {
	query := `SELECT EXTRACT(YEAR FROM created_at)::int AS year,
	                 EXTRACT(MONTH FROM created_at)::int AS month,
	                 COUNT(*)::int
	          FROM jobs
	          WHERE created_by = $1
	          GROUP BY year, month
	          ORDER BY year DESC, month DESC
	          LIMIT $2`
	rows, err := s.db.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to aggregate monthly applications", err)
	}
	defer rows.Close()

	var months []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan monthly count", err)
		}
		months = append(months, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read monthly counts", err)
	}
	return months, nil
}
