package jobs

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamfelixjp/jobbers-app/apperror"
)

// mockJobStore lets each test plug in just the calls it cares about.
type mockJobStore struct {
	createFn        func(ctx context.Context, job *Job) (*Job, error)
	getByIDFn       func(ctx context.Context, id string) (*Job, error)
	listFn          func(ctx context.Context, p ListParams) ([]Job, int, error)
	updateFn        func(ctx context.Context, job *Job) (*Job, error)
	deleteFn        func(ctx context.Context, id string) error
	countByStatusFn func(ctx context.Context, ownerID string) (map[string]int, error)
	monthlyCountsFn func(ctx context.Context, ownerID string, limit int) ([]MonthCount, error)
}

func (m *mockJobStore) Create(ctx context.Context, job *Job) (*Job, error) {
	if m.createFn != nil {
		return m.createFn(ctx, job)
	}
	created := *job
	created.ID = "generated-id"
	return &created, nil
}

func (m *mockJobStore) GetByID(ctx context.Context, id string) (*Job, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("no job with id %s", id), nil)
}

func (m *mockJobStore) List(ctx context.Context, p ListParams) ([]Job, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, p)
	}
	return []Job{}, 0, nil
}

func (m *mockJobStore) Update(ctx context.Context, job *Job) (*Job, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, job)
	}
	return job, nil
}

func (m *mockJobStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockJobStore) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	if m.countByStatusFn != nil {
		return m.countByStatusFn(ctx, ownerID)
	}
	return map[string]int{}, nil
}

func (m *mockJobStore) MonthlyCounts(ctx context.Context, ownerID string, limit int) ([]MonthCount, error) {
	if m.monthlyCountsFn != nil {
		return m.monthlyCountsFn(ctx, ownerID, limit)
	}
	return nil, nil
}

var _ JobStore = (*mockJobStore)(nil)

func TestCreateJob_DefaultsAndOwner(t *testing.T) {
	var captured *Job
	store := &mockJobStore{
		createFn: func(ctx context.Context, job *Job) (*Job, error) {
			captured = job
			created := *job
			created.ID = "job-1"
			return &created, nil
		},
	}
	service := NewJobService(store)

	job, err := service.Create(context.Background(), "owner-1", CreateJobRequest{
		Company:  "Acme",
		Position: "Go Engineer",
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "owner-1", captured.CreatedBy)
	assert.Equal(t, StatusPending, captured.Status)
	assert.Equal(t, JobTypeFullTime, captured.JobType)
	assert.Equal(t, DefaultJobLocation, captured.JobLocation)
	assert.Equal(t, "job-1", job.ID)
}

func TestCreateJob_MissingValues(t *testing.T) {
	calls := 0
	store := &mockJobStore{
		createFn: func(ctx context.Context, job *Job) (*Job, error) {
			calls++
			return job, nil
		},
	}
	service := NewJobService(store)

	tests := []struct {
		name string
		req  CreateJobRequest
	}{
		{"no company", CreateJobRequest{Position: "Engineer"}},
		{"no position", CreateJobRequest{Company: "Acme"}},
		{"bad status", CreateJobRequest{Company: "Acme", Position: "Engineer", Status: "ghosted"}},
		{"bad job type", CreateJobRequest{Company: "Acme", Position: "Engineer", JobType: "gig"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "owner-1", tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
		})
	}
	assert.Zero(t, calls, "invalid requests must not reach the store")
}

func TestListJobs_Pagination(t *testing.T) {
	var captured ListParams
	store := &mockJobStore{
		listFn: func(ctx context.Context, p ListParams) ([]Job, int, error) {
			captured = p
			page := make([]Job, 5)
			return page, 25, nil
		},
	}
	service := NewJobService(store)

	resp, err := service.List(context.Background(), "owner-1", ListJobsQuery{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "owner-1", captured.OwnerID)
	assert.Equal(t, 3, captured.Page)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 25, resp.TotalJobs)
	assert.Equal(t, 3, resp.NumOfPages)
	assert.Len(t, resp.Jobs, 5)
}

func TestListJobs_NoMatches(t *testing.T) {
	store := &mockJobStore{
		listFn: func(ctx context.Context, p ListParams) ([]Job, int, error) {
			return nil, 0, nil
		},
	}
	service := NewJobService(store)

	resp, err := service.List(context.Background(), "owner-1", ListJobsQuery{})
	require.NoError(t, err)

	assert.NotNil(t, resp.Jobs, "jobs must serialize as [] rather than null")
	assert.Empty(t, resp.Jobs)
	assert.Zero(t, resp.TotalJobs)
	assert.Zero(t, resp.NumOfPages)
}

func TestUpdateJob_ReplacesMutableFields(t *testing.T) {
	existing := &Job{
		ID:        "job-1",
		Company:   "Old Co",
		Position:  "Old Role",
		Status:    StatusPending,
		JobType:   JobTypeFullTime,
		CreatedBy: "owner-1",
	}
	var written *Job
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, job *Job) (*Job, error) {
			written = job
			return job, nil
		},
	}
	service := NewJobService(store)

	updated, err := service.Update(context.Background(), "owner-1", "job-1", UpdateJobRequest{
		Company:     "New Co",
		Position:    "New Role",
		Status:      StatusInterview,
		JobType:     JobTypeRemote,
		JobLocation: "Berlin",
	})
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.Equal(t, "New Co", written.Company)
	assert.Equal(t, StatusInterview, written.Status)
	assert.Equal(t, JobTypeRemote, written.JobType)
	assert.Equal(t, "Berlin", written.JobLocation)
	assert.Equal(t, "owner-1", written.CreatedBy, "ownership never changes on update")
	assert.Equal(t, "New Co", updated.Company)
}

func TestUpdateJob_NotOwner(t *testing.T) {
	writes := 0
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, CreatedBy: "owner-1"}, nil
		},
		updateFn: func(ctx context.Context, job *Job) (*Job, error) {
			writes++
			return job, nil
		},
	}
	service := NewJobService(store)

	_, err := service.Update(context.Background(), "intruder", "job-1", UpdateJobRequest{
		Company:  "New Co",
		Position: "New Role",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorizedError(err))
	assert.Zero(t, writes)
}

func TestUpdateJob_NotFound(t *testing.T) {
	service := NewJobService(&mockJobStore{})

	_, err := service.Update(context.Background(), "owner-1", "missing", UpdateJobRequest{
		Company:  "New Co",
		Position: "New Role",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteJob(t *testing.T) {
	deleted := ""
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, CreatedBy: "owner-1"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	service := NewJobService(store)

	require.NoError(t, service.Delete(context.Background(), "owner-1", "job-1"))
	assert.Equal(t, "job-1", deleted)
}

func TestDeleteJob_NotOwner(t *testing.T) {
	deletes := 0
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, CreatedBy: "owner-1"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deletes++
			return nil
		},
	}
	service := NewJobService(store)

	err := service.Delete(context.Background(), "intruder", "job-1")
	require.Error(t, err)
	assert.True(t, apperror.IsUnauthorizedError(err))
	assert.Zero(t, deletes)
}

func TestStats_Shape(t *testing.T) {
	store := &mockJobStore{
		countByStatusFn: func(ctx context.Context, ownerID string) (map[string]int, error) {
			return map[string]int{StatusPending: 3, StatusInterview: 1}, nil
		},
		monthlyCountsFn: func(ctx context.Context, ownerID string, limit int) ([]MonthCount, error) {
			assert.Equal(t, 6, limit)
			return []MonthCount{
				{Year: 2026, Month: 8, Count: 4},
				{Year: 2026, Month: 7, Count: 2},
			}, nil
		},
	}
	service := NewJobService(store)

	stats, err := service.Stats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.DefaultStats.Pending)
	assert.Equal(t, 1, stats.DefaultStats.Interview)
	assert.Equal(t, 0, stats.DefaultStats.Declined, "missing statuses default to zero")

	require.Len(t, stats.MonthlyApplications, 2)
	assert.Equal(t, "Jul 2026", stats.MonthlyApplications[0].Date, "oldest month comes first")
	assert.Equal(t, 2, stats.MonthlyApplications[0].Count)
	assert.Equal(t, "Aug 2026", stats.MonthlyApplications[1].Date)
}

func TestStats_Empty(t *testing.T) {
	service := NewJobService(&mockJobStore{})

	stats, err := service.Stats(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, DefaultStats{}, stats.DefaultStats)
	assert.NotNil(t, stats.MonthlyApplications)
	assert.Empty(t, stats.MonthlyApplications)
}
