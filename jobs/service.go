package jobs

import (
	"context"
)

// JobService defines the business operations over jobs. Handlers depend on
// this interface rather than the concrete implementation.
type JobService interface {
	Create(ctx context.Context, ownerID string, req CreateJobRequest) (*Job, error)
	List(ctx context.Context, ownerID string, q ListJobsQuery) (*ListJobsResponse, error)
	Update(ctx context.Context, callerID, jobID string, req UpdateJobRequest) (*Job, error)
	Delete(ctx context.Context, callerID, jobID string) error
	Stats(ctx context.Context, ownerID string) (*StatsResponse, error)
}

// jobServiceImpl is the implementation of JobService.
type jobServiceImpl struct {
	store JobStore
}

// NewJobService creates a new JobService backed by the given store.
func NewJobService(store JobStore) JobService {
	return &jobServiceImpl{store: store}
}

// applyDefaults fills in the optional fields of a posted job body.
func applyDefaults(status, jobType, jobLocation string) (string, string, string) {
	if status == "" {
		status = StatusPending
	}
	if jobType == "" {
		jobType = JobTypeFullTime
	}
	if jobLocation == "" {
		jobLocation = DefaultJobLocation
	}
	return status, jobType, jobLocation
}

// Create validates the posted body and persists a new job owned by ownerID.
func (s *jobServiceImpl) Create(ctx context.Context, ownerID string, req CreateJobRequest) (*Job, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	status, jobType, jobLocation := applyDefaults(req.Status, req.JobType, req.JobLocation)
	job := &Job{
		Company:     req.Company,
		Position:    req.Position,
		Status:      status,
		JobType:     jobType,
		JobLocation: jobLocation,
		CreatedBy:   ownerID,
	}

	return s.store.Create(ctx, job)
}

// List returns one page of the owner's jobs under the given filters, the
// total match count, and the page count. With zero matches the page count is
// zero and the page is an empty, non-nil slice.
func (s *jobServiceImpl) List(ctx context.Context, ownerID string, q ListJobsQuery) (*ListJobsResponse, error) {
	params := ListParams{
		OwnerID: ownerID,
		Status:  q.Status,
		JobType: q.JobType,
		Search:  q.Search,
		Sort:    q.Sort,
		Page:    q.Page,
		Limit:   q.Limit,
	}.normalized()

	jobs, total, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []Job{}
	}

	numOfPages := (total + params.Limit - 1) / params.Limit // ceil; 0 matches -> 0 pages

	return &ListJobsResponse{
		Jobs:       jobs,
		TotalJobs:  total,
		NumOfPages: numOfPages,
	}, nil
}

// Update replaces the mutable fields of a job after checking that it exists
// and that the caller owns it. The existence/ownership read and the write are
// separate round trips; the record changing in between is an accepted race,
// the single UPDATE by id being the only atomicity relied on.
func (s *jobServiceImpl) Update(ctx context.Context, callerID, jobID string, req UpdateJobRequest) (*Job, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(callerID, existing.CreatedBy); err != nil {
		return nil, err
	}

	status, jobType, jobLocation := applyDefaults(req.Status, req.JobType, req.JobLocation)
	existing.Company = req.Company
	existing.Position = req.Position
	existing.Status = status
	existing.JobType = jobType
	existing.JobLocation = jobLocation

	return s.store.Update(ctx, existing)
}

// Delete removes a job after the same existence and ownership checks as
// Update.
func (s *jobServiceImpl) Delete(ctx context.Context, callerID, jobID string) error {
	existing, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := checkOwnership(callerID, existing.CreatedBy); err != nil {
		return err
	}
	return s.store.Delete(ctx, jobID)
}

// Stats computes the dashboard aggregates over the owner's jobs as currently
// stored; nothing is cached between calls.
func (s *jobServiceImpl) Stats(ctx context.Context, ownerID string) (*StatsResponse, error) {
	counts, err := s.store.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	months, err := s.store.MonthlyCounts(ctx, ownerID, monthlyLimit)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		DefaultStats:        defaultStatsFrom(counts),
		MonthlyApplications: monthlyApplicationsFrom(months),
	}, nil
}
