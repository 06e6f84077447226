package jobs

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/iamfelixjp/jobbers-app/apperror"
)

var validate = validator.New()

// CreateJobRequest is the payload for creating a job. Status, jobType and
// jobLocation are optional and fall back to their defaults.
type CreateJobRequest struct {
	Company     string `json:"company" validate:"required,max=50"`
	Position    string `json:"position" validate:"required,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=pending interview declined"`
	JobType     string `json:"jobType" validate:"omitempty,oneof=full-time part-time remote internship"`
	JobLocation string `json:"jobLocation"`
}

// UpdateJobRequest is the payload for updating a job. The update is a full
// replace of the mutable fields: whatever is posted becomes the job, with
// omitted optional fields reset to their defaults, the same way a create
// fills them in.
type UpdateJobRequest struct {
	Company     string `json:"company" validate:"required,max=50"`
	Position    string `json:"position" validate:"required,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=pending interview declined"`
	JobType     string `json:"jobType" validate:"omitempty,oneof=full-time part-time remote internship"`
	JobLocation string `json:"jobLocation"`
}

// ListJobsQuery carries the supported listing filters, all optional.
type ListJobsQuery struct {
	Status  string
	JobType string
	Search  string
	Sort    string
	Page    int
	Limit   int
}

// ListJobsResponse is the paginated listing result. TotalJobs counts every
// match regardless of pagination; NumOfPages is ceil(TotalJobs/limit).
type ListJobsResponse struct {
	Jobs       []Job `json:"jobs"`
	TotalJobs  int   `json:"totalJobs"`
	NumOfPages int   `json:"numOfPages"`
}

// DefaultStats is the status histogram. Every known status is always
// reported, defaulting to zero when the owner has no jobs in that state.
type DefaultStats struct {
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Declined  int `json:"declined"`
}

// MonthlyApplication is one month of application volume, labelled for direct
// display ("Aug 2026").
type MonthlyApplication struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsResponse is the dashboard aggregate payload.
type StatsResponse struct {
	DefaultStats        DefaultStats         `json:"defaultStats"`
	MonthlyApplications []MonthlyApplication `json:"monthlyApplications"`
}

// checkRequest runs validator tags over a request DTO and converts failures
// into a ValidationError.
func checkRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return apperror.NewValidationError("please provide all values", err)
		case "max":
			return apperror.NewValidationError("value too long", err)
		case "oneof":
			return apperror.NewValidationError("invalid value", err)
		}
	}
	return apperror.NewValidationError("invalid request", err)
}
