package jobs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iamfelixjp/jobbers-app/apperror"
	"github.com/iamfelixjp/jobbers-app/auth"
)

// JobHandlers handles HTTP requests for the jobs routes. It delegates
// business logic to the JobService and only deals with decoding, identity
// extraction and response writing.
type JobHandlers struct {
	service JobService
}

// NewJobHandlers creates a new JobHandlers.
func NewJobHandlers(service JobService) *JobHandlers {
	return &JobHandlers{service: service}
}

// RegisterRoutes registers the job API routes on a chi sub-router. The whole
// group sits behind the JWT middleware, mounted in main.
func (h *JobHandlers) RegisterRoutes(router chi.Router) {
	router.Post("/", h.createJob)
	router.Get("/", h.listJobs)
	router.Get("/stats", h.showStats)
	router.Patch("/{id}", h.updateJob)
	router.Delete("/{id}", h.deleteJob)
}

// caller extracts the authenticated user's claims or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("authentication invalid", nil))
		return nil, false
	}
	return claims, true
}

// createJob handles POST /jobs.
func (h *JobHandlers) createJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	job, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, map[string]interface{}{"job": job})
}

// listJobs handles GET /jobs with the optional status, jobType, sort, search,
// page and limit query parameters.
func (h *JobHandlers) listJobs(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	q := ListJobsQuery{
		Status:  r.URL.Query().Get("status"),
		JobType: r.URL.Query().Get("jobType"),
		Search:  r.URL.Query().Get("search"),
		Sort:    r.URL.Query().Get("sort"),
		Page:    atoiOrZero(r.URL.Query().Get("page")),
		Limit:   atoiOrZero(r.URL.Query().Get("limit")),
	}

	resp, err := h.service.List(r.Context(), claims.UserID, q)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, resp)
}

// updateJob handles PATCH /jobs/{id}.
func (h *JobHandlers) updateJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	job, err := h.service.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, map[string]interface{}{"updatedJob": job})
}

// deleteJob handles DELETE /jobs/{id}.
func (h *JobHandlers) deleteJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, map[string]string{"msg": "success, job removed"})
}

// showStats handles GET /jobs/stats.
func (h *JobHandlers) showStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Stats(r.Context(), claims.UserID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, resp)
}

// atoiOrZero parses a query parameter, treating absence or garbage as zero so
// the service applies its defaults.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
