package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamfelixjp/jobbers-app/apperror"
	"github.com/iamfelixjp/jobbers-app/auth"
)

func newTestRouter(store JobStore) chi.Router {
	router := chi.NewRouter()
	NewJobHandlers(NewJobService(store)).RegisterRoutes(router)
	return router
}

// doAs performs the request with the given user's claims already attached,
// as JWTMiddleware would have done.
func doAs(router http.Handler, userID, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		claims := &auth.Claims{UserID: userID, Name: "Test User"}
		req = req.WithContext(auth.ContextWithClaims(req.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateJobHandler(t *testing.T) {
	var captured *Job
	store := &mockJobStore{
		createFn: func(ctx context.Context, job *Job) (*Job, error) {
			captured = job
			created := *job
			created.ID = "job-1"
			return &created, nil
		},
	}
	router := newTestRouter(store)

	body, _ := json.Marshal(map[string]string{"company": "Acme", "position": "Go Engineer"})
	rec := doAs(router, "owner-1", http.MethodPost, "/", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Job Job `json:"job"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "job-1", resp.Job.ID)
	assert.Equal(t, "Acme", resp.Job.Company)
	assert.Equal(t, StatusPending, resp.Job.Status)
	assert.Equal(t, "owner-1", captured.CreatedBy)
}

func TestCreateJobHandler_MissingValues(t *testing.T) {
	router := newTestRouter(&mockJobStore{})

	body, _ := json.Marshal(map[string]string{"company": "Acme"})
	rec := doAs(router, "owner-1", http.MethodPost, "/", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "please provide all values", resp.Error)
}

func TestCreateJobHandler_NoClaims(t *testing.T) {
	router := newTestRouter(&mockJobStore{})

	body, _ := json.Marshal(map[string]string{"company": "Acme", "position": "Engineer"})
	rec := doAs(router, "", http.MethodPost, "/", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListJobsHandler(t *testing.T) {
	var captured ListParams
	store := &mockJobStore{
		listFn: func(ctx context.Context, p ListParams) ([]Job, int, error) {
			captured = p
			return []Job{{ID: "job-1", Position: "Engineer", CreatedBy: p.OwnerID}}, 11, nil
		},
	}
	router := newTestRouter(store)

	rec := doAs(router, "owner-1", http.MethodGet, "/?status=pending&sort=latest&search=eng&page=2&limit=10", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "pending", captured.Status)
	assert.Equal(t, "latest", captured.Sort)
	assert.Equal(t, "eng", captured.Search)
	assert.Equal(t, 2, captured.Page)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.TotalJobs)
	assert.Equal(t, 2, resp.NumOfPages)
	assert.Len(t, resp.Jobs, 1)
}

func TestListJobsHandler_EmptyResult(t *testing.T) {
	router := newTestRouter(&mockJobStore{})

	rec := doAs(router, "owner-1", http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jobs":[]`)
}

func TestUpdateJobHandler_NotOwner(t *testing.T) {
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, CreatedBy: "owner-1"}, nil
		},
	}
	router := newTestRouter(store)

	body, _ := json.Marshal(map[string]string{"company": "Acme", "position": "Engineer"})
	rec := doAs(router, "intruder", http.MethodPatch, "/job-1", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateJobHandler(t *testing.T) {
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, Company: "Old", Position: "Old", CreatedBy: "owner-1"}, nil
		},
	}
	router := newTestRouter(store)

	body, _ := json.Marshal(map[string]string{"company": "New Co", "position": "New Role"})
	rec := doAs(router, "owner-1", http.MethodPatch, "/job-1", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		UpdatedJob Job `json:"updatedJob"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "New Co", resp.UpdatedJob.Company)
}

func TestDeleteJobHandler_NotFound(t *testing.T) {
	router := newTestRouter(&mockJobStore{})

	rec := doAs(router, "owner-1", http.MethodDelete, "/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJobHandler(t *testing.T) {
	store := &mockJobStore{
		getByIDFn: func(ctx context.Context, id string) (*Job, error) {
			return &Job{ID: id, CreatedBy: "owner-1"}, nil
		},
	}
	router := newTestRouter(store)

	rec := doAs(router, "owner-1", http.MethodDelete, "/job-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "job removed")
}

func TestStatsHandler(t *testing.T) {
	store := &mockJobStore{
		countByStatusFn: func(ctx context.Context, ownerID string) (map[string]int, error) {
			return map[string]int{StatusPending: 2}, nil
		},
		monthlyCountsFn: func(ctx context.Context, ownerID string, limit int) ([]MonthCount, error) {
			return []MonthCount{{Year: 2026, Month: 8, Count: 2}}, nil
		},
	}
	router := newTestRouter(store)

	rec := doAs(router, "owner-1", http.MethodGet, "/stats", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.DefaultStats.Pending)
	require.Len(t, resp.MonthlyApplications, 1)
	assert.Equal(t, "Aug 2026", resp.MonthlyApplications[0].Date)
}
