package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	blackfriday "gopkg.in/russross/blackfriday.v2"

	"github.com/jobboardhq/jobs-api/internal/apierror"
	"github.com/jobboardhq/jobs-api/internal/company"
	"github.com/jobboardhq/jobs-api/internal/email"
	"github.com/jobboardhq/jobs-api/internal/job"
	"github.com/jobboardhq/jobs-api/internal/middleware"
	"github.com/jobboardhq/jobs-api/internal/server"
)

// JobRepository is the storage collaborator for job records. It owns all
// cross-request state and every consistency guarantee, handlers never hold
// a record across requests.
type JobRepository interface {
	JobsByFilters(ctx context.Context, f job.Filters) ([]*job.JobPost, error)
	JobByID(ctx context.Context, jobID int) (*job.JobPost, error)
	SaveJob(ctx context.Context, rq *job.JobRq) (*job.JobPost, error)
	UpdateJob(ctx context.Context, jobID int, rq *job.JobRqUpdate) (*job.JobPost, error)
	DeleteJob(ctx context.Context, jobID int) error
	SalarySamples(ctx context.Context) ([]float64, error)
}

type CompanyRepository interface {
	CompanyByHandle(ctx context.Context, handle string) (*company.Company, error)
}

// UserRepository is the collaborator that owns the application association
// and its uniqueness constraint.
type UserRepository interface {
	ApplyToJob(ctx context.Context, username string, jobID int) (int, error)
	AppliedJobIDs(ctx context.Context, username string) ([]int, error)
}

// CreateJobHandler handles POST /jobs. Admin tier only.
func CreateJobHandler(svr server.Server, jobRepo JobRepository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			payload, err := decodeJSONPayload(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if errs := job.ValidateCreate(payload); len(errs) > 0 {
				svr.Error(w, apierror.NewValidation(errs))
				return
			}
			jobRq := job.NewJobRq(payload)
			jobRq.Title = bluemonday.StrictPolicy().Sanitize(jobRq.Title)
			jobRq.CompanyHandle = bluemonday.StrictPolicy().Sanitize(jobRq.CompanyHandle)
			jobPost, err := jobRepo.SaveJob(r.Context(), jobRq)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if err := svr.CacheDelete(server.CacheKeyAllJobs); err != nil {
				svr.Log(err, "unable to invalidate all jobs cache")
			}
			svr.JSON(w, http.StatusCreated, map[string]interface{}{"job": jobPost})
		})
}

// SearchJobsHandler handles GET /jobs. Public tier. Raw query parameters
// are normalized, validated against the search schema and resolved into a
// deterministic selection, an empty filter set returns all records.
func SearchJobsHandler(svr server.Server, jobRepo JobRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := job.ParseFilterQuery(r.URL.Query())
		if errs := job.ValidateSearch(payload); len(errs) > 0 {
			svr.Error(w, apierror.NewValidation(errs))
			return
		}
		filters := job.FiltersFromPayload(payload)
		if filters.Empty() {
			if cached, ok := svr.CacheGet(server.CacheKeyAllJobs); ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}
		}
		jobs, err := jobRepo.JobsByFilters(r.Context(), filters)
		if err != nil {
			svr.Error(w, err)
			return
		}
		res := map[string]interface{}{"jobs": jobs}
		if filters.Empty() {
			if body, err := json.Marshal(res); err == nil {
				if err := svr.CacheSet(server.CacheKeyAllJobs, body); err != nil {
					svr.Log(err, "unable to cache all jobs")
				}
			}
		}
		svr.JSON(w, http.StatusOK, res)
	}
}

// GetJobHandler handles GET /jobs/{id}. Public tier. The response embeds
// the full company detail.
func GetJobHandler(svr server.Server, jobRepo JobRepository, companyRepo CompanyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := jobIDFromRequest(r)
		if err != nil {
			svr.Error(w, err)
			return
		}
		jobPost, err := jobRepo.JobByID(r.Context(), jobID)
		if err != nil {
			svr.Error(w, err)
			return
		}
		comp, err := companyRepo.CompanyByHandle(r.Context(), jobPost.CompanyHandle)
		if err != nil {
			svr.Error(w, err)
			return
		}
		jobPost.Company = comp
		jobPost.CompanyName = comp.Name
		if jobPost.Description != "" {
			jobPost.DescriptionHTML = string(bluemonday.UGCPolicy().SanitizeBytes(blackfriday.Run([]byte(jobPost.Description))))
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"job": jobPost})
	}
}

// UpdateJobHandler handles PATCH /jobs/{id}. Admin tier only. The payload
// must be a non-empty subset of the mutable fields, a payload touching id
// or companyHandle is a validation failure rather than a silent drop.
func UpdateJobHandler(svr server.Server, jobRepo JobRepository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			jobID, err := jobIDFromRequest(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			payload, err := decodeJSONPayload(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if errs := job.ValidateUpdate(payload); len(errs) > 0 {
				svr.Error(w, apierror.NewValidation(errs))
				return
			}
			jobRq := job.NewJobRqUpdate(payload)
			if jobRq.Title != nil {
				title := bluemonday.StrictPolicy().Sanitize(*jobRq.Title)
				jobRq.Title = &title
			}
			jobPost, err := jobRepo.UpdateJob(r.Context(), jobID, jobRq)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if err := svr.CacheDelete(server.CacheKeyAllJobs); err != nil {
				svr.Log(err, "unable to invalidate all jobs cache")
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"job": jobPost})
		})
}

// DeleteJobHandler handles DELETE /jobs/{id}. Admin tier only. The id is
// echoed back as the acknowledgment.
func DeleteJobHandler(svr server.Server, jobRepo JobRepository) http.HandlerFunc {
	return middleware.AdminAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			jobID, err := jobIDFromRequest(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			if err := jobRepo.DeleteJob(r.Context(), jobID); err != nil {
				svr.Error(w, err)
				return
			}
			if err := svr.CacheDelete(server.CacheKeyAllJobs); err != nil {
				svr.Log(err, "unable to invalidate all jobs cache")
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"deleted": jobID})
		})
}

// ApplyToJobHandler handles POST /jobs/{id}/apply for any signed-on user.
// The acting identity always comes from the session, never from the
// request body, so nobody can apply on behalf of another identity. The
// identity is re-checked here even though the outer gate already ran,
// identity propagation is part of this workflow's contract.
func ApplyToJobHandler(svr server.Server, userRepo UserRepository) http.HandlerFunc {
	return middleware.UserAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil || profile.Username == "" {
				svr.Error(w, apierror.NewUnauthorized("authentication required"))
				return
			}
			jobID, err := jobIDFromRequest(r)
			if err != nil {
				svr.Error(w, err)
				return
			}
			appliedID, err := userRepo.ApplyToJob(r.Context(), profile.Username, jobID)
			if err != nil {
				svr.Error(w, err)
				return
			}
			// best-effort receipt, a failure never fails the application
			if svr.GetEmail().Enabled() && profile.Email != "" {
				if err := svr.GetEmail().SendHTMLEmail(
					email.Address{Name: svr.GetEmail().DefaultSenderName(), Email: svr.GetEmail().NoReplySenderAddress()},
					email.Address{Email: profile.Email},
					email.Address{Email: svr.GetEmail().SupportSenderAddress()},
					fmt.Sprintf("Your application on %s", svr.GetConfig().SiteName),
					fmt.Sprintf("We received your application for job %d. You can review your applications at any time on %s.", appliedID, svr.GetConfig().SiteHost),
				); err != nil {
					svr.Log(err, "unable to send application receipt email")
				}
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"applied": appliedID})
		})
}

// ListApplicationsHandler handles GET /applications for the signed-on
// user, the job ids they applied to in ascending order.
func ListApplicationsHandler(svr server.Server, userRepo UserRepository) http.HandlerFunc {
	return middleware.UserAuthenticatedMiddleware(
		svr.SessionStore,
		svr.GetJWTSigningKey(),
		func(w http.ResponseWriter, r *http.Request) {
			profile, err := middleware.GetUserFromJWT(r, svr.SessionStore, svr.GetJWTSigningKey())
			if err != nil || profile.Username == "" {
				svr.Error(w, apierror.NewUnauthorized("authentication required"))
				return
			}
			jobIDs, err := userRepo.AppliedJobIDs(r.Context(), profile.Username)
			if err != nil {
				svr.Error(w, err)
				return
			}
			svr.JSON(w, http.StatusOK, map[string]interface{}{"applications": jobIDs})
		})
}

func jobIDFromRequest(r *http.Request) (int, error) {
	vars := mux.Vars(r)
	jobID, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, apierror.NewNotFound(fmt.Sprintf("no job with id %s", vars["id"]))
	}
	return jobID, nil
}

func decodeJSONPayload(r *http.Request) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, apierror.NewValidation([]string{"malformed json payload"})
	}
	return payload, nil
}
