package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/api/middleware"
	"github.com/teamflowhq/teamflow-backend/api/responses"
	"github.com/teamflowhq/teamflow-backend/api/validators"
	appsvc "github.com/teamflowhq/teamflow-backend/internal/applications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type applicationApplyRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id" validate:"required"`
}

type applicationStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Feedback string `json:"feedback,omitempty" validate:"max=1000"`
}

type applicationResponse struct {
	ID            uuid.UUID `json:"id"`
	RecruitmentID uuid.UUID `json:"recruitment_id"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	StatusColor   string    `json:"status_color"`
	Feedback      *string   `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newApplicationResponse(app *models.Application) applicationResponse {
	return applicationResponse{
		ID:            app.ID,
		RecruitmentID: app.RecruitmentID,
		ApplicantID:   app.ApplicantID,
		Status:        app.Status.String(),
		StatusLabel:   app.Status.Label(),
		StatusColor:   app.Status.Color(),
		Feedback:      app.Feedback,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

// ApplicationApply submits a candidacy against a published posting.
func ApplicationApply(svc appsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		recruitmentID, err := uuid.Parse(chi.URLParam(r, "recruitmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recruitment id"))
			return
		}

		var payload applicationApplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Apply(r.Context(), appsvc.ApplyInput{
			RecruitmentID: recruitmentID,
			ApplicantID:   payload.ApplicantID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newApplicationResponse(app))
	}
}

func ApplicationList(svc appsvc.Service, logg *logger.Logger, limits pagination.Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		recruitmentID, err := uuid.Parse(chi.URLParam(r, "recruitmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recruitment id"))
			return
		}

		params, err := validators.ParsePagination(r, limits)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), appsvc.ListParams{
			RecruitmentID: recruitmentID,
			Status:        r.URL.Query().Get("status"),
			Page:          params.Page,
			PerPage:       params.PerPage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]applicationResponse, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, newApplicationResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, pagination.Page[applicationResponse]{
			Items:    items,
			Page:     page.Page,
			PerPage:  page.PerPage,
			LastPage: page.LastPage,
			Total:    page.Total,
		})
	}
}

// ApplicationUpdateStatus moves a candidacy through review. Accepted and
// rejected applications are final.
func ApplicationUpdateStatus(svc appsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "applicationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid application id"))
			return
		}

		var payload applicationStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.UpdateStatus(r.Context(), id, appsvc.UpdateStatusInput{
			Status:    payload.Status,
			Feedback:  payload.Feedback,
			ActorName: middleware.ActorNameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newApplicationResponse(app))
	}
}
