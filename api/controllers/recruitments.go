package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/api/middleware"
	"github.com/teamflowhq/teamflow-backend/api/responses"
	"github.com/teamflowhq/teamflow-backend/api/validators"
	"github.com/teamflowhq/teamflow-backend/internal/lifecycle"
	recsvc "github.com/teamflowhq/teamflow-backend/internal/recruitments"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type recruitmentCreateRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"required"`
	Type        string     `json:"type" validate:"required,max=50"`
	Location    string     `json:"location" validate:"required,max=200"`
	SalaryMin   *int       `json:"salary_min,omitempty"`
	SalaryMax   *int       `json:"salary_max,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AutoClose   bool       `json:"auto_close,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by" validate:"required"`
}

type recruitmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

type recruitmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	SalaryMin   *int       `json:"salary_min,omitempty"`
	SalaryMax   *int       `json:"salary_max,omitempty"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	StatusColor string     `json:"status_color"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AutoClose   bool       `json:"auto_close"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type recruitmentUpdateResponse struct {
	Recruitment    recruitmentResponse `json:"recruitment"`
	Confirmation   string              `json:"confirmation,omitempty"`
	AllowedTargets []string            `json:"allowed_targets"`
}

func newRecruitmentResponse(rec *models.Recruitment) recruitmentResponse {
	return recruitmentResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Type:        rec.Type,
		Location:    rec.Location,
		SalaryMin:   rec.SalaryMin,
		SalaryMax:   rec.SalaryMax,
		Status:      rec.Status.String(),
		StatusLabel: rec.Status.Label(),
		StatusColor: rec.Status.Color(),
		Deadline:    rec.Deadline,
		AutoClose:   rec.AutoClose,
		CreatedBy:   rec.CreatedBy,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func RecruitmentCreate(svc recsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recruitments service unavailable"))
			return
		}

		var payload recruitmentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rec, err := svc.Create(r.Context(), recsvc.CreateInput{
			Title:       payload.Title,
			Description: payload.Description,
			Type:        payload.Type,
			Location:    payload.Location,
			SalaryMin:   payload.SalaryMin,
			SalaryMax:   payload.SalaryMax,
			Deadline:    payload.Deadline,
			AutoClose:   payload.AutoClose,
			CreatedBy:   payload.CreatedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newRecruitmentResponse(rec))
	}
}

func RecruitmentDetail(svc recsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recruitments service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "recruitmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recruitment id"))
			return
		}

		rec, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := recruitmentUpdateResponse{
			Recruitment:    newRecruitmentResponse(rec),
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntityRecruitment, rec.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}

func RecruitmentList(svc recsvc.Service, logg *logger.Logger, limits pagination.Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recruitments service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r, limits)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), recsvc.ListParams{
			Search:  r.URL.Query().Get("search"),
			Status:  r.URL.Query().Get("status"),
			Page:    params.Page,
			PerPage: params.PerPage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]recruitmentResponse, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, newRecruitmentResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, pagination.Page[recruitmentResponse]{
			Items:    items,
			Page:     page.Page,
			PerPage:  page.PerPage,
			LastPage: page.LastPage,
			Total:    page.Total,
		})
	}
}

func RecruitmentUpdateStatus(svc recsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recruitments service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "recruitmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recruitment id"))
			return
		}

		var payload recruitmentStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), id, recsvc.UpdateStatusInput{
			Status:    payload.Status,
			Note:      payload.Note,
			ActorName: middleware.ActorNameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := recruitmentUpdateResponse{
			Recruitment:    newRecruitmentResponse(result.Recruitment),
			Confirmation:   result.Confirmation,
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntityRecruitment, result.Recruitment.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}
