package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/api/middleware"
	"github.com/teamflowhq/teamflow-backend/api/responses"
	"github.com/teamflowhq/teamflow-backend/api/validators"
	filesvc "github.com/teamflowhq/teamflow-backend/internal/files"
	"github.com/teamflowhq/teamflow-backend/internal/lifecycle"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type fileCreateRequest struct {
	ProjectID  uuid.UUID  `json:"project_id" validate:"required"`
	TaskID     *uuid.UUID `json:"task_id,omitempty"`
	Name       string     `json:"name" validate:"required,max=255"`
	UploadedBy uuid.UUID  `json:"uploaded_by" validate:"required"`
}

type fileStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejection_reason,omitempty" validate:"max=500"`
	Note            string `json:"note,omitempty" validate:"max=500"`
}

type fileResponse struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       uuid.UUID  `json:"project_id"`
	TaskID          *uuid.UUID `json:"task_id,omitempty"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	StatusLabel     string     `json:"status_label"`
	StatusColor     string     `json:"status_color"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	UploadedBy      uuid.UUID  `json:"uploaded_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type fileUpdateResponse struct {
	File           fileResponse `json:"file"`
	Confirmation   string       `json:"confirmation,omitempty"`
	AllowedTargets []string     `json:"allowed_targets"`
}

func newFileResponse(f *models.File) fileResponse {
	return fileResponse{
		ID:              f.ID,
		ProjectID:       f.ProjectID,
		TaskID:          f.TaskID,
		Name:            f.Name,
		Status:          f.Status.String(),
		StatusLabel:     f.Status.Label(),
		StatusColor:     f.Status.Color(),
		RejectionReason: f.RejectionReason,
		UploadedBy:      f.UploadedBy,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func FileCreate(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		var payload fileCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.Create(r.Context(), filesvc.CreateInput{
			ProjectID:  payload.ProjectID,
			TaskID:     payload.TaskID,
			Name:       payload.Name,
			UploadedBy: payload.UploadedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newFileResponse(file))
	}
}

func FileDetail(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "fileId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file id"))
			return
		}

		file, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := fileUpdateResponse{
			File:           newFileResponse(file),
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntityFile, file.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}

func FileList(svc filesvc.Service, logg *logger.Logger, limits pagination.Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r, limits)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listParams := filesvc.ListParams{
			Search:  r.URL.Query().Get("search"),
			Status:  r.URL.Query().Get("status"),
			Page:    params.Page,
			PerPage: params.PerPage,
		}
		if raw := r.URL.Query().Get("project_id"); raw != "" {
			projectID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id"))
				return
			}
			listParams.ProjectID = projectID
		}

		page, err := svc.List(r.Context(), listParams)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]fileResponse, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, newFileResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, pagination.Page[fileResponse]{
			Items:    items,
			Page:     page.Page,
			PerPage:  page.PerPage,
			LastPage: page.LastPage,
			Total:    page.Total,
		})
	}
}

// FileUpdateStatus records a review decision. Rejections must carry a
// rejection_reason; validating or re-pending a file clears it.
func FileUpdateStatus(svc filesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "fileId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file id"))
			return
		}

		var payload fileStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), id, filesvc.UpdateStatusInput{
			Status:          payload.Status,
			RejectionReason: payload.RejectionReason,
			Note:            payload.Note,
			ActorName:       middleware.ActorNameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := fileUpdateResponse{
			File:           newFileResponse(result.File),
			Confirmation:   result.Confirmation,
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntityFile, result.File.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}
