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
	subsvc "github.com/teamflowhq/teamflow-backend/internal/subscriptions"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

// Subscriptions ending within this window get flagged so list and detail
// views can surface a renewal prompt.
const subscriptionExpiryWarningWindow = 7 * 24 * time.Hour

type subscriptionCreateRequest struct {
	UserID   uuid.UUID  `json:"user_id" validate:"required"`
	PlanID   uuid.UUID  `json:"plan_id" validate:"required"`
	StartsAt time.Time  `json:"starts_at" validate:"required"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

type subscriptionStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

type subscriptionResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	PlanID         uuid.UUID  `json:"plan_id"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	StatusColor    string     `json:"status_color"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at,omitempty"`
	WillExpireSoon bool       `json:"will_expire_soon"`
	PlanName       string     `json:"plan_name,omitempty"`
	UserName       string     `json:"user_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type subscriptionUpdateResponse struct {
	Subscription   subscriptionResponse `json:"subscription"`
	Confirmation   string               `json:"confirmation,omitempty"`
	AllowedTargets []string             `json:"allowed_targets"`
}

func newSubscriptionResponse(sub *models.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		ID:             sub.ID,
		UserID:         sub.UserID,
		PlanID:         sub.PlanID,
		Status:         sub.Status.String(),
		StatusLabel:    sub.Status.Label(),
		StatusColor:    sub.Status.Color(),
		StartsAt:       sub.StartsAt,
		EndsAt:         sub.EndsAt,
		WillExpireSoon: sub.WillExpireSoon(time.Now().UTC(), subscriptionExpiryWarningWindow),
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
	if sub.Plan != nil {
		resp.PlanName = sub.Plan.Name
	}
	if sub.User != nil {
		resp.UserName = sub.User.Name
	}
	return resp
}

func SubscriptionCreate(svc subsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions service unavailable"))
			return
		}

		var payload subscriptionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Create(r.Context(), subsvc.CreateInput{
			UserID:   payload.UserID,
			PlanID:   payload.PlanID,
			StartsAt: payload.StartsAt,
			EndsAt:   payload.EndsAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSubscriptionResponse(sub))
	}
}

func SubscriptionDetail(svc subsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "subscriptionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription id"))
			return
		}

		sub, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := subscriptionUpdateResponse{
			Subscription:   newSubscriptionResponse(sub),
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntitySubscription, sub.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}

func SubscriptionList(svc subsvc.Service, logg *logger.Logger, limits pagination.Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r, limits)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), subsvc.ListParams{
			Search:  r.URL.Query().Get("search"),
			Status:  r.URL.Query().Get("status"),
			Page:    params.Page,
			PerPage: params.PerPage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]subscriptionResponse, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, newSubscriptionResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, pagination.Page[subscriptionResponse]{
			Items:    items,
			Page:     page.Page,
			PerPage:  page.PerPage,
			LastPage: page.LastPage,
			Total:    page.Total,
		})
	}
}

// SubscriptionUpdateStatus applies one status transition. A stale request
// that lost to a concurrent writer returns the winner's row with an empty
// confirmation instead of an error.
func SubscriptionUpdateStatus(svc subsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "subscriptionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription id"))
			return
		}

		var payload subscriptionStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateStatus(r.Context(), id, subsvc.UpdateStatusInput{
			Status:    payload.Status,
			Note:      payload.Note,
			ActorName: middleware.ActorNameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := subscriptionUpdateResponse{
			Subscription:   newSubscriptionResponse(result.Subscription),
			Confirmation:   result.Confirmation,
			AllowedTargets: lifecycle.AllowedTargets(lifecycle.EntitySubscription, result.Subscription.Status.String()),
		}
		responses.WriteSuccess(w, resp)
	}
}
