package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/internal/lifecycle"
	"github.com/teamflowhq/teamflow-backend/internal/notifications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type subscriptionsRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) (*models.Subscription, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, opts listQuery) ([]models.Subscription, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.SubscriptionStatus) (bool, error)
}

type statusDispatcher interface {
	Dispatch(ctx context.Context, change notifications.StatusChange) error
}

// Service exposes subscription creation, listing, and status transitions.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, params ListParams) (*pagination.Page[models.Subscription], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error)
}

type service struct {
	repo       subscriptionsRepository
	dispatcher statusDispatcher
	logg       *logger.Logger
}

// CreateInput holds the fields required to open a subscription.
type CreateInput struct {
	UserID   uuid.UUID
	PlanID   uuid.UUID
	StartsAt time.Time
	EndsAt   *time.Time
}

// ListParams configures search, status filtering, and pagination.
type ListParams struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// UpdateStatusInput carries one requested transition.
type UpdateStatusInput struct {
	Status    string
	Note      string
	ActorName string
}

// UpdateResult is the committed transition plus the caller-facing copy.
type UpdateResult struct {
	Subscription *models.Subscription
	Confirmation string
}

// NewService wires subscription dependencies.
func NewService(repo subscriptionsRepository, dispatcher statusDispatcher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("status dispatcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dispatcher: dispatcher, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Subscription, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}
	if input.PlanID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan_id is required")
	}
	if input.StartsAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "starts_at is required")
	}
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must not precede starts_at")
	}

	subscription := &models.Subscription{
		UserID:   input.UserID,
		PlanID:   input.PlanID,
		Status:   enums.SubscriptionStatusPending,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	created, err := s.repo.Create(ctx, subscription)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}
	subscription, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup subscription")
	}
	return subscription, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*pagination.Page[models.Subscription], error) {
	query := listQuery{
		search: strings.TrimSpace(params.Search),
		page:   pagination.Params{Page: params.Page, PerPage: params.PerPage},
	}
	if status := normalizeStatusFilter(params.Status); status != "" {
		parsed, err := enums.ParseSubscriptionStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.status = parsed
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return pagination.NewPage(rows, total, query.page), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}

	subscription, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := subscription.Status
	if err := lifecycle.Validate(lifecycle.EntitySubscription, current.String(), input.Status, nil); err != nil {
		return nil, err
	}
	requested := enums.SubscriptionStatus(input.Status)

	confirmation := lifecycle.ConfirmationMessage(lifecycle.EntitySubscription, requested.String())

	if requested == current {
		subscription.Status = requested
		return &UpdateResult{Subscription: subscription, Confirmation: confirmation}, nil
	}

	won, err := s.repo.UpdateStatus(ctx, id, current, requested)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription status")
	}
	if !won {
		// A concurrent writer changed the row first; return its state as-is.
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Subscription: latest, Confirmation: ""}, nil
	}

	subscription.Status = requested
	s.notify(ctx, subscription, current, requested, input)

	return &UpdateResult{Subscription: subscription, Confirmation: confirmation}, nil
}

func (s *service) notify(ctx context.Context, subscription *models.Subscription, from, to enums.SubscriptionStatus, input UpdateStatusInput) {
	change := notifications.StatusChange{
		Type:      enums.NotificationTypeSubscriptionStatus,
		Entity:    "l'abonnement",
		Title:     "Statut de l'abonnement mis à jour",
		OldLabel:  from.Label(),
		OldColor:  from.Color(),
		NewLabel:  to.Label(),
		NewColor:  to.Color(),
		Note:      input.Note,
		ActorName: input.ActorName,
		Link:      fmt.Sprintf("/subscriptions/%s", subscription.ID),
		Recipient: notifications.Recipient{UserID: subscription.UserID},
	}
	if subscription.User != nil {
		change.Recipient.Email = subscription.User.Email
		change.Recipient.Name = subscription.User.Name
	}
	if subscription.Plan != nil {
		change.Meta = []notifications.Meta{
			{Label: "Offre", Value: subscription.Plan.Name},
			{Label: "Prix", Value: subscription.Plan.FormattedPrice()},
		}
	}

	if err := s.dispatcher.Dispatch(ctx, change); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"subscription_id": subscription.ID.String(),
			"status":          to.String(),
		})
		s.logg.Error(logCtx, "subscription status notification failed", err)
	}
}

func normalizeStatusFilter(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" || trimmed == "all" {
		return ""
	}
	return trimmed
}
