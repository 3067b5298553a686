package recruitments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/internal/lifecycle"
	"github.com/teamflowhq/teamflow-backend/internal/notifications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type recruitmentsRepository interface {
	Create(ctx context.Context, recruitment *models.Recruitment) (*models.Recruitment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recruitment, error)
	List(ctx context.Context, opts listQuery) ([]models.Recruitment, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.RecruitmentStatus) (bool, error)
	FindExpired(ctx context.Context, now time.Time) ([]models.Recruitment, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type statusDispatcher interface {
	Dispatch(ctx context.Context, change notifications.StatusChange) error
}

// Service exposes posting creation, listing, publication, and closing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Recruitment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recruitment, error)
	List(ctx context.Context, params ListParams) (*pagination.Page[models.Recruitment], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error)
	CloseExpired(ctx context.Context) (int, error)
}

type service struct {
	repo       recruitmentsRepository
	users      usersRepository
	dispatcher statusDispatcher
	logg       *logger.Logger
	now        func() time.Time
}

// CreateInput holds the fields of a new draft posting.
type CreateInput struct {
	Title       string
	Description string
	Type        string
	Location    string
	SalaryMin   *int
	SalaryMax   *int
	Deadline    *time.Time
	AutoClose   bool
	CreatedBy   uuid.UUID
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
	Recruitment  *models.Recruitment
	Confirmation string
}

// NewService wires recruitment dependencies.
func NewService(repo recruitmentsRepository, users usersRepository, dispatcher statusDispatcher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recruitments repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("status dispatcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       repo,
		users:      users,
		dispatcher: dispatcher,
		logg:       logg,
		now:        time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Recruitment, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "created_by is required")
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMax < *input.SalaryMin {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary_max must not be below salary_min")
	}
	if input.AutoClose && input.Deadline == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deadline is required when auto_close is enabled")
	}

	recruitment := &models.Recruitment{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Status:      enums.RecruitmentStatusDraft,
		Deadline:    input.Deadline,
		AutoClose:   input.AutoClose,
		CreatedBy:   input.CreatedBy,
	}
	created, err := s.repo.Create(ctx, recruitment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recruitment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Recruitment, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recruitment id is required")
	}
	recruitment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recruitment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup recruitment")
	}
	return recruitment, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*pagination.Page[models.Recruitment], error) {
	query := listQuery{
		search: strings.TrimSpace(params.Search),
		page:   pagination.Params{Page: params.Page, PerPage: params.PerPage},
	}
	if status := normalizeStatusFilter(params.Status); status != "" {
		parsed, err := enums.ParseRecruitmentStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.status = parsed
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recruitments")
	}
	return pagination.NewPage(rows, total, query.page), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recruitment id is required")
	}

	recruitment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := recruitment.Status
	if err := lifecycle.Validate(lifecycle.EntityRecruitment, current.String(), input.Status, nil); err != nil {
		return nil, err
	}
	requested := enums.RecruitmentStatus(input.Status)

	confirmation := lifecycle.ConfirmationMessage(lifecycle.EntityRecruitment, requested.String())

	if requested == current {
		return &UpdateResult{Recruitment: recruitment, Confirmation: confirmation}, nil
	}

	won, err := s.repo.UpdateStatus(ctx, id, current, requested)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recruitment status")
	}
	if !won {
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Recruitment: latest, Confirmation: ""}, nil
	}

	recruitment.Status = requested
	s.notify(ctx, recruitment, current, requested, input.Note, input.ActorName)

	return &UpdateResult{Recruitment: recruitment, Confirmation: confirmation}, nil
}

// CloseExpired force-closes published postings whose auto-close deadline has
// passed. The conditional write makes overlapping runs idempotent: a posting
// already closed by another run is skipped without a second notification.
func (s *service) CloseExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.FindExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find expired recruitments")
	}

	closed := 0
	var errs error
	for i := range expired {
		recruitment := expired[i]
		won, err := s.repo.UpdateStatus(ctx, recruitment.ID, enums.RecruitmentStatusPublished, enums.RecruitmentStatusClosed)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("close recruitment %s: %w", recruitment.ID, err))
			continue
		}
		if !won {
			continue
		}

		closed++
		recruitment.Status = enums.RecruitmentStatusClosed
		s.notify(ctx, &recruitment, enums.RecruitmentStatusPublished, enums.RecruitmentStatusClosed,
			"Fermeture automatique après la date limite.", "")
	}

	if errs != nil {
		return closed, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "close expired recruitments")
	}
	return closed, nil
}

func (s *service) notify(ctx context.Context, recruitment *models.Recruitment, from, to enums.RecruitmentStatus, note, actorName string) {
	change := notifications.StatusChange{
		Type:      enums.NotificationTypeRecruitmentStatus,
		Entity:    fmt.Sprintf("l'offre « %s »", recruitment.Title),
		Title:     "Statut de l'offre d'emploi mis à jour",
		OldLabel:  from.Label(),
		OldColor:  from.Color(),
		NewLabel:  to.Label(),
		NewColor:  to.Color(),
		Note:      note,
		ActorName: actorName,
		Link:      fmt.Sprintf("/recruitments/%s", recruitment.ID),
		Recipient: notifications.Recipient{UserID: recruitment.CreatedBy},
		Meta: []notifications.Meta{
			{Label: "Poste", Value: recruitment.Title},
		},
	}
	if recruitment.Location != "" {
		change.Meta = append(change.Meta, notifications.Meta{Label: "Lieu", Value: recruitment.Location})
	}

	if owner, err := s.users.FindByID(ctx, recruitment.CreatedBy); err == nil {
		change.Recipient.Email = owner.Email
		change.Recipient.Name = owner.Name
	}

	if err := s.dispatcher.Dispatch(ctx, change); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"recruitment_id": recruitment.ID.String(),
			"status":         to.String(),
		})
		s.logg.Error(logCtx, "recruitment status notification failed", err)
	}
}

func normalizeStatusFilter(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" || trimmed == "all" {
		return ""
	}
	return trimmed
}
