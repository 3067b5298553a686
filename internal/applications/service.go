package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamflowhq/teamflow-backend/internal/notifications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type applicationsRepository interface {
	Create(ctx context.Context, application *models.Application) (*models.Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, opts listQuery) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.ApplicationStatus, feedback *string) (bool, error)
}

type recruitmentsRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recruitment, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type statusDispatcher interface {
	Dispatch(ctx context.Context, change notifications.StatusChange) error
}

// Service exposes candidate application submission and review.
type Service interface {
	Apply(ctx context.Context, input ApplyInput) (*models.Application, error)
	List(ctx context.Context, params ListParams) (*pagination.Page[models.Application], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Application, error)
}

type service struct {
	repo         applicationsRepository
	recruitments recruitmentsRepository
	users        usersRepository
	dispatcher   statusDispatcher
	logg         *logger.Logger
}

// ApplyInput submits one candidacy for a published posting.
type ApplyInput struct {
	RecruitmentID uuid.UUID
	ApplicantID   uuid.UUID
}

// ListParams configures status filtering and pagination within one posting.
type ListParams struct {
	RecruitmentID uuid.UUID
	Status        string
	Page          int
	PerPage       int
}

// UpdateStatusInput carries one review decision.
type UpdateStatusInput struct {
	Status    string
	Feedback  string
	ActorName string
}

// NewService wires application dependencies.
func NewService(repo applicationsRepository, recruitments recruitmentsRepository, users usersRepository, dispatcher statusDispatcher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("applications repository required")
	}
	if recruitments == nil {
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
		repo:         repo,
		recruitments: recruitments,
		users:        users,
		dispatcher:   dispatcher,
		logg:         logg,
	}, nil
}

func (s *service) Apply(ctx context.Context, input ApplyInput) (*models.Application, error) {
	if input.RecruitmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recruitment_id is required")
	}
	if input.ApplicantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applicant_id is required")
	}

	recruitment, err := s.recruitments.FindByID(ctx, input.RecruitmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recruitment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup recruitment")
	}
	if recruitment.Status != enums.RecruitmentStatusPublished {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "recruitment is not open for applications")
	}

	application := &models.Application{
		RecruitmentID: input.RecruitmentID,
		ApplicantID:   input.ApplicantID,
		Status:        enums.ApplicationStatusSubmitted,
	}
	created, err := s.repo.Create(ctx, application)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*pagination.Page[models.Application], error) {
	if params.RecruitmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recruitment_id is required")
	}

	query := listQuery{
		recruitmentID: params.RecruitmentID,
		page:          pagination.Params{Page: params.Page, PerPage: params.PerPage},
	}
	if trimmed := strings.TrimSpace(strings.ToLower(params.Status)); trimmed != "" && trimmed != "all" {
		parsed, err := enums.ParseApplicationStatus(trimmed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.status = parsed
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}
	return pagination.NewPage(rows, total, query.page), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Application, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application id is required")
	}
	requested, err := enums.ParseApplicationStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid application status")
	}

	application, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup application")
	}

	current := application.Status
	if isFinalApplicationStatus(current) && requested != current {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application already finalized")
	}
	if requested == current {
		return application, nil
	}

	var feedback *string
	if trimmed := strings.TrimSpace(input.Feedback); trimmed != "" {
		feedback = &trimmed
	}

	won, err := s.repo.UpdateStatus(ctx, id, current, requested, feedback)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application status")
	}
	if !won {
		latest, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload application")
		}
		return latest, nil
	}

	application.Status = requested
	if feedback != nil {
		application.Feedback = feedback
	}
	s.notify(ctx, application, current, requested, input)

	return application, nil
}

func (s *service) notify(ctx context.Context, application *models.Application, from, to enums.ApplicationStatus, input UpdateStatusInput) {
	change := notifications.StatusChange{
		Type:      enums.NotificationTypeApplicationUpdate,
		Entity:    "votre candidature",
		Title:     "Votre candidature a été mise à jour",
		OldLabel:  from.Label(),
		OldColor:  from.Color(),
		NewLabel:  to.Label(),
		NewColor:  to.Color(),
		Note:      input.Feedback,
		ActorName: input.ActorName,
		Link:      fmt.Sprintf("/recruitments/%s/applications/%s", application.RecruitmentID, application.ID),
		Recipient: notifications.Recipient{UserID: application.ApplicantID},
	}

	if recruitment, err := s.recruitments.FindByID(ctx, application.RecruitmentID); err == nil {
		change.Meta = []notifications.Meta{{Label: "Poste", Value: recruitment.Title}}
	}
	if applicant, err := s.users.FindByID(ctx, application.ApplicantID); err == nil {
		change.Recipient.Email = applicant.Email
		change.Recipient.Name = applicant.Name
	}

	if err := s.dispatcher.Dispatch(ctx, change); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"application_id": application.ID.String(),
			"status":         to.String(),
		})
		s.logg.Error(logCtx, "application status notification failed", err)
	}
}

func isFinalApplicationStatus(status enums.ApplicationStatus) bool {
	return status == enums.ApplicationStatusAccepted || status == enums.ApplicationStatusRejected
}
