package files

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

type filesRepository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	List(ctx context.Context, opts listQuery) ([]models.File, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.FileStatus, rejectionReason *string) (bool, error)
}

type usersRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type statusDispatcher interface {
	Dispatch(ctx context.Context, change notifications.StatusChange) error
}

// Service exposes file registration, listing, and validation decisions.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.File, error)
	Get(ctx context.Context, id uuid.UUID) (*models.File, error)
	List(ctx context.Context, params ListParams) (*pagination.Page[models.File], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error)
}

type service struct {
	repo       filesRepository
	users      usersRepository
	dispatcher statusDispatcher
	logg       *logger.Logger
}

// CreateInput registers an uploaded attachment for review.
type CreateInput struct {
	ProjectID  uuid.UUID
	TaskID     *uuid.UUID
	Name       string
	UploadedBy uuid.UUID
}

// ListParams configures search, status filtering, and pagination.
type ListParams struct {
	ProjectID uuid.UUID
	Search    string
	Status    string
	Page      int
	PerPage   int
}

// UpdateStatusInput carries one review decision. RejectionReason is required
// exactly when Status is rejected.
type UpdateStatusInput struct {
	Status          string
	RejectionReason string
	Note            string
	ActorName       string
}

// UpdateResult is the committed decision plus the caller-facing copy.
type UpdateResult struct {
	File         *models.File
	Confirmation string
}

// NewService wires file dependencies.
func NewService(repo filesRepository, users usersRepository, dispatcher statusDispatcher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("files repository required")
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
	return &service{repo: repo, users: users, dispatcher: dispatcher, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.File, error) {
	if input.ProjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project_id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.UploadedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded_by is required")
	}

	file := &models.File{
		ProjectID:  input.ProjectID,
		TaskID:     input.TaskID,
		Name:       strings.TrimSpace(input.Name),
		Status:     enums.FileStatusPending,
		UploadedBy: input.UploadedBy,
	}
	created, err := s.repo.Create(ctx, file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create file")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id is required")
	}
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup file")
	}
	return file, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*pagination.Page[models.File], error) {
	query := listQuery{
		projectID: params.ProjectID,
		search:    strings.TrimSpace(params.Search),
		page:      pagination.Params{Page: params.Page, PerPage: params.PerPage},
	}
	if status := normalizeStatusFilter(params.Status); status != "" {
		parsed, err := enums.ParseFileStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		query.status = parsed
	}

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list files")
	}
	return pagination.NewPage(rows, total, query.page), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*UpdateResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file id is required")
	}

	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current := file.Status
	fields := lifecycle.Fields{lifecycle.FieldRejectionReason: input.RejectionReason}
	if err := lifecycle.Validate(lifecycle.EntityFile, current.String(), input.Status, fields); err != nil {
		return nil, err
	}
	requested := enums.FileStatus(input.Status)

	confirmation := lifecycle.ConfirmationMessage(lifecycle.EntityFile, requested.String())

	var reason *string
	if requested == enums.FileStatusRejected {
		trimmed := strings.TrimSpace(input.RejectionReason)
		reason = &trimmed
	}

	if requested == current && reasonUnchanged(file.RejectionReason, reason) {
		return &UpdateResult{File: file, Confirmation: confirmation}, nil
	}

	won, err := s.repo.UpdateStatus(ctx, id, current, requested, reason)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update file status")
	}
	if !won {
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return &UpdateResult{File: latest, Confirmation: ""}, nil
	}

	file.Status = requested
	file.RejectionReason = reason
	s.notify(ctx, file, current, requested, input)

	return &UpdateResult{File: file, Confirmation: confirmation}, nil
}

func (s *service) notify(ctx context.Context, file *models.File, from, to enums.FileStatus, input UpdateStatusInput) {
	note := input.Note
	if to == enums.FileStatusRejected && note == "" && file.RejectionReason != nil {
		note = *file.RejectionReason
	}

	change := notifications.StatusChange{
		Type:      enums.NotificationTypeFileStatus,
		Entity:    fmt.Sprintf("le fichier « %s »", file.Name),
		Title:     "Statut du fichier mis à jour",
		OldLabel:  from.Label(),
		OldColor:  from.Color(),
		NewLabel:  to.Label(),
		NewColor:  to.Color(),
		Note:      note,
		ActorName: input.ActorName,
		Link:      fmt.Sprintf("/projects/%s/files/%s", file.ProjectID, file.ID),
		Recipient: notifications.Recipient{UserID: file.UploadedBy},
	}
	if file.Project != nil {
		change.Meta = append(change.Meta, notifications.Meta{Label: "Projet", Value: file.Project.Name})
	}
	if file.Task != nil {
		change.Meta = append(change.Meta, notifications.Meta{Label: "Tâche", Value: file.Task.Title})
	}

	if uploader, err := s.users.FindByID(ctx, file.UploadedBy); err == nil {
		change.Recipient.Email = uploader.Email
		change.Recipient.Name = uploader.Name
	}

	if err := s.dispatcher.Dispatch(ctx, change); err != nil {
		logCtx := s.logg.WithProjectID(ctx, file.ProjectID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"file_id": file.ID.String(),
			"status":  to.String(),
		})
		s.logg.Error(logCtx, "file status notification failed", err)
	}
}

func reasonUnchanged(current, next *string) bool {
	if current == nil && next == nil {
		return true
	}
	if current == nil || next == nil {
		return false
	}
	return *current == *next
}

func normalizeStatusFilter(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" || trimmed == "all" {
		return ""
	}
	return trimmed
}
