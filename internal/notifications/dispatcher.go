package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/mail"
)

// Recipient identifies who receives a status-change announcement.
type Recipient struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// Meta is one label/value row of entity context shown in the email body.
type Meta struct {
	Label string
	Value string
}

// StatusChange describes a committed transition to announce. Entity is the
// display noun with its article ("l'abonnement", "le fichier").
type StatusChange struct {
	Type      enums.NotificationType
	Entity    string
	Title     string
	OldLabel  string
	OldColor  string
	NewLabel  string
	NewColor  string
	Note      string
	ActorName string
	Link      string
	Meta      []Meta
	Recipient Recipient
}

// Dispatcher turns committed status transitions into in-app notifications
// and e-mails. Mail delivery is asynchronous and best-effort: a failed send
// is logged and never surfaces to the caller.
type Dispatcher struct {
	repo    Repository
	mailer  mail.Mailer
	logg    *logger.Logger
	baseURL string
	wg      sync.WaitGroup
}

// NewDispatcher wires the dispatcher. baseURL is the frontend origin deep
// links are built against.
func NewDispatcher(repo Repository, mailer mail.Mailer, logg *logger.Logger, baseURL string) (*Dispatcher, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Dispatcher{
		repo:    repo,
		mailer:  mailer,
		logg:    logg,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dispatch records the in-app notification and queues the e-mail. The
// returned error only covers the in-app row; callers log it and move on,
// the status change itself is already committed.
func (d *Dispatcher) Dispatch(ctx context.Context, change StatusChange) error {
	if change.Recipient.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient user id required")
	}
	if !change.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	message := fmt.Sprintf("Le statut de %s est passé de « %s » à « %s ».",
		change.Entity, change.OldLabel, change.NewLabel)
	if note := strings.TrimSpace(change.Note); note != "" {
		message += " Note : " + note
	}

	notification := &models.Notification{
		UserID:  change.Recipient.UserID,
		Type:    change.Type,
		Title:   change.Title,
		Message: message,
	}
	if change.Link != "" {
		link := change.Link
		notification.Link = &link
	}

	if err := d.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}

	d.queueEmail(ctx, change, message)
	return nil
}

// Flush waits for queued e-mails to finish. Called on shutdown and in tests.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}

func (d *Dispatcher) queueEmail(ctx context.Context, change StatusChange, message string) {
	if change.Recipient.Email == "" {
		return
	}

	html, err := renderStatusEmail(emailData{
		Title:         change.Title,
		RecipientName: change.Recipient.Name,
		Message:       message,
		OldLabel:      change.OldLabel,
		OldColor:      change.OldColor,
		NewLabel:      change.NewLabel,
		NewColor:      change.NewColor,
		Note:          strings.TrimSpace(change.Note),
		ActorName:     change.ActorName,
		Meta:          change.Meta,
		ButtonURL:     d.deepLink(change.Link),
	})
	if err != nil {
		d.logg.Error(ctx, "render status email", err)
		return
	}

	msg := mail.Message{
		To:      change.Recipient.Email,
		ToName:  change.Recipient.Name,
		Subject: change.Title,
		HTML:    html,
	}

	sendCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.mailer.Send(sendCtx, msg); err != nil {
			logCtx := d.logg.WithFields(sendCtx, map[string]any{
				"recipient": change.Recipient.Email,
				"subject":   change.Title,
			})
			d.logg.Error(logCtx, "status email delivery failed", err)
		}
	}()
}

func (d *Dispatcher) deepLink(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return d.baseURL + path
}
