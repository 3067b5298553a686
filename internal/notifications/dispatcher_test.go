package notifications

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/mail"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) messages() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mail.Message(nil), f.sent...)
}

func newTestDispatcher(t *testing.T, repo Repository, mailer mail.Mailer) *Dispatcher {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	d, err := NewDispatcher(repo, mailer, logg, "https://app.teamflow.test/")
	if err != nil {
		t.Fatalf("unexpected dispatcher error: %v", err)
	}
	return d
}

func subscriptionChange(recipient Recipient) StatusChange {
	return StatusChange{
		Type:      enums.NotificationTypeSubscriptionStatus,
		Entity:    "l'abonnement",
		Title:     "Statut de l'abonnement mis à jour",
		OldLabel:  enums.SubscriptionStatusPending.Label(),
		OldColor:  enums.SubscriptionStatusPending.Color(),
		NewLabel:  enums.SubscriptionStatusActive.Label(),
		NewColor:  enums.SubscriptionStatusActive.Color(),
		ActorName: "Claire Martin",
		Link:      "/subscriptions/42",
		Meta: []Meta{
			{Label: "Offre", Value: "Pro"},
			{Label: "Prix", Value: "49.90 €"},
		},
		Recipient: recipient,
	}
}

func TestDispatcher_CreatesNotificationAndSendsEmail(t *testing.T) {
	var created *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			created = notification
			return nil
		},
	}
	mailer := &fakeMailer{}
	d := newTestDispatcher(t, repo, mailer)

	recipient := Recipient{UserID: uuid.New(), Email: "claire@example.com", Name: "Claire"}
	if err := d.Dispatch(context.Background(), subscriptionChange(recipient)); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	d.Flush()

	if created == nil {
		t.Fatal("expected notification row")
	}
	if created.UserID != recipient.UserID {
		t.Fatalf("unexpected recipient %s", created.UserID)
	}
	if created.Type != enums.NotificationTypeSubscriptionStatus {
		t.Fatalf("unexpected type %s", created.Type)
	}
	if !strings.Contains(created.Message, "« En attente »") || !strings.Contains(created.Message, "« Actif »") {
		t.Fatalf("message missing status labels: %q", created.Message)
	}
	if created.Link == nil || *created.Link != "/subscriptions/42" {
		t.Fatal("expected deep link on notification")
	}

	sent := mailer.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	if sent[0].To != "claire@example.com" {
		t.Fatalf("unexpected recipient %s", sent[0].To)
	}
	for _, fragment := range []string{"En attente", "Actif", "https://app.teamflow.test/subscriptions/42", "Pro", "49.90 €", "Claire Martin"} {
		if !strings.Contains(sent[0].HTML, fragment) {
			t.Fatalf("email body missing %q", fragment)
		}
	}
}

func TestDispatcher_NoteAppendedToMessage(t *testing.T) {
	var created *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			created = notification
			return nil
		},
	}
	d := newTestDispatcher(t, repo, &fakeMailer{})

	change := subscriptionChange(Recipient{UserID: uuid.New()})
	change.Note = "  régularisation du paiement  "
	if err := d.Dispatch(context.Background(), change); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	if !strings.Contains(created.Message, "Note : régularisation du paiement") {
		t.Fatalf("note missing from message: %q", created.Message)
	}
}

func TestDispatcher_SkipsEmailWithoutRecipientAddress(t *testing.T) {
	mailer := &fakeMailer{}
	d := newTestDispatcher(t, &fakeRepository{}, mailer)

	change := subscriptionChange(Recipient{UserID: uuid.New()})
	if err := d.Dispatch(context.Background(), change); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	d.Flush()

	if len(mailer.messages()) != 0 {
		t.Fatal("expected no email without recipient address")
	}
}

func TestDispatcher_MailFailureIsSwallowed(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("sendgrid down")}
	d := newTestDispatcher(t, &fakeRepository{}, mailer)

	recipient := Recipient{UserID: uuid.New(), Email: "claire@example.com"}
	if err := d.Dispatch(context.Background(), subscriptionChange(recipient)); err != nil {
		t.Fatalf("mail failure must not surface: %v", err)
	}
	d.Flush()
}

func TestDispatcher_RepoFailureSurfaces(t *testing.T) {
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			return errors.New("insert failed")
		},
	}
	d := newTestDispatcher(t, repo, &fakeMailer{})

	err := d.Dispatch(context.Background(), subscriptionChange(Recipient{UserID: uuid.New()}))
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDispatcher_RejectsMissingRecipient(t *testing.T) {
	d := newTestDispatcher(t, &fakeRepository{}, &fakeMailer{})
	err := d.Dispatch(context.Background(), subscriptionChange(Recipient{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
