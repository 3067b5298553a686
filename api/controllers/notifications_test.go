package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/teamflowhq/teamflow-backend/api/middleware"
	"github.com/teamflowhq/teamflow-backend/internal/notifications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type testNotificationsService struct {
	listFn        func(ctx context.Context, params notifications.ListParams) (*pagination.Page[models.Notification], error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (s *testNotificationsService) List(ctx context.Context, params notifications.ListParams) (*pagination.Page[models.Notification], error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return pagination.NewPage[models.Notification](nil, 0, pagination.Params{}), nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func TestListNotificationsSuccess(t *testing.T) {
	userID := uuid.New()
	var got notifications.ListParams
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*pagination.Page[models.Notification], error) {
			got = params
			return pagination.NewPage([]models.Notification{{
				ID:        uuid.New(),
				UserID:    userID,
				Type:      enums.NotificationTypeSubscriptionStatus,
				Title:     "Abonnement mis à jour",
				Message:   "Le statut de l'abonnement est passé de « En attente » à « Actif ».",
				CreatedAt: time.Now(),
			}}, 1, pagination.Params{Page: params.Page, PerPage: params.PerPage}), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread_only=true&page=1", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger(), pagination.Limits{})(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if got.UserID != userID {
		t.Fatalf("unexpected user %s", got.UserID)
	}
	if !got.UnreadOnly {
		t.Fatal("expected unread_only filter")
	}

	var envelope struct {
		Data pagination.Page[notificationResponse] `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected one notification, got %d", len(envelope.Data.Items))
	}
	if envelope.Data.Items[0].Title != "Abonnement mis à jour" {
		t.Fatalf("unexpected title %q", envelope.Data.Items[0].Title)
	}
}

func TestListNotificationsMissingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp := httptest.NewRecorder()
	ListNotifications(&testNotificationsService{}, testLogger(), pagination.Limits{})(resp, req)
	requireStatus(t, resp.Code, http.StatusBadRequest)
}

func TestListNotificationsInvalidUnreadOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread_only=maybe", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	ListNotifications(&testNotificationsService{}, testLogger(), pagination.Limits{})(resp, req)
	requireStatus(t, resp.Code, http.StatusBadRequest)
}

func TestMarkNotificationReadSuccess(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	called := false
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if nid != notificationID {
				t.Fatalf("unexpected notification %s", nid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "notificationId", notificationID.String())
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if !called {
		t.Fatal("expected service called")
	}

	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data["read"] {
		t.Fatal("response missing read flag")
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		},
	}

	notificationID := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID+"/read", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	req = addRouteParam(req, "notificationId", notificationID)
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)
	requireStatus(t, resp.Code, http.StatusNotFound)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	userID := uuid.New()
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, uid uuid.UUID) (int64, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return 4, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 4 {
		t.Fatalf("unexpected updated count %d", envelope.Data["updated"])
	}
}
