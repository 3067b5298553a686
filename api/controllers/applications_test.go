package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	appsvc "github.com/teamflowhq/teamflow-backend/internal/applications"
	"github.com/teamflowhq/teamflow-backend/pkg/db/models"
	"github.com/teamflowhq/teamflow-backend/pkg/enums"
	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type testApplicationsService struct {
	applyFn        func(ctx context.Context, input appsvc.ApplyInput) (*models.Application, error)
	listFn         func(ctx context.Context, params appsvc.ListParams) (*pagination.Page[models.Application], error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, input appsvc.UpdateStatusInput) (*models.Application, error)
}

func (s *testApplicationsService) Apply(ctx context.Context, input appsvc.ApplyInput) (*models.Application, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, input)
	}
	return nil, nil
}

func (s *testApplicationsService) List(ctx context.Context, params appsvc.ListParams) (*pagination.Page[models.Application], error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return pagination.NewPage[models.Application](nil, 0, pagination.Params{}), nil
}

func (s *testApplicationsService) UpdateStatus(ctx context.Context, id uuid.UUID, input appsvc.UpdateStatusInput) (*models.Application, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, input)
	}
	return nil, nil
}

func TestApplicationApplySuccess(t *testing.T) {
	recruitmentID := uuid.New()
	applicantID := uuid.New()
	svc := &testApplicationsService{
		applyFn: func(ctx context.Context, input appsvc.ApplyInput) (*models.Application, error) {
			if input.RecruitmentID != recruitmentID {
				t.Fatalf("unexpected recruitment %s", input.RecruitmentID)
			}
			if input.ApplicantID != applicantID {
				t.Fatalf("unexpected applicant %s", input.ApplicantID)
			}
			return &models.Application{
				ID:            uuid.New(),
				RecruitmentID: input.RecruitmentID,
				ApplicantID:   input.ApplicantID,
				Status:        enums.ApplicationStatusSubmitted,
			}, nil
		},
	}

	body := `{"applicant_id":"` + applicantID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recruitments/"+recruitmentID.String()+"/applications", strings.NewReader(body))
	req = addRouteParam(req, "recruitmentId", recruitmentID.String())
	resp := httptest.NewRecorder()
	ApplicationApply(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusCreated)

	var envelope struct {
		Data applicationResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.StatusLabel != "Soumise" {
		t.Fatalf("unexpected label %q", envelope.Data.StatusLabel)
	}
}

func TestApplicationApplyUnpublishedPosting(t *testing.T) {
	recruitmentID := uuid.New()
	svc := &testApplicationsService{
		applyFn: func(ctx context.Context, input appsvc.ApplyInput) (*models.Application, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "recruitment is not open for applications")
		},
	}

	body := `{"applicant_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recruitments/"+recruitmentID.String()+"/applications", strings.NewReader(body))
	req = addRouteParam(req, "recruitmentId", recruitmentID.String())
	resp := httptest.NewRecorder()
	ApplicationApply(svc, testLogger())(resp, req)
	requireStatus(t, resp.Code, http.StatusUnprocessableEntity)
}

func TestApplicationUpdateStatusSuccess(t *testing.T) {
	id := uuid.New()
	feedback := "Profil retenu"
	svc := &testApplicationsService{
		updateStatusFn: func(ctx context.Context, gotID uuid.UUID, input appsvc.UpdateStatusInput) (*models.Application, error) {
			if input.Status != "accepted" {
				t.Fatalf("unexpected status %q", input.Status)
			}
			return &models.Application{
				ID:            gotID,
				RecruitmentID: uuid.New(),
				ApplicantID:   uuid.New(),
				Status:        enums.ApplicationStatusAccepted,
				Feedback:      &feedback,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/applications/"+id.String()+"/status", strings.NewReader(`{"status":"accepted","feedback":"Profil retenu"}`))
	req = addRouteParam(req, "applicationId", id.String())
	resp := httptest.NewRecorder()
	ApplicationUpdateStatus(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)

	var envelope struct {
		Data applicationResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.StatusLabel != "Acceptée" {
		t.Fatalf("unexpected label %q", envelope.Data.StatusLabel)
	}
}

func TestApplicationListForwardsRecruitment(t *testing.T) {
	recruitmentID := uuid.New()
	var got appsvc.ListParams
	svc := &testApplicationsService{
		listFn: func(ctx context.Context, params appsvc.ListParams) (*pagination.Page[models.Application], error) {
			got = params
			return pagination.NewPage[models.Application](nil, 0, pagination.Params{Page: params.Page, PerPage: params.PerPage}), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recruitments/"+recruitmentID.String()+"/applications?status=submitted", nil)
	req = addRouteParam(req, "recruitmentId", recruitmentID.String())
	resp := httptest.NewRecorder()
	ApplicationList(svc, testLogger(), pagination.Limits{})(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if got.RecruitmentID != recruitmentID {
		t.Fatalf("unexpected recruitment %s", got.RecruitmentID)
	}
	if got.Status != "submitted" {
		t.Fatalf("unexpected status %q", got.Status)
	}
}
