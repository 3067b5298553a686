package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/teamflowhq/teamflow-backend/pkg/errors"
	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/files", nil)
	params, err := ParsePagination(r, pagination.Limits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 1 {
		t.Fatalf("expected page 1, got %d", params.Page)
	}
	if params.PerPage != pagination.DefaultPerPage {
		t.Fatalf("expected default per_page, got %d", params.PerPage)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/files?page=3&per_page=25", nil)
	params, err := ParsePagination(r, pagination.Limits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Page != 3 || params.PerPage != 25 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestParsePaginationHonorsConfiguredLimits(t *testing.T) {
	limits := pagination.Limits{DefaultPerPage: 25, MaxPerPage: 50}

	r := httptest.NewRequest("GET", "/api/v1/files", nil)
	params, err := ParsePagination(r, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.PerPage != 25 {
		t.Fatalf("expected configured default per_page, got %d", params.PerPage)
	}

	r = httptest.NewRequest("GET", "/api/v1/files?per_page=60", nil)
	if _, err := ParsePagination(r, limits); err == nil {
		t.Fatal("expected error above the configured cap")
	}
}

func TestParsePaginationRejectsNonNumeric(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/files?page=abc", nil)
	if _, err := ParsePagination(r, pagination.Limits{}); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
}

func TestParsePaginationRejectsOversizedPerPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/files?per_page=5000", nil)
	_, err := ParsePagination(r, pagination.Limits{})
	if err == nil {
		t.Fatal("expected error for oversized per_page")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
