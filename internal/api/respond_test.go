package api

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/viteezy/commerce-backend/internal/apperr"
	"github.com/viteezy/commerce-backend/internal/store"
)

func TestNewPaginationDerivesConsistentPages(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		limit       int
		total       int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{
			name:        "first of several pages",
			page:        1,
			limit:       20,
			total:       45,
			wantPages:   3,
			wantHasNext: true,
			wantHasPrev: false,
		},
		{
			name:        "middle page",
			page:        2,
			limit:       20,
			total:       45,
			wantPages:   3,
			wantHasNext: true,
			wantHasPrev: true,
		},
		{
			name:        "last page",
			page:        3,
			limit:       20,
			total:       45,
			wantPages:   3,
			wantHasNext: false,
			wantHasPrev: true,
		},
		{
			name:        "empty result set",
			page:        1,
			limit:       20,
			total:       0,
			wantPages:   0,
			wantHasNext: false,
			wantHasPrev: false,
		},
		{
			name:        "exact multiple of limit",
			page:        2,
			limit:       10,
			total:       20,
			wantPages:   2,
			wantHasNext: false,
			wantHasPrev: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.Pages != tt.wantPages {
				t.Fatalf("expected pages=%d, got %d", tt.wantPages, p.Pages)
			}
			if p.HasNext != tt.wantHasNext {
				t.Fatalf("expected hasNext=%t, got %t", tt.wantHasNext, p.HasNext)
			}
			if p.HasPrev != tt.wantHasPrev {
				t.Fatalf("expected hasPrev=%t, got %t", tt.wantHasPrev, p.HasPrev)
			}
			if p.Total != tt.total {
				t.Fatalf("expected total=%d, got %d", tt.total, p.Total)
			}
		})
	}
}

func TestRespondErrorMapsKnownErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"application error keeps its status", apperr.Conflict("already exists"), 409},
		{"store not found maps to 404", store.ErrNotFound, 404},
		{"store duplicate maps to 409", store.ErrDuplicate, 409},
		{"unknown error becomes opaque 500", errors.New("pg connection refused"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, nil, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if body.Success {
				t.Fatal("expected success=false in error envelope")
			}
			if tt.wantStatus == 500 && body.Message != "something went wrong" {
				t.Fatalf("expected opaque message for internal errors, got %q", body.Message)
			}
		})
	}
}

func TestRespondPageWrapsDataAndPagination(t *testing.T) {
	rec := httptest.NewRecorder()
	respondPage(rec, 200, "items fetched", []string{"a", "b"}, NewPagination(1, 2, 5))

	var body Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success=true")
	}
	if body.Pagination == nil || body.Pagination.Pages != 3 {
		t.Fatalf("expected pagination with 3 pages, got %+v", body.Pagination)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type, got %q", rec.Header().Get("Content-Type"))
	}
}
