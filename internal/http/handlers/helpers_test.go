package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"campushire/internal/common"
)

func TestIDFromPath(t *testing.T) {
	id := common.NewUUID()
	r := httptest.NewRequest("GET", "/applications/"+id.String()+"/status", nil)

	parsed, err := idFromPath(r, 2)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %s, got %s", id, parsed)
	}
}

func TestIDFromPathRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/applications/not-a-uuid", nil)
	if _, err := idFromPath(r, 2); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	r = httptest.NewRequest("GET", "/applications", nil)
	if _, err := idFromPath(r, 2); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for missing segment, got %v", err)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/applications", strings.NewReader(`{"job_id":"x","bogus":true}`))
	var target struct {
		JobID string `json:"job_id"`
	}
	if err := decodeJSON(r, &target); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPageFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/applications?limit=25&page=3", nil)
	limit, offset := pageFromQuery(r)
	if limit != 25 || offset != 50 {
		t.Fatalf("expected limit 25 offset 50, got %d %d", limit, offset)
	}

	r = httptest.NewRequest("GET", "/applications?limit=500&page=0", nil)
	limit, offset = pageFromQuery(r)
	if limit != 10 || offset != 0 {
		t.Fatalf("expected defaults, got %d %d", limit, offset)
	}
}
