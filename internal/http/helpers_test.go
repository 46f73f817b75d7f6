package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/internal/documents"
)

func TestRoutePrefix(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"/":             "",
		"api/websites/": "/api/websites",
		" /api//sites ": "/api/sites",
		"/api/websites": "/api/websites",
	}
	for in, want := range cases {
		if got := routePrefix(in); got != want {
			t.Errorf("routePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"not found", fmt.Errorf("load: %w", documents.ErrDocumentNotFound), http.StatusNotFound, "not_found"},
		{"validation", goerrors.New("bad title", goerrors.CategoryValidation), http.StatusUnprocessableEntity, "validation_failed"},
		{"external", goerrors.Wrap(errors.New("timeout"), goerrors.CategoryExternal, "publish endpoint"), http.StatusBadGateway, "upstream_failed"},
		{"conflict", goerrors.New("publish in progress", goerrors.CategoryConflict), http.StatusConflict, "conflict"},
		{"typed other", goerrors.New("boom", goerrors.CategoryInternal), http.StatusInternalServerError, "internal_error"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := mapError(tc.err)
			if status != tc.status || resp.Error != tc.label {
				t.Fatalf("mapError = %d %q, want %d %q", status, resp.Error, tc.status, tc.label)
			}
		})
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var target map[string]any
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1} {"b":2}`))
	if err := decodeJSON(httptest.NewRecorder(), req, &target); err == nil {
		t.Fatal("expected trailing data to be rejected")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	if err := decodeJSON(httptest.NewRecorder(), req, &target); err != nil || target["a"] != float64(1) {
		t.Fatalf("decode = %v, %v", target, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`"`+strings.Repeat("x", maxBodyBytes)+`"`))
	if err := decodeJSON(httptest.NewRecorder(), req, &target); err == nil {
		t.Fatal("expected oversized body to be rejected")
	}
}
