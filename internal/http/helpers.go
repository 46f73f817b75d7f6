package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/internal/render"
)

// maxBodyBytes bounds request documents. Images travel as URLs, so real
// drafts stay far below it.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// routePrefix cleans a mount point into a pattern prefix. The root mount is
// the empty string so patterns never start with "//".
func routePrefix(base string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(base))
	if cleaned == "/" {
		return ""
	}
	return cleaned
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func badRequest(w http.ResponseWriter, message string, err error) {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

var notFoundErrors = []error{documents.ErrDocumentNotFound, render.ErrSectionNotFound}

var categoryStatus = []struct {
	category goerrors.Category
	status   int
	label    string
}{
	{goerrors.CategoryValidation, http.StatusUnprocessableEntity, "validation_failed"},
	{goerrors.CategoryExternal, http.StatusBadGateway, "upstream_failed"},
	{goerrors.CategoryConflict, http.StatusConflict, "conflict"},
}

// mapError turns handler errors into a status and body. Not-found sentinels
// win over categories; anything unrecognised is a 500.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
		}
	}

	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
	}
	resp := errorResponse{Error: "internal_error", Message: typed.Message, Code: typed.TextCode, Fields: typed.ValidationMap()}
	if typed.Source != nil {
		resp.Message = typed.Source.Error()
	}
	for _, rule := range categoryStatus {
		if goerrors.HasCategory(err, rule.category) {
			resp.Error = rule.label
			return rule.status, resp
		}
	}
	return http.StatusInternalServerError, resp
}
