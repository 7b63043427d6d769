package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if unmarshalErr := json.Unmarshal(rec.Body.Bytes(), &resp); unmarshalErr != nil {
		t.Fatalf("invalid error body: %v", unmarshalErr)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"self delete", domain.ErrSelfDelete, http.StatusForbidden},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"duplicate", domain.ErrDuplicateUsername, http.StatusConflict},
		{"bad role", domain.ErrInvalidRole, http.StatusUnprocessableEntity},
		{"store down", fmt.Errorf("%w: insert: timeout", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := runErrorHandler(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if resp.Error == "" {
				t.Fatal("error message must not be empty")
			}
		})
	}
}

func TestErrorHandler_FieldError(t *testing.T) {
	err := &domain.FieldError{Field: "password", Err: errors.New("password must be at least 6 characters")}

	code, resp := runErrorHandler(t, err)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.FieldErrors["password"] != "password must be at least 6 characters" {
		t.Fatalf("unexpected fieldErrors: %+v", resp.FieldErrors)
	}
}

func TestErrorHandler_DuplicateFieldErrorIsConflict(t *testing.T) {
	err := &domain.FieldError{Field: "username", Err: domain.ErrDuplicateUsername}

	code, resp := runErrorHandler(t, err)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if _, ok := resp.FieldErrors["username"]; !ok {
		t.Fatalf("duplicate username must be field-tagged: %+v", resp.FieldErrors)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, resp := runErrorHandler(t, errors.New("pq: relation dropped"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", resp.Error)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, resp := runErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error != "invalid payload" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}
