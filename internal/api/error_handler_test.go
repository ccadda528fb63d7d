package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/trucks/truck_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %s", rec.Body.String())
	}
	return rec, body.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, wantCode: 401, wantMsg: "invalid credentials"},
		{name: "invalid token", err: domain.ErrInvalidToken, wantCode: 401, wantMsg: "invalid token"},
		{name: "access denied", err: domain.ErrAccessDenied, wantCode: 403, wantMsg: "access to resource denied"},
		{name: "user not found", err: domain.ErrUserNotFound, wantCode: 404, wantMsg: "user not found"},
		{name: "email taken", err: domain.ErrEmailTaken, wantCode: 409, wantMsg: "email already registered"},
		{name: "duplicate truck", err: domain.ErrDuplicateTruck, wantCode: 409, wantMsg: "plate number already exists"},
		{name: "duplicate facility", err: domain.ErrDuplicateFacility, wantCode: 409, wantMsg: "facility already exists"},
		{name: "duplicate organization", err: domain.ErrDuplicateOrganization, wantCode: 409, wantMsg: "organization already exists"},
		{name: "duplicate ticket", err: domain.ErrDuplicateTicket, wantCode: 409, wantMsg: "container number already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, msg := renderError(t, tc.err)
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("repo layer"), domain.ErrAccessDenied)
	rec, msg := renderError(t, wrapped)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if msg != "access to resource denied" {
		t.Fatalf("message = %q", msg)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "capacity must be greater than 0"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg != "capacity must be greater than 0" {
		t.Fatalf("message = %q", msg)
	}
}

// Unexpected errors must not leak their cause to the client.
func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, msg := renderError(t, errors.New("mongo: connection pool exhausted"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg != "internal server error" {
		t.Fatalf("message = %q, internals leaked", msg)
	}
}
