package errs

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func render(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	Handler(zerolog.Nop())(err, c)

	var body HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestHandlerRendersHTTPError(t *testing.T) {
	status, body := render(t, NewNotFoundError("User not found"))
	if status != http.StatusNotFound || body.Code != "NOT_FOUND" || body.Message != "User not found" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}

	status, body = render(t, NewConflictError("Username already exists"))
	if status != http.StatusBadRequest || body.Code != "CONFLICT" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}

	status, body = render(t, NewValidationError("Validation failed", []FieldError{{Field: "name", Error: "is required"}}))
	if status != http.StatusUnprocessableEntity || len(body.Errors) != 1 || body.Errors[0].Field != "name" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}
}

func TestHandlerMapsEchoErrors(t *testing.T) {
	status, body := render(t, echo.ErrNotFound)
	if status != http.StatusNotFound || body.Message != "Route not found" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}

	status, body = render(t, echo.ErrMethodNotAllowed)
	if status != http.StatusMethodNotAllowed || body.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}
}

func TestHandlerHidesUnknownErrors(t *testing.T) {
	status, body := render(t, errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	if status != http.StatusInternalServerError || body.Message != "Internal Server Error" {
		t.Fatalf("unexpected response: %d %+v", status, body)
	}
}
