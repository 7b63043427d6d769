package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, caller domain.Identity, in ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, caller domain.Identity, id string) (*domain.User, error)
	listFn   func(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	updateFn func(ctx context.Context, caller domain.Identity, id string, patch ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, caller domain.Identity, id string) error
	roleFn   func(ctx context.Context, caller domain.Identity, id, newRole string) error
}

func (s *stubUserService) Create(ctx context.Context, caller domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubUserService) Get(ctx context.Context, caller domain.Identity, id string) (*domain.User, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubUserService) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) Update(ctx context.Context, caller domain.Identity, id string, patch ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, patch)
}

func (s *stubUserService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubUserService) ChangeRole(ctx context.Context, caller domain.Identity, id, newRole string) error {
	return s.roleFn(ctx, caller, id, newRole)
}

// newAdminContext builds an echo context with the claims the Auth middleware
// would inject for an admin session.
func newAdminContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "100")
	c.Set("username", "root")
	c.Set("role", "admin")
	return c, rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		createFn: func(_ context.Context, caller domain.Identity, in ports.CreateUserInput) (*domain.User, error) {
			if caller.UserID != "100" || caller.Role != domain.RoleAdmin {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if in.Username != "alice" || in.Role != "editor" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "1", Username: in.Username, Role: domain.RoleEditor, Active: true, PasswordHash: "digest"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodPost, "/v1/users", `{"username":"alice","password":"secret1","role":"editor"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "editor" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("digest leaked: %+v", resp)
	}
}

func TestUserHandler_Create_ErrorPassesThrough(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		createFn: func(_ context.Context, _ domain.Identity, _ ports.CreateUserInput) (*domain.User, error) {
			return nil, &domain.FieldError{Field: "username", Err: domain.ErrDuplicateUsername}
		},
	}
	h := NewUserHandler(stub)

	c, _ := newAdminContext(e, http.MethodPost, "/v1/users", `{"username":"alice","password":"secret1","role":"editor"}`)
	err := h.Create(c)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate error to reach the error handler, got %v", err)
	}
}

func TestUserHandler_Create_SchemaRejectsMissingFields(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{
		createFn: func(_ context.Context, _ domain.Identity, _ ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service must not be reached on a schema failure")
			return nil, nil
		},
	})

	c, _ := newAdminContext(e, http.MethodPost, "/v1/users", `{"username":"alice"}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	msg := fmt.Sprintf("%v", he.Message)
	if !strings.Contains(msg, "password") || !strings.Contains(msg, "role") {
		t.Fatalf("message must name the missing fields, got %q", msg)
	}
}

func TestUserHandler_ChangeRole_SchemaRejectsEmptyRole(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{
		roleFn: func(_ context.Context, _ domain.Identity, _, _ string) error {
			t.Fatalf("service must not be reached on a schema failure")
			return nil
		},
	})

	c, _ := newAdminContext(e, http.MethodPut, "/", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := h.ChangeRole(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Create_MissingClaims(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&stubUserService{
		createFn: func(_ context.Context, _ domain.Identity, _ ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(_ context.Context, _ domain.Identity, id string) (*domain.User, error) {
			if id != "42" {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.User{ID: "42", Username: "bob", Role: domain.RoleViewer, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_List_NeverExposesDigest(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(_ context.Context, _ domain.Identity) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "1", Username: "alice", Role: domain.RoleAdmin, Active: true, PasswordHash: "$2a$10$secret"},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodGet, "/v1/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "$2a$10$") {
		t.Fatalf("digest leaked into list response: %s", rec.Body.String())
	}
}

func TestUserHandler_Update_PatchPresence(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Identity, id string, patch ports.UpdateUserInput) (*domain.User, error) {
			if patch.Email == nil || *patch.Email != "new@example.com" {
				t.Fatalf("expected email in patch, got %+v", patch)
			}
			if patch.Username != nil || patch.Password != nil || patch.Active != nil {
				t.Fatalf("absent fields must be nil: %+v", patch)
			}
			return &domain.User{ID: id, Username: "alice", Email: *patch.Email, Role: domain.RoleViewer, Active: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodPut, "/", `{"email":"new@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteFn: func(_ context.Context, caller domain.Identity, id string) error {
			if id != "9" || caller.UserID != "100" {
				t.Fatalf("unexpected args: id=%s caller=%+v", id, caller)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_ChangeRole(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		roleFn: func(_ context.Context, _ domain.Identity, id, newRole string) error {
			if id != "9" || newRole != "admin" {
				t.Fatalf("unexpected args: %s %s", id, newRole)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newAdminContext(e, http.MethodPut, "/", `{"role":"admin"}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.ChangeRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
