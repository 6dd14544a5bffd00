package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, error)
	signupFn func(ctx context.Context, username, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, email, password)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"userName":"alice","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["code"] != float64(200) || resp["msg"] != "OK" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["token"] != "token123" {
		t.Fatalf("expected token in data, got %+v", resp["data"])
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, nil)

	for _, body := range []string{`{"userName":"alice"}`, `{"password":"pw"}`, `{}`, "not-json"} {
		c, rec := newTestContext(t, http.MethodPost, "/auth/login", body)
		_ = h.Login(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("body %q: expected 403, got %d", body, rec.Code)
		}
		resp := decodeEnvelope(t, rec)
		if resp["code"] != float64(403) {
			t.Fatalf("body %q: unexpected envelope: %+v", body, resp)
		}
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"userName":"ghost","password":"pw"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["msg"] != "Invalid user - ghost" {
		t.Fatalf("unexpected message: %v", resp["msg"])
	}
}

func TestAuthHandler_Login_BadPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"userName":"alice","password":"wrong"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["msg"] != "Invalid authentication" {
		t.Fatalf("unexpected message: %v", resp["msg"])
	}
}

func TestAuthHandler_Login_InternalError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", errors.New("store unreachable")
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"userName":"alice","password":"pw"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if !strings.Contains(resp["msg"].(string), "store unreachable") {
		t.Fatalf("expected cause in message, got %v", resp["msg"])
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "a@x.com" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{
				ID:           "64f1c0ffee",
				Username:     username,
				Email:        email,
				PasswordHash: "$2a$10$somethinghashed",
				Role:         domain.RoleCustomer,
			}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup", `{"userName":"alice","email":"a@x.com","password":"pw1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked into response: %s", rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	if resp["msg"] != "sign up success" {
		t.Fatalf("unexpected message: %v", resp["msg"])
	}
	data := resp["data"].(map[string]any)
	user, ok := data["user"].(map[string]any)
	if !ok || user["userID"] != "64f1c0ffee" || user["userName"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", data)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	for _, body := range []string{`{"userName":"alice","email":"a@x.com"}`, `{"password":"pw"}`, `{}`} {
		c, rec := newTestContext(t, http.MethodPost, "/auth/signup", body)
		_ = h.Signup(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("body %q: expected 403, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Signup_StorageFailure(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return nil, errors.New("duplicate key")
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup", `{"userName":"alice","email":"a@x.com","password":"pw"}`)
	_ = h.Signup(c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set(CtxUser, &domain.User{ID: "u1", Username: "alice", Role: domain.RoleCustomer})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	user := resp["data"].(map[string]any)["user"].(map[string]any)
	if user["userName"] != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")
	err := h.Me(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
