package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.PublicAccount, error)
	loginFn    func(ctx context.Context, email, credential string) (*domain.LoginResult, error)
	deleteFn   func(ctx context.Context, callerAccountID string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.PublicAccount, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, credential string) (*domain.LoginResult, error) {
	return s.loginFn(ctx, email, credential)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, callerAccountID string) error {
	return s.deleteFn(ctx, callerAccountID)
}

type stubRevoker struct {
	revoked []string
	ttl     time.Duration
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, subject string, ttl time.Duration) error {
	s.revoked = append(s.revoked, subject)
	s.ttl = ttl
	return s.err
}

func (s *stubRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.PublicAccount, error) {
			if input.Name != "Alice" || input.Email != "alice@example.com" || input.Credential != "s3cret!" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.PublicAccount{Name: input.Name, Email: input.Email}, nil
		},
	}
	h := NewAuthHandler(stub, &stubRevoker{}, zerolog.Nop())

	c, rec := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"s3cret!"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "Alice" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("credential must not be echoed: %v", resp)
	}
}

func TestAuthHandler_Signup_BlankFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.PublicAccount, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubRevoker{}, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"","email":"alice@example.com","password":"x"}`)
	err := h.Signup(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "name cannot be blank") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubRevoker{}, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.PublicAccount, error) {
			return nil, domain.Conflict("email already registered")
		},
	}
	h := NewAuthHandler(stub, &stubRevoker{}, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"x"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, credential string) (*domain.LoginResult, error) {
			if email != "alice@example.com" || credential != "s3cret!" {
				t.Fatalf("unexpected args: %s %s", email, credential)
			}
			return &domain.LoginResult{Token: "tok", ExpiresInMillis: 86_400_000}, nil
		},
	}
	h := NewAuthHandler(stub, &stubRevoker{}, zerolog.Nop())

	c, rec := jsonContext(e, http.MethodPost, "/auth/signin", `{"email":"alice@example.com","password":"s3cret!"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp signinResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "tok" || resp.ExpiresIn != 86_400_000 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Signin_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.LoginResult, error) {
			return nil, domain.Authentication("invalid email or password")
		},
	}
	h := NewAuthHandler(stub, &stubRevoker{}, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodPost, "/auth/signin", `{"email":"alice@example.com","password":"nope"}`)
	if err := h.Signin(c); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestAuthHandler_Delete_RevokesCaller(t *testing.T) {
	e := newTestEcho()
	var deleted string
	stub := &stubAuthService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	revoker := &stubRevoker{}
	h := NewAuthHandler(stub, revoker, zerolog.Nop())

	c, rec := jsonContext(e, http.MethodDelete, "/auth/delete", "")
	c.Set(CtxAccountID, "acc-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "acc-1" {
		t.Fatalf("deleted %q, want acc-1", deleted)
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "acc-1" {
		t.Fatalf("caller not revoked: %v", revoker.revoked)
	}
	if revoker.ttl != domain.TokenLifetime {
		t.Fatalf("revocation ttl = %v, want %v", revoker.ttl, domain.TokenLifetime)
	}
}

func TestAuthHandler_Delete_RevocationFailureStillSucceeds(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{deleteFn: func(context.Context, string) error { return nil }}
	h := NewAuthHandler(stub, &stubRevoker{err: errors.New("redis down")}, zerolog.Nop())

	c, rec := jsonContext(e, http.MethodDelete, "/auth/delete", "")
	c.Set(CtxAccountID, "acc-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_Delete_UnknownAccountSkipsRevocation(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		deleteFn: func(context.Context, string) error { return domain.Authentication("account not found") },
	}
	revoker := &stubRevoker{}
	h := NewAuthHandler(stub, revoker, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodDelete, "/auth/delete", "")
	c.Set(CtxAccountID, "ghost")

	if err := h.Delete(c); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("nothing should be revoked: %v", revoker.revoked)
	}
}

func TestAuthHandler_Delete_MissingCaller(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubRevoker{}, zerolog.Nop())

	c, _ := jsonContext(e, http.MethodDelete, "/auth/delete", "")
	err := h.Delete(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
