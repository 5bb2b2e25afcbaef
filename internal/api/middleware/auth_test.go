package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brandbook/entries-api/internal/core/domain"
)

type stubVerifier struct {
	user *domain.User
	err  error
	got  string
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (*domain.User, error) {
	s.got = token
	return s.user, s.err
}

func runAuth(t *testing.T, v TokenVerifier, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(v)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1"}
	v := &stubVerifier{user: user}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(v)(func(c echo.Context) error {
		called = true
		if c.Get(UserKey) != user {
			t.Fatalf("user not set")
		}
		if c.Get(TokenKey) != "abc.def.ghi" {
			t.Fatalf("token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if v.got != "abc.def.ghi" {
		t.Fatalf("verifier got %q", v.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]struct {
		header string
		err    error
	}{
		"missing header":  {header: ""},
		"wrong scheme":    {header: "Token abc"},
		"empty token":     {header: "Bearer "},
		"invalid token":   {header: "Bearer not-a-token", err: domain.ErrUnauthorized},
		"repository down": {header: "Bearer abc", err: errors.New("mongo down")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, &stubVerifier{err: tc.err}, tc.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
