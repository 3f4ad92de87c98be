package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenschool/zerowaste-backend/internal/authz"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/greenschool/zerowaste-backend/internal/reqctx"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	AuthenticateFn func(ctx context.Context, token string) (*repository.SessionWithUser, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in service.SignUpInput) (*model.User, error) {
	return nil, nil
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	return nil, nil, nil
}

func (s *stubAuthService) SignOut(ctx context.Context, token string) error {
	return nil
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*repository.SessionWithUser, error) {
	return s.AuthenticateFn(ctx, token)
}

func TestRequireAuth(t *testing.T) {
	auth := &stubAuthService{AuthenticateFn: func(ctx context.Context, token string) (*repository.SessionWithUser, error) {
		if token == "live" {
			return &repository.SessionWithUser{
				User: model.User{ID: 7, Name: "สมชาย", Role: model.RoleStudent},
			}, nil
		}
		return nil, service.ErrInvalidCredentials
	}}
	mw := NewAuthMiddleware(auth)

	handler := mw.RequireAuth(func(c echo.Context) error {
		actor, ok := reqctx.ActorFrom(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, uint64(7), actor.ID)
		return c.NoContent(http.StatusOK)
	})

	t.Run("no cookie", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stale token", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("live token attaches actor", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "live"})
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequirePolicy(t *testing.T) {
	mw := NewAuthMiddleware(&stubAuthService{})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	handler := mw.RequirePolicy(authz.ActionManageUsers)(next)

	newCtx := func(role model.Role) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if role != "" {
			actor := reqctx.Actor{ID: 1, Role: role}
			req = req.WithContext(reqctx.WithActor(req.Context(), actor))
		}
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("admin allowed", func(t *testing.T) {
		c, rec := newCtx(model.RoleAdmin)
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student denied", func(t *testing.T) {
		c, rec := newCtx(model.RoleStudent)
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing actor", func(t *testing.T) {
		c, rec := newCtx("")
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
