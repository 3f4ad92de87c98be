package middleware

import (
	"net/http"

	"github.com/greenschool/zerowaste-backend/internal/authz"
	"github.com/greenschool/zerowaste-backend/internal/reqctx"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth resolves the session cookie to an actor and attaches it to the
// request context. Requests without a live session get a 401.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "กรุณาเข้าสู่ระบบ"})
		}
		sw, err := m.auth.Authenticate(c.Request().Context(), cookie.Value)
		if err != nil {
			if err == service.ErrInvalidCredentials {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "เกิดข้อผิดพลาดในระบบ"})
		}

		actor := reqctx.Actor{
			ID:    sw.User.ID,
			Name:  sw.User.Name,
			Email: sw.User.Email,
			Role:  sw.User.Role,
			Grade: sw.User.Grade,
		}
		ctx := reqctx.WithActor(c.Request().Context(), actor)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequirePolicy gates a route on the authorization policy. It must run after
// RequireAuth.
func (m *AuthMiddleware) RequirePolicy(action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := reqctx.ActorFrom(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "กรุณาเข้าสู่ระบบ"})
			}
			if d := authz.Decide(actor.Role, action); !d.Allow {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "ไม่มีสิทธิ์เข้าถึง"})
			}
			return next(c)
		}
	}
}
