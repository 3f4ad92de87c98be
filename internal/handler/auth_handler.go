package handler

import (
	"net/http"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/middleware"
	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc        service.AuthService
	sessionTTL time.Duration
	secure     bool
}

func NewAuthHandler(svc service.AuthService, sessionTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, sessionTTL: sessionTTL, secure: secure}
}

type SignUpRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required"`
	Password     string  `json:"password" validate:"required"`
	Role         string  `json:"role" validate:"required"`
	Grade        *int    `json:"grade"`
	ClassSection *string `json:"classSection"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Grade        *int    `json:"grade,omitempty"`
	ClassSection *string `json:"classSection,omitempty"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	if err := checkRequired(&req); err != nil {
		return writeServiceError(c, err)
	}
	u, err := h.svc.SignUp(c.Request().Context(), service.SignUpInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         model.Role(req.Role),
		Grade:        req.Grade,
		ClassSection: req.ClassSection,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "สมัครสมาชิกสำเร็จ",
		User:    toUserResponse(u),
	})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	if err := checkRequired(&req); err != nil {
		return writeServiceError(c, err)
	}
	u, sess, err := h.svc.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.SetCookie(h.sessionCookie(sess.Token, h.sessionTTL))
	return c.JSON(http.StatusOK, AuthResponse{
		Message: "เข้าสู่ระบบสำเร็จ",
		User:    toUserResponse(u),
	})
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.svc.SignOut(c.Request().Context(), cookie.Value); err != nil {
			return writeServiceError(c, err)
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": "ออกจากระบบสำเร็จ"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	return c.JSON(http.StatusOK, map[string]UserResponse{"user": {
		ID:    actor.ID,
		Name:  actor.Name,
		Email: actor.Email,
		Role:  string(actor.Role),
		Grade: actor.Grade,
	}})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Grade:        u.Grade,
		ClassSection: u.ClassSection,
	}
}
