package handler

import (
	"net/http"

	"github.com/greenschool/zerowaste-backend/internal/reqctx"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the single error envelope every endpoint uses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// writeServiceError maps service-layer errors onto HTTP statuses. Validation
// messages pass through verbatim; everything else becomes a generic 500 so
// internals never leak to clients.
func writeServiceError(c echo.Context, err error) error {
	if ve, ok := service.IsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse(ve.Message))
	}
	switch {
	case err == service.ErrInvalidCredentials:
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("อีเมลหรือรหัสผ่านไม่ถูกต้อง"))
	case err == service.ErrForbidden:
		return c.JSON(http.StatusForbidden, NewErrorResponse("ไม่มีสิทธิ์ดำเนินการนี้"))
	case err == service.ErrNotFound:
		return c.JSON(http.StatusNotFound, NewErrorResponse("ไม่พบข้อมูล"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("เกิดข้อผิดพลาดในระบบ"))
	}
}

// actorFrom pulls the authenticated actor set by the auth middleware.
func actorFrom(c echo.Context) (reqctx.Actor, bool) {
	return reqctx.ActorFrom(c.Request().Context())
}
