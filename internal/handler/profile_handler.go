package handler

import (
	"net/http"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.UserService
}

func NewProfileHandler(svc service.UserService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type EarnedBadgeResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ThresholdPts int     `json:"pointsRequired"`
	AwardedAt    string  `json:"awardedAt"`
}

type ProfileResponse struct {
	User         UserResponse          `json:"user"`
	TotalPoints  int                   `json:"totalPoints"`
	TotalRecords int                   `json:"totalRecords"`
	TotalWeight  int                   `json:"totalWeight"`
	Badges       []EarnedBadgeResponse `json:"badges"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	p, err := h.svc.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := ProfileResponse{
		User:         toUserResponse(&p.User),
		TotalPoints:  p.TotalPoints,
		TotalRecords: p.TotalRecords,
		TotalWeight:  p.TotalWeight,
		Badges:       make([]EarnedBadgeResponse, 0, len(p.Badges)),
	}
	for _, b := range p.Badges {
		resp.Badges = append(resp.Badges, EarnedBadgeResponse{
			ID:           b.BadgeID,
			Name:         b.Name,
			Description:  b.Description,
			ThresholdPts: b.ThresholdPts,
			AwardedAt:    b.AwardedDt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	if err := h.svc.UpdateName(c.Request().Context(), actor.ID, req.Name); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "อัปเดตโปรไฟล์สำเร็จ"})
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	if err := h.svc.ChangePassword(c.Request().Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "เปลี่ยนรหัสผ่านสำเร็จ"})
}
