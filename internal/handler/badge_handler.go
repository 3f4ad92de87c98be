package handler

import (
	"net/http"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type BadgeHandler struct {
	svc service.BadgeService
}

func NewBadgeHandler(svc service.BadgeService) *BadgeHandler {
	return &BadgeHandler{svc: svc}
}

type BadgeStatusResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ThresholdPts int     `json:"pointsRequired"`
	Earned       bool    `json:"earned"`
	AwardedAt    *string `json:"awardedAt,omitempty"`
}

type BadgeOverviewResponse struct {
	Badges        []BadgeStatusResponse `json:"badges"`
	CurrentPoints int                   `json:"currentPoints"`
}

func (h *BadgeHandler) List(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	overview, err := h.svc.Overview(c.Request().Context(), actor.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := BadgeOverviewResponse{
		Badges:        make([]BadgeStatusResponse, 0, len(overview.Badges)),
		CurrentPoints: overview.CurrentPoints,
	}
	for _, st := range overview.Badges {
		out := BadgeStatusResponse{
			ID:           st.Badge.ID,
			Name:         st.Badge.Name,
			Description:  st.Badge.Description,
			ThresholdPts: st.Badge.ThresholdPts,
			Earned:       st.Earned,
		}
		if st.AwardedDt != nil {
			s := st.AwardedDt.Format(time.RFC3339)
			out.AwardedAt = &s
		}
		resp.Badges = append(resp.Badges, out)
	}
	return c.JSON(http.StatusOK, resp)
}
