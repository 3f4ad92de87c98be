package handler

import (
	"net/http"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardEntryResponse struct {
	UserID        uint64  `json:"userId"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Grade         *int    `json:"grade,omitempty"`
	ClassSection  *string `json:"classSection,omitempty"`
	TotalPoints   int     `json:"totalPoints"`
	TotalWeight   int     `json:"totalWeight"`
	RecordCount   int     `json:"recordCount"`
	Rank          int     `json:"rank"`
	IsCurrentUser bool    `json:"isCurrentUser"`
}

type LeaderboardResponse struct {
	Users             []LeaderboardEntryResponse `json:"users"`
	CurrentUser       *LeaderboardEntryResponse  `json:"currentUser"`
	TotalParticipants int                        `json:"totalParticipants"`
}

func (h *LeaderboardHandler) Get(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}

	filter := service.LeaderboardFilter(c.QueryParam("filter"))
	switch filter {
	case service.FilterAll, service.FilterStudents, service.FilterMyGrade:
	case "":
		filter = service.FilterAll
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ตัวกรองไม่ถูกต้อง"))
	}

	result, err := h.svc.Leaderboard(c.Request().Context(), actor.ID, actor.Grade, filter)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := LeaderboardResponse{
		Users:             make([]LeaderboardEntryResponse, 0, len(result.Users)),
		TotalParticipants: result.TotalParticipants,
	}
	for _, e := range result.Users {
		resp.Users = append(resp.Users, toLeaderboardEntryResponse(e))
	}
	if result.CurrentUser != nil {
		entry := toLeaderboardEntryResponse(*result.CurrentUser)
		resp.CurrentUser = &entry
	}
	return c.JSON(http.StatusOK, resp)
}

func toLeaderboardEntryResponse(e service.LeaderboardEntry) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		UserID:        e.UserID,
		Name:          e.Name,
		Role:          string(e.Role),
		Grade:         e.Grade,
		ClassSection:  e.ClassSection,
		TotalPoints:   e.TotalPoints,
		TotalWeight:   e.TotalWeight,
		RecordCount:   e.RecordCount,
		Rank:          e.Rank,
		IsCurrentUser: e.IsCurrentUser,
	}
}
