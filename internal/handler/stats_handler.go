package handler

import (
	"net/http"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

type ActivityResponse struct {
	ID       uint64 `json:"id"`
	TypeName string `json:"wasteType"`
	WeightG  int    `json:"weightG"`
	Points   int    `json:"points"`
	RecordDt string `json:"recordedAt"`
}

type DashboardResponse struct {
	RecycleWeight    int                   `json:"recycleWeight"`
	GeneralWeight    int                   `json:"generalWeight"`
	TotalPoints      int                   `json:"totalPoints"`
	Rank             int                   `json:"rank"`
	RecentActivities []ActivityResponse    `json:"recentActivities"`
	Badges           []EarnedBadgeResponse `json:"badges"`
}

func (h *StatsHandler) Dashboard(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	stats, err := h.svc.Dashboard(c.Request().Context(), actor.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := DashboardResponse{
		RecycleWeight:    stats.RecycleWeight,
		GeneralWeight:    stats.GeneralWeight,
		TotalPoints:      stats.TotalPoints,
		Rank:             stats.Rank,
		RecentActivities: make([]ActivityResponse, 0, len(stats.RecentActivities)),
		Badges:           make([]EarnedBadgeResponse, 0, len(stats.Badges)),
	}
	for _, a := range stats.RecentActivities {
		resp.RecentActivities = append(resp.RecentActivities, ActivityResponse{
			ID:       a.ID,
			TypeName: a.TypeName,
			WeightG:  a.WeightG,
			Points:   a.Points,
			RecordDt: a.RecordDt.Format(time.RFC3339),
		})
	}
	for _, b := range stats.Badges {
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

type PersonalStatsResponse struct {
	TotalRecords  int     `json:"totalRecords"`
	TotalWeight   int     `json:"totalWeight"`
	TotalPoints   int     `json:"totalPoints"`
	RecycleWeight int     `json:"recycleWeight"`
	GeneralWeight int     `json:"generalWeight"`
	AveragePerDay float64 `json:"averagePerDay"`
	Rank          int     `json:"rank"`
	Percentile    int     `json:"percentile"`
}

type TopPerformerResponse struct {
	UserID uint64 `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Weight int    `json:"weight"`
}

type SchoolStatsResponse struct {
	TotalUsers    int64                  `json:"totalUsers"`
	TotalRecords  int64                  `json:"totalRecords"`
	TotalWeight   int64                  `json:"totalWeight"`
	TotalPoints   int64                  `json:"totalPoints"`
	TopPerformers []TopPerformerResponse `json:"topPerformers"`
}

type MonthBucketResponse struct {
	Month         string `json:"month"`
	RecycleWeight int    `json:"recycleWeight"`
	GeneralWeight int    `json:"generalWeight"`
	Points        int    `json:"points"`
}

type DayBucketResponse struct {
	Day    string `json:"day"`
	Weight int    `json:"weight"`
	Points int    `json:"points"`
}

type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Weight     int     `json:"weight"`
	Percentage float64 `json:"percentage"`
}

type StatisticsResponse struct {
	Personal          PersonalStatsResponse   `json:"personal"`
	School            SchoolStatsResponse     `json:"school"`
	Monthly           []MonthBucketResponse   `json:"monthly"`
	Weekly            []DayBucketResponse     `json:"weekly"`
	CategoryBreakdown []CategoryShareResponse `json:"categoryBreakdown"`
}

func (h *StatsHandler) Statistics(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	report, err := h.svc.Statistics(c.Request().Context(), actor.ID, c.QueryParam("period"))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := StatisticsResponse{
		Personal: PersonalStatsResponse{
			TotalRecords:  report.Personal.TotalRecords,
			TotalWeight:   report.Personal.TotalWeight,
			TotalPoints:   report.Personal.TotalPoints,
			RecycleWeight: report.Personal.RecycleWeight,
			GeneralWeight: report.Personal.GeneralWeight,
			AveragePerDay: report.Personal.AveragePerDay,
			Rank:          report.Personal.Rank,
			Percentile:    report.Personal.Percentile,
		},
		School: SchoolStatsResponse{
			TotalUsers:    report.School.TotalUsers,
			TotalRecords:  report.School.TotalRecords,
			TotalWeight:   report.School.TotalWeight,
			TotalPoints:   report.School.TotalPoints,
			TopPerformers: make([]TopPerformerResponse, 0, len(report.School.TopPerformers)),
		},
		Monthly:           make([]MonthBucketResponse, 0, len(report.Monthly)),
		Weekly:            make([]DayBucketResponse, 0, len(report.Weekly)),
		CategoryBreakdown: make([]CategoryShareResponse, 0, len(report.CategoryBreakdown)),
	}
	for _, t := range report.School.TopPerformers {
		resp.School.TopPerformers = append(resp.School.TopPerformers, TopPerformerResponse(t))
	}
	for _, m := range report.Monthly {
		resp.Monthly = append(resp.Monthly, MonthBucketResponse(m))
	}
	for _, d := range report.Weekly {
		resp.Weekly = append(resp.Weekly, DayBucketResponse(d))
	}
	for _, cb := range report.CategoryBreakdown {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, CategoryShareResponse(cb))
	}
	return c.JSON(http.StatusOK, resp)
}
