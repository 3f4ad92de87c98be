package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminStatsHandler struct {
	stats service.StatsService
	audit service.AuditService
}

func NewAdminStatsHandler(stats service.StatsService, audit service.AuditService) *AdminStatsHandler {
	return &AdminStatsHandler{stats: stats, audit: audit}
}

type AdminOverviewResponse struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalStudents     int64 `json:"totalStudents"`
	TotalTeachers     int64 `json:"totalTeachers"`
	TotalWasteRecords int64 `json:"totalWasteRecords"`
	TotalWeight       int64 `json:"totalWeight"`
	TotalPoints       int64 `json:"totalPoints"`
	TodayRecords      int64 `json:"todayRecords"`
	TodayWeight       int64 `json:"todayWeight"`
}

type AdminStatisticsResponse struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalStudents      int64 `json:"totalStudents"`
	TotalTeachers      int64 `json:"totalTeachers"`
	TotalWasteRecords  int64 `json:"totalWasteRecords"`
	TotalWasteWeight   int64 `json:"totalWasteWeight"`
	TotalPointsAwarded int64 `json:"totalPointsAwarded"`
	ActiveUsers        int64 `json:"activeUsers"`
	NewUsersThisMonth  int64 `json:"newUsersThisMonth"`
	RecordsThisMonth   int64 `json:"recordsThisMonth"`
}

type AuditLogResponse struct {
	ID        uint64 `json:"id"`
	AdminID   uint64 `json:"adminId"`
	AdminName string `json:"adminName"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	LoggedAt  string `json:"loggedAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}

func (h *AdminStatsHandler) Overview(c echo.Context) error {
	ov, err := h.stats.AdminOverview(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, AdminOverviewResponse(*ov))
}

func (h *AdminStatsHandler) Statistics(c echo.Context) error {
	st, err := h.stats.AdminStatistics(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, AdminStatisticsResponse(*st))
}

func (h *AdminStatsHandler) Export(c echo.Context) error {
	start, err := parseDateParam(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รูปแบบวันที่เริ่มต้นไม่ถูกต้อง"))
	}
	end, err := parseDateParam(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รูปแบบวันที่สิ้นสุดไม่ถูกต้อง"))
	}
	if end != nil {
		// Make the end date inclusive.
		e := end.Add(24 * time.Hour)
		end = &e
	}

	data, filename, err := h.stats.ExportCSV(c.Request().Context(), start, end)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *AdminStatsHandler) AuditLogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, total, err := h.audit.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := AuditLogListResponse{
		Logs:  make([]AuditLogResponse, 0, len(entries)),
		Total: total,
	}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, AuditLogResponse{
			ID:        e.ID,
			AdminID:   e.AdminID,
			AdminName: e.AdminName,
			Action:    e.Action,
			Detail:    e.Detail,
			LoggedAt:  e.LogDt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
