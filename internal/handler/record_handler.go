package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RecordHandler struct {
	svc service.RecordService
}

func NewRecordHandler(svc service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

type RecordEntryRequest struct {
	TypeID      uint64  `json:"wasteTypeId"`
	WeightG     int     `json:"weightG"`
	Description *string `json:"description"`
}

type CreateRecordsRequest struct {
	Records []RecordEntryRequest `json:"records"`
}

type UpdateRecordRequest struct {
	WeightG     int     `json:"weightG"`
	Description *string `json:"description"`
}

type RecordResponse struct {
	ID          uint64  `json:"id"`
	TypeID      uint64  `json:"wasteTypeId"`
	WeightG     int     `json:"weightG"`
	Points      int     `json:"points"`
	Description *string `json:"description,omitempty"`
	RecordDt    string  `json:"recordedAt"`
}

type BadgeResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ThresholdPts int     `json:"pointsRequired"`
}

type CreateRecordsResponse struct {
	Message       string           `json:"message"`
	Records       []RecordResponse `json:"records"`
	BatchPoints   int              `json:"batchPoints"`
	CurrentPoints int              `json:"currentPoints"`
	NewBadges     []BadgeResponse  `json:"newBadges"`
}

func (h *RecordHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req CreateRecordsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}

	entries := make([]service.BatchEntry, 0, len(req.Records))
	for _, r := range req.Records {
		entries = append(entries, service.BatchEntry{
			TypeID:      r.TypeID,
			WeightG:     r.WeightG,
			Description: r.Description,
		})
	}
	result, err := h.svc.SubmitBatch(c.Request().Context(), actor.ID, entries)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := CreateRecordsResponse{
		Message:       "บันทึกข้อมูลสำเร็จ",
		Records:       make([]RecordResponse, 0, len(result.Records)),
		BatchPoints:   result.BatchPoints,
		CurrentPoints: result.CurrentPoints,
		NewBadges:     make([]BadgeResponse, 0, len(result.Award.NewBadges)),
	}
	for i := range result.Records {
		resp.Records = append(resp.Records, toRecordResponse(&result.Records[i]))
	}
	for _, b := range result.Award.NewBadges {
		resp.NewBadges = append(resp.NewBadges, toBadgeResponse(b))
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *RecordHandler) Update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสรายการไม่ถูกต้อง"))
	}
	var req UpdateRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	rec, err := h.svc.UpdateRecord(c.Request().Context(), actor.ID, id, req.WeightG, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "แก้ไขรายการสำเร็จ",
		"record":  toRecordResponse(rec),
	})
}

func (h *RecordHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสรายการไม่ถูกต้อง"))
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), actor.ID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ลบรายการสำเร็จ"})
}

func toRecordResponse(r *model.WasteRecord) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		TypeID:      r.TypeID,
		WeightG:     r.WeightG,
		Points:      r.Points,
		Description: r.Description,
		RecordDt:    r.RecordDt.Format(time.RFC3339),
	}
}

func toBadgeResponse(b model.Badge) BadgeResponse {
	return BadgeResponse{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		ThresholdPts: b.ThresholdPts,
	}
}
