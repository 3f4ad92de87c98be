package handler

import (
	"net/http"
	"strconv"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type WasteTypeHandler struct {
	svc service.WasteTypeService
}

func NewWasteTypeHandler(svc service.WasteTypeService) *WasteTypeHandler {
	return &WasteTypeHandler{svc: svc}
}

type WasteTypeResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PointFactor float64 `json:"pointFactor"`
}

type WasteTypeStatsResponse struct {
	WasteTypeResponse
	Category     string `json:"category"`
	TotalRecords int64  `json:"totalRecords"`
}

type WasteTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PointFactor float64 `json:"pointFactor"`
}

// List is the catalog used by the record form.
func (h *WasteTypeHandler) List(c echo.Context) error {
	types, err := h.svc.Catalog(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]WasteTypeResponse, 0, len(types))
	for i := range types {
		resp = append(resp, toWasteTypeResponse(&types[i]))
	}
	return c.JSON(http.StatusOK, map[string][]WasteTypeResponse{"wasteTypes": resp})
}

// ListWithStats is the admin view with per-type usage counts.
func (h *WasteTypeHandler) ListWithStats(c echo.Context) error {
	types, err := h.svc.ListWithStats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]WasteTypeStatsResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, WasteTypeStatsResponse{
			WasteTypeResponse: toWasteTypeResponse(&t.Type),
			Category:          t.Category,
			TotalRecords:      t.TotalRecords,
		})
	}
	return c.JSON(http.StatusOK, map[string][]WasteTypeStatsResponse{"wasteTypes": resp})
}

func (h *WasteTypeHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req WasteTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	wt, err := h.svc.Create(c.Request().Context(), actor.ID, req.Name, req.Description, req.PointFactor)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":   "เพิ่มประเภทขยะสำเร็จ",
		"wasteType": toWasteTypeResponse(wt),
	})
}

func (h *WasteTypeHandler) Update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสประเภทขยะไม่ถูกต้อง"))
	}
	var req WasteTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	wt, err := h.svc.Update(c.Request().Context(), actor.ID, id, req.Name, req.Description, req.PointFactor)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "แก้ไขประเภทขยะสำเร็จ",
		"wasteType": toWasteTypeResponse(wt),
	})
}

func (h *WasteTypeHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสประเภทขยะไม่ถูกต้อง"))
	}
	if err := h.svc.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ลบประเภทขยะสำเร็จ"})
}

func toWasteTypeResponse(t *model.WasteType) WasteTypeResponse {
	return WasteTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		PointFactor: t.PointFactor,
	}
}
