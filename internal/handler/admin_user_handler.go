package handler

import (
	"net/http"
	"strconv"

	"github.com/greenschool/zerowaste-backend/internal/model"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	svc service.UserService
}

func NewAdminUserHandler(svc service.UserService) *AdminUserHandler {
	return &AdminUserHandler{svc: svc}
}

type AdminUserResponse struct {
	UserResponse
	TotalPoints  int `json:"totalPoints"`
	TotalRecords int `json:"totalRecords"`
}

type AdminUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Grade        *int    `json:"grade"`
	ClassSection *string `json:"classSection"`
	Password     string  `json:"password"`
}

func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.svc.ListWithStats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, AdminUserResponse{
			UserResponse: toUserResponse(&users[i].User),
			TotalPoints:  users[i].TotalPoints,
			TotalRecords: users[i].TotalRecords,
		})
	}
	return c.JSON(http.StatusOK, map[string][]AdminUserResponse{"users": resp})
}

func (h *AdminUserHandler) Create(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req AdminUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	u, err := h.svc.Create(c.Request().Context(), actor.ID, service.UserInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         model.Role(req.Role),
		Grade:        req.Grade,
		ClassSection: req.ClassSection,
		Password:     req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "เพิ่มผู้ใช้สำเร็จ",
		"user":    toUserResponse(u),
	})
}

func (h *AdminUserHandler) Update(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสผู้ใช้ไม่ถูกต้อง"))
	}
	var req AdminUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}
	u, err := h.svc.Update(c.Request().Context(), actor.ID, id, service.UserInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         model.Role(req.Role),
		Grade:        req.Grade,
		ClassSection: req.ClassSection,
		Password:     req.Password,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "แก้ไขผู้ใช้สำเร็จ",
		"user":    toUserResponse(u),
	})
}

func (h *AdminUserHandler) Delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("รหัสผู้ใช้ไม่ถูกต้อง"))
	}
	if err := h.svc.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ลบผู้ใช้สำเร็จ"})
}
