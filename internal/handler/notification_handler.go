package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type NotificationResponse struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

type MarkReadRequest struct {
	IDs []uint64 `json:"ids"`
	All bool     `json:"all"`
}

func (h *NotificationHandler) List(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, unread, err := h.svc.List(c.Request().Context(), actor.ID, limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("กรุณาเข้าสู่ระบบ"))
	}
	var req MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("ข้อมูลไม่ถูกต้อง"))
	}

	if req.All {
		if err := h.svc.MarkAllRead(c.Request().Context(), actor.ID); err != nil {
			return writeServiceError(c, err)
		}
	} else {
		if len(req.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("กรุณาระบุรายการแจ้งเตือน"))
		}
		if err := h.svc.MarkRead(c.Request().Context(), actor.ID, req.IDs); err != nil {
			return writeServiceError(c, err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "อัปเดตการแจ้งเตือนสำเร็จ"})
}
