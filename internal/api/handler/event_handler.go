package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// EventHandler 周历事件 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// GetWeek 获取一周事件快照
// GET /api/v1/events/week?ref=2026-08-26
// ref 缺省为今天；返回窗口总是 ref 所在周的周日至周六
func (h *EventHandler) GetWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.eventSvc.GetWeek(c.Request.Context(), userID, c.Query("ref"))
	if err != nil {
		if errors.Is(err, service.ErrBadDateKey) {
			response.BadRequest(c, 12001, "ref 必须为 yyyy-MM-dd 格式")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 创建事件
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.eventSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Delete 删除事件
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 12002, "日程不存在")
		case errors.Is(err, service.ErrEventNotOwner):
			response.Forbidden(c, 12003, "无权操作此日程")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
