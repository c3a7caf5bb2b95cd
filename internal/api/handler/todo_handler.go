package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// TodoHandler 日待办 HTTP 处理器
type TodoHandler struct {
	todoSvc service.TodoService
}

// NewTodoHandler 创建 TodoHandler
func NewTodoHandler(todoSvc service.TodoService) *TodoHandler {
	return &TodoHandler{todoSvc: todoSvc}
}

// GetDay 获取某日待办
// GET /api/v1/todos?date=2026-08-24
func (h *TodoHandler) GetDay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	result, err := h.todoSvc.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrBadDateKey) {
			response.BadRequest(c, 13001, "date 必须为 yyyy-MM-dd 格式")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 添加待办
// POST /api/v1/todos
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.todoSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Toggle 切换完成状态
// PATCH /api/v1/todos/:id/done
func (h *TodoHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.todoSvc.Toggle(c.Request.Context(), c.Param("id"), userID, req.Done); err != nil {
		h.handleTodoError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除待办
// DELETE /api/v1/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.todoSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleTodoError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TodoHandler) handleTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		response.NotFound(c, 13002, "待办不存在")
	case errors.Is(err, service.ErrTodoNotOwner):
		response.Forbidden(c, 13003, "无权操作此待办")
	default:
		response.InternalError(c)
	}
}
