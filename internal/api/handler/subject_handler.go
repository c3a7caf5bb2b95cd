package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// SubjectHandler 科目/时间表 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// List 科目列表
// GET /api/v1/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.subjectSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Timetable 周课程表（已算好百分比布局）
// GET /api/v1/subjects/timetable
func (h *SubjectHandler) Timetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.subjectSvc.GetTimetable(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 创建科目
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subjectSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 编辑科目（全字段覆盖）
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subjectSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除科目（不级联清理评估）
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 15001, "科目不存在")
	case errors.Is(err, service.ErrSubjectNotOwner):
		response.Forbidden(c, 15002, "无权操作此科目")
	case errors.Is(err, service.ErrSubjectBadPeriod):
		response.BadRequest(c, 15003, "结束时间必须晚于开始时间")
	default:
		response.InternalError(c)
	}
}
