package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/planner"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/response"
)

// AssessmentHandler 考试/作业 HTTP 处理器
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// ListUpcoming 获取 7 天窗口内的评估
// GET /api/v1/assessments/upcoming?base=2026-08-24&filter=pending
// base 缺省为今天；filter ∈ all | exam | assignment | pending，缺省 all
func (h *AssessmentHandler) ListUpcoming(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	filter := planner.Filter(c.DefaultQuery("filter", string(planner.FilterAll)))

	result, err := h.assessmentSvc.GetUpcoming(c.Request.Context(), userID, c.Query("base"), filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadDateKey):
			response.BadRequest(c, 14001, "base 必须为 yyyy-MM-dd 格式")
		case errors.Is(err, service.ErrAssessmentBadFilter):
			response.BadRequest(c, 14002, "非法的过滤条件")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Create 创建评估
// POST /api/v1/assessments
func (h *AssessmentHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assessmentSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 编辑评估（全字段覆盖）
// PUT /api/v1/assessments/:id
func (h *AssessmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assessmentSvc.Update(c.Request.Context(), c.Param("id"), &req, userID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除评估
// DELETE /api/v1/assessments/:id
func (h *AssessmentHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assessmentSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		response.NotFound(c, 14003, "评估记录不存在")
	case errors.Is(err, service.ErrAssessmentNotOwner):
		response.Forbidden(c, 14004, "无权操作此评估记录")
	case errors.Is(err, service.ErrAssessmentBadStatus):
		response.BadRequest(c, 14005, "状态与类型不匹配")
	default:
		response.InternalError(c)
	}
}
