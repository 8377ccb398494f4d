package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/service"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReport 导出委托与推荐报表
// GET /api/v1/export/report
func (h *ExportHandler) ExportReport(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	f, filename, err := h.exportSvc.ExportReport(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		// 响应头已发出，只能中断连接
		c.Abort()
	}
}
