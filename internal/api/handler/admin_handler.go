package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/service"
	"hireloop/backend/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器（旧表迁移）
type AdminHandler struct {
	migrationSvc service.MigrationService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(migrationSvc service.MigrationService) *AdminHandler {
	return &AdminHandler{migrationSvc: migrationSvc}
}

// PreviewMigration 查看旧表待迁移规模
// GET /api/v1/admin/migrations/job-recruiters
func (h *AdminHandler) PreviewMigration(c *gin.Context) {
	count, err := h.migrationSvc.Preview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, gin.H{"legacy_total": count})
}

// RunMigration 执行旧表迁移（可重复执行，已迁移记录跳过）
// POST /api/v1/admin/migrations/job-recruiters?batch_size=200
func (h *AdminHandler) RunMigration(c *gin.Context) {
	batchSize := 200
	if v := c.Query("batch_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			response.BadRequest(c, 10001, "batch_size 必须为 1-1000 的整数")
			return
		}
		batchSize = n
	}

	summary, err := h.migrationSvc.Run(c.Request.Context(), batchSize)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, summary)
}
