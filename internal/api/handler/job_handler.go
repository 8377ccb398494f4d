package handler

import (
	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/service"
	"hireloop/backend/pkg/response"
)

// JobHandler 职位模块 HTTP 处理器
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler 创建 JobHandler
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// CreateJob 发布职位（雇主）
// POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.jobSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// ListJobs 职位列表
// GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jobs, total, err := h.jobSvc.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, jobs, total, req.GetPage(), req.GetPageSize())
}

// ListMyJobs 我发布的职位（雇主）
// GET /api/v1/jobs/mine
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.JobListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	jobs, total, err := h.jobSvc.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, jobs, total, req.GetPage(), req.GetPageSize())
}

// GetJob 查看职位
// GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	result, err := h.jobSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateJob 更新职位（发布者或管理员）
// PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.jobSvc.Update(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteJob 删除职位（发布者或管理员；有进行中委托时拒绝）
// DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.jobSvc.Delete(c.Request.Context(), c.Param("id"), userID, role); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}
