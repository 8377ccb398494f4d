package handler

import (
	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/service"
	"hireloop/backend/pkg/response"
)

// SubmissionHandler 推荐模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// SubmitCandidate 猎头推荐候选人
// POST /api/v1/submissions
func (h *SubmissionHandler) SubmitCandidate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.submissionSvc.SubmitCandidate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// ListSubmissions 推荐列表（按调用者角色限定范围）
// GET /api/v1/submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submissions, total, err := h.submissionSvc.List(c.Request.Context(), userID, role, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, submissions, total, req.GetPage(), req.GetPageSize())
}

// GetSubmission 查看推荐（相关方或管理员）
// GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.GetByID(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
