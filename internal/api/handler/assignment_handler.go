package handler

import (
	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/service"
	"hireloop/backend/pkg/response"
)

// AssignmentHandler 委托模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// HireRecruiter 雇主发起招募委托
// POST /api/v1/assignments
func (h *AssignmentHandler) HireRecruiter(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.HireRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.HireRecruiter(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// Respond 猎头响应委托（accept / decline）
// POST /api/v1/assignments/:id/respond
func (h *AssignmentHandler) Respond(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RespondAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "decision 必须为 accept 或 decline")
		return
	}

	result, err := h.assignmentSvc.Respond(c.Request.Context(), userID, c.Param("id"), req.Decision)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// Complete 雇主确认委托完成
// POST /api/v1/assignments/:id/complete
func (h *AssignmentHandler) Complete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.Complete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAssignments 委托列表（按调用者角色限定范围）
// GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignments, total, err := h.assignmentSvc.List(c.Request.Context(), userID, role, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, assignments, total, req.GetPage(), req.GetPageSize())
}

// GetAssignment 查看委托（相关方或管理员）
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.GetByID(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}
