package handler

import (
	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/service"
	"hireloop/backend/pkg/response"
)

// ContactHandler 人脉模块 HTTP 处理器
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler 创建 ContactHandler
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// RequestContact 雇主发起人脉请求（重复请求幂等）
// POST /api/v1/contacts
func (h *ContactHandler) RequestContact(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.contactSvc.Request(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// AcceptContact 猎头接受人脉请求
// POST /api/v1/contacts/:id/accept
func (h *ContactHandler) AcceptContact(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.contactSvc.Accept(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// ListContacts 我的人脉列表
// GET /api/v1/contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	contacts, total, err := h.contactSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, contacts, total, req.GetPage(), req.GetPageSize())
}
