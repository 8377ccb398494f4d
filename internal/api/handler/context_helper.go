package handler

import (
	"github.com/gin-gonic/gin"

	"hireloop/backend/internal/model"
	"hireloop/backend/pkg/apperrors"
	"hireloop/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取并归一化角色。
func MustGetRole(c *gin.Context) (model.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	role, ok := model.ParseRole(s)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return role, true
}

// respondError 将 Service 层业务错误映射为 HTTP 响应
// 错误类别见 pkg/apperrors
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		response.NotFound(c, 20004, err.Error())
	case apperrors.KindForbidden:
		response.Forbidden(c, 10003, err.Error())
	case apperrors.KindConflict:
		response.Conflict(c, 20009, err.Error())
	case apperrors.KindInvalidTransition:
		response.UnprocessableEntity(c, 20022, err.Error())
	case apperrors.KindValidation:
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
