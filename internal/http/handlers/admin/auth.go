package admin

import (
	"errors"
	"time"

	"github.com/kariakoo/marketplace/internal/http/response"
	"github.com/kariakoo/marketplace/internal/logger"
	"github.com/kariakoo/marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warnw("admin_login_failed", "username", req.Username, "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	logger.Infow("admin_login", "admin_id", admin.ID, "username", admin.Username, "client_ip", c.ClientIP())
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
	})
}

// Logout 管理员登出，使已签发令牌全部失效
func (h *Handler) Logout(c *gin.Context) {
	adminID := currentAdminID(c)
	if adminID == 0 {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}
	if err := h.AuthService.InvalidateTokens(adminID); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	logger.Infow("admin_logout", "admin_id", adminID)
	response.Success(c, nil)
}
