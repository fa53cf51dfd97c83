package admin

import (
	"strconv"
	"time"

	handlershared "github.com/kariakoo/marketplace/internal/http/handlers/shared"
	"github.com/kariakoo/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func parsePathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// parseTime 解析 RFC3339 时间字符串
func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
