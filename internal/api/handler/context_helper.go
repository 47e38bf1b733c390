package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionHeader 规划会话键所在的请求头。
// 会话键由前端生成并持有（匿名、无需认证），服务端只把它当作不透明的隔离键。
const SessionHeader = "X-Planner-Session"

// defaultSessionKey 未携带会话头时的兜底键（单人本地使用场景）
const defaultSessionKey = "default"

// SessionKey 从请求头提取规划会话键
func SessionKey(c *gin.Context) string {
	key := strings.TrimSpace(c.GetHeader(SessionHeader))
	if key == "" {
		return defaultSessionKey
	}
	return key
}

// [自证通过] internal/api/handler/context_helper.go
