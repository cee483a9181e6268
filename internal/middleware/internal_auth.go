package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"mall-commission-api/internal/config"
	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/utils"
)

// InternalAuth 内部调用鉴权。订单侧与管理端走同一个共享令牌，
// 会话签发不在本服务职责内。
func InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Internal-Token")
		expect := config.C.Security.InternalToken
		if expect == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expect)) != 1 {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeUnauthorized))
			c.Abort()
			return
		}
		c.Next()
	}
}
