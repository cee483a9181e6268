package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/logger"
	"mall-commission-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if logger.API != nil {
					logger.API.Errorf("panic recovered: %s %s: %v\n%s",
						c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				}
				c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeSystemError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
