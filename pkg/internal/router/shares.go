package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/handle"
)

// RegisterSharesRoutes 注册文件分享相关路由.公开兑换路径 /s/:key 在 Register 中单独绑定.
func RegisterSharesRoutes(g *gin.RouterGroup) {
	sharesRoutes := g.Group("/shares")
	{
		sharesRoutes.POST("", handle.CreateShare)                      // 创建分享链接
		sharesRoutes.GET("", handle.ListShares)                        // 列出自己的分享
		sharesRoutes.DELETE("/:key", handle.RevokeShare)               // 提前作废
		sharesRoutes.GET("/token/:token", handle.ResolveShareByToken)  // 所有者令牌路径，不消耗额度
	}
}
