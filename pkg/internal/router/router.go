// Package router 管理路由配置，负责将路径绑定到 pkg/internal/handle 提供的处理器.
package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/handle"
)

// Register 将所有业务路由绑定到 gin 引擎.
//
// API 路由统一挂在 /api/v1 下并启用 gzip；公开分享兑换路径 /s/:key
// 单独挂在根路径，便于直接作为短链接分发.
func Register(engine *gin.Engine) {
	api := engine.Group("/api/v1", gzip.Gzip(gzip.DefaultCompression))
	{
		RegisterFoldersRoutes(api)
		RegisterFilesRoutes(api)
		RegisterTrashRoutes(api)
		RegisterSharesRoutes(api)
		RegisterHealthCheckRoute(api)
		RegisterSchedulerRoutes(api)
	}

	// 公开兑换路径，无需身份
	engine.GET("/s/:key", handle.ResolvePublicShare)
}
