package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/handle"
)

// RegisterTrashRoutes 注册回收站相关路由.
func RegisterTrashRoutes(g *gin.RouterGroup) {
	trashRoutes := g.Group("/trash")
	{
		trashRoutes.GET("", handle.ListTrash)     // 回收站列表
		trashRoutes.DELETE("", handle.EmptyTrash) // 清空回收站

		// 单个文件操作
		fileGroup := trashRoutes.Group("/:id")
		{
			fileGroup.POST("", handle.TrashFile)           // 移入回收站
			fileGroup.POST("/restore", handle.RestoreFile) // 恢复
			fileGroup.DELETE("", handle.PurgeFile)         // 永久删除
		}
	}
}
