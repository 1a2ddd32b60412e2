package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/handle"
)

// RegisterFoldersRoutes 注册文件夹相关路由.
func RegisterFoldersRoutes(g *gin.RouterGroup) {
	foldersRoutes := g.Group("/folders")
	{
		// 创建文件夹
		foldersRoutes.POST("", handle.CreateFolder)

		// 单个文件夹操作
		singleGroup := foldersRoutes.Group("/:id")
		{
			singleGroup.GET("/children", handle.ListChildren)       // 列出直接子项
			singleGroup.PUT("/name", handle.RenameFolder)           // 重命名
			singleGroup.DELETE("", handle.DeleteFolder)             // 级联删除（需确认）
			singleGroup.PUT("/password", handle.SetFolderPassword)  // 设置/移除口令
			singleGroup.POST("/unlock", handle.UnlockFolder)        // 会话解锁
		}
	}
}
