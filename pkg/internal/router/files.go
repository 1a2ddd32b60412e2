package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/handle"
)

// RegisterFilesRoutes 注册文件操作相关路由.
func RegisterFilesRoutes(g *gin.RouterGroup) {
	filesRoutes := g.Group("/files")
	{
		// 上传文件（multipart form）
		filesRoutes.POST("", handle.UploadFile)
		// 以文本内容创建 .txt 文件
		filesRoutes.POST("/text", handle.CreateTextFile)
		// 最近上传
		filesRoutes.GET("/recent", handle.RecentFiles)

		// 单个文件操作
		singleGroup := filesRoutes.Group("/:id")
		{
			singleGroup.GET("/download", handle.DownloadFile) // 下载字节
			singleGroup.PUT("/name", handle.RenameFile)       // 重命名
			singleGroup.POST("/move", handle.MoveFile)        // 移动到目标文件夹
		}
	}
}
