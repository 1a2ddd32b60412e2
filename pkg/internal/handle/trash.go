package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/types"
)

// TrashFile 把文件移入回收站.
func TrashFile(c *gin.Context) {
	fileAction(c, func(svc *service.TrashService, user string, id uint) error {
		return svc.Trash(c.Request.Context(), user, id)
	})
}

// RestoreFile 从回收站恢复文件.
func RestoreFile(c *gin.Context) {
	fileAction(c, func(svc *service.TrashService, user string, id uint) error {
		return svc.Restore(c.Request.Context(), user, id)
	})
}

// PurgeFile 永久删除文件（字节 + 元数据）.
func PurgeFile(c *gin.Context) {
	fileAction(c, func(svc *service.TrashService, user string, id uint) error {
		return svc.Purge(c.Request.Context(), user, id)
	})
}

// fileAction 回收站单文件操作的公共骨架.
func fileAction(c *gin.Context, action func(svc *service.TrashService, user string, id uint) error) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	if err := action(svc, user, fileID); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TrashActionResponse{Affected: 1})
}

// ListTrash 回收站列表.
func ListTrash(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), user)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EmptyTrash 清空回收站.
func EmptyTrash(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewTrashService(c.Request.Context())

	affected, err := svc.Empty(c.Request.Context(), user)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TrashActionResponse{Affected: affected})
}
