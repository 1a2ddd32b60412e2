package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/types"
)

// CreateFolder 创建文件夹.
func CreateFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	folder, err := svc.Create(c.Request.Context(), user, req.ParentID, req.Name)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": folder.ID, "name": folder.Name, "parent_id": folder.ParentID})
}

// ListChildren 列出文件夹直接子级；id 为 0 表示根目录.
// 受口令保护的文件夹要求会话已解锁，可随请求附带 password 参数解锁.
func ListChildren(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	folderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if !authorizeFolder(c, user, folderID, c.Query("password")) {
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.ListChildren(c.Request.Context(), user, folderID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// authorizeFolder 通过访问闸口检查文件夹访问权，未放行时直接写响应.
// 根目录无保护概念，恒放行.
func authorizeFolder(c *gin.Context, user string, folderID uint, password string) bool {
	if folderID == 0 {
		return true
	}

	gate := service.NewAccessService(c.Request.Context())

	decision, err := gate.Authorize(c.Request.Context(), checkSession(c), user, folderID, password)
	if err != nil {
		renderError(c, err)
		return false
	}

	if decision != service.DecisionAuthorized {
		c.JSON(http.StatusUnauthorized, types.AccessDecisionResponse{Decision: decision.String()})
		return false
	}

	return true
}

// RenameFolder 重命名文件夹.
func RenameFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	folderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.RenameFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	folder, err := svc.Rename(c.Request.Context(), user, folderID, req.NewName)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": folder.ID, "name": folder.Name})
}

// DeleteFolder 删除文件夹（需显式确认），级联子孙并把文件移回根目录.
func DeleteFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	folderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.DeleteFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	resp, err := svc.Delete(c.Request.Context(), user, folderID, req.Confirmed)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetFolderPassword 设置或移除文件夹口令（空口令移除保护）.
func SetFolderPassword(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	folderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.SetFolderPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFolderService(c.Request.Context())

	if err := svc.SetPassword(c.Request.Context(), user, folderID, req.Password, checkSession(c)); err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"protected": req.Password != ""})
}

// UnlockFolder 用口令解锁受保护的文件夹，返回闸口决策.
func UnlockFolder(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	folderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.UnlockFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gate := service.NewAccessService(c.Request.Context())

	decision, err := gate.Authorize(c.Request.Context(), checkSession(c), user, folderID, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	status := http.StatusOK
	if decision != service.DecisionAuthorized {
		status = http.StatusUnauthorized
	}

	c.JSON(status, types.AccessDecisionResponse{Decision: decision.String()})
}
