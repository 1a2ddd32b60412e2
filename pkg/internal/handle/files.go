package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/types"
)

// UploadFile 上传文件（multipart form，file 字段），folder_id 为 0 或省略时
// 上传到根目录.目标是受保护文件夹时要求会话已解锁.
func UploadFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	var folderID uint
	if v := c.PostForm("folder_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder_id"})
			return
		}

		folderID = uint(parsed)
	}

	if !authorizeFolder(c, user, folderID, "") {
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Upload(c.Request.Context(), user, folderID, fh.Filename, src, fh.Size, contentType)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": file.ID, "name": file.Name, "folder_id": file.FolderID, "size": file.Size})
}

// DownloadFile 下载文件字节.所在文件夹受保护时要求会话已解锁.
func DownloadFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	meta, err := svc.Get(c.Request.Context(), user, fileID)
	if err != nil {
		renderError(c, err)
		return
	}

	if !authorizeFolder(c, user, meta.FolderID, "") {
		return
	}

	rc, meta, err := svc.Download(c.Request.Context(), user, fileID)
	if err != nil {
		renderError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+meta.Name+`"`)
	c.DataFromReader(http.StatusOK, meta.Size, meta.ContentType, rc, nil)
}

// RenameFile 重命名文件.
func RenameFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.RenameFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Rename(c.Request.Context(), user, fileID, req.NewName)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": file.ID, "name": file.Name})
}

// MoveFile 移动文件到目标文件夹.目标受保护时要求会话已解锁.
func MoveFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fileID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.MoveFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !authorizeFolder(c, user, req.FolderID, "") {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.Move(c.Request.Context(), user, fileID, req.FolderID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": file.ID, "folder_id": file.FolderID})
}

// CreateTextFile 以文本内容创建 .txt 文件.
func CreateTextFile(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	var req types.CreateTextFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !authorizeFolder(c, user, req.FolderID, "") {
		return
	}

	svc := service.NewFileService(c.Request.Context())

	file, err := svc.CreateTextFile(c.Request.Context(), user, req.FolderID, req.Name, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": file.ID, "name": file.Name})
}

// RecentFiles 最近上传的文件.
func RecentFiles(c *gin.Context) {
	user, err := checkUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	svc := service.NewFileService(c.Request.Context())

	resp, err := svc.Recent(c.Request.Context(), user, limit)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
