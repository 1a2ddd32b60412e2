// Package types 定义传输层请求/响应结构.
package types

// CreateFolderRequest 创建文件夹请求.
type CreateFolderRequest struct {
	Name string `binding:"required" json:"name"` // 文件夹名称
	// 父文件夹 ID，0 表示根目录
	ParentID uint `json:"parent_id,omitempty"`
}

// FolderInfo 文件夹信息.
type FolderInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ParentID    uint   `json:"parent_id"`
	IsProtected bool   `json:"is_protected"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RenameFolderRequest 重命名文件夹请求.
type RenameFolderRequest struct {
	NewName string `binding:"required" json:"new_name"`
}

// DeleteFolderRequest 删除文件夹请求，两步确认：Confirmed 为 false 时拒绝执行.
type DeleteFolderRequest struct {
	Confirmed bool `json:"confirmed"`
}

// DeleteFolderResponse 删除文件夹响应.
type DeleteFolderResponse struct {
	DeletedFolders int `json:"deleted_folders"` // 连同子孙一起删除的文件夹数量
	DetachedFiles  int `json:"detached_files"`  // 被移回根目录的文件数量
}

// SetFolderPasswordRequest 设置文件夹口令请求；空口令表示移除保护.
type SetFolderPasswordRequest struct {
	Password string `json:"password"`
}

// ListChildrenResponse 目录列表响应：子文件夹按名称排序，文件按上传时间倒序.
type ListChildrenResponse struct {
	Folders []FolderInfo `json:"folders"`
	Files   []FileInfo   `json:"files"`
}
