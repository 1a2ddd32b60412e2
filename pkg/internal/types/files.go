package types

// FileInfo 文件信息.
type FileInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	FolderID    uint   `json:"folder_id"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
	UpdatedAt   string `json:"updated_at"`
}

// RenameFileRequest 重命名文件请求.新名字省略扩展名时沿用原扩展名.
type RenameFileRequest struct {
	NewName string `binding:"required" json:"new_name"`
}

// MoveFileRequest 移动文件请求，FolderID 为 0 表示移动到根目录.
type MoveFileRequest struct {
	FolderID uint `json:"folder_id"`
}

// CreateTextFileRequest 创建文本文件请求，最终文件名强制 .txt 扩展.
type CreateTextFileRequest struct {
	Name     string `binding:"required" json:"name"`
	Content  string `json:"content"`
	FolderID uint   `json:"folder_id,omitempty"`
}

// RecentFilesResponse 最近文件列表响应.
type RecentFilesResponse struct {
	Files []FileInfo `json:"files"`
}
