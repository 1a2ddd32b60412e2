package model

import (
	"time"
)

// File 文件元数据模型.字节内容存放在 blob 存储，以 ObjectKey 定位.
//
// 软删除使用显式的 IsDeleted/DeletedAt 而不是 gorm.DeletedAt：
// 回收站需要列出、恢复和彻底删除已删除的行，显式字段让这些查询
// 不必到处 Unscoped.
type File struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Owner string `gorm:"size:255;index" json:"owner"`
	// 所在文件夹 ID，0 表示根目录
	FolderID    uint   `gorm:"index" json:"folder_id"`
	Name        string `gorm:"size:512;index" json:"name"`
	ObjectKey   string `gorm:"size:1024;index" json:"-"`
	Size        int64  `json:"size"`
	ContentType string `gorm:"size:255" json:"content_type"`
	IsDeleted   bool   `gorm:"index" json:"is_deleted"`
	// 进入回收站的时间，非删除状态为 NULL
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `gorm:"index" json:"updated_at"`
}
