// Package model 定义文件夹、文件与分享链接的数据库模型.
package model

import (
	"time"
)

// RootFolderID 根目录哨兵值：ParentID/FolderID 为 0 表示挂在用户根下.
// 用哨兵而不是 NULL，是为了让 (owner, parent_id, name) 的唯一索引
// 在根目录一层同样生效.
const RootFolderID uint = 0

// Folder 文件夹模型.同一所有者同一父目录下名字唯一，由数据库唯一索引保证.
type Folder struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Owner string `gorm:"size:255;index:idx_owner_parent_name,unique;index" json:"owner"`
	// 父文件夹 ID，0 表示根目录
	ParentID uint   `gorm:"index:idx_owner_parent_name,unique;index" json:"parent_id"`
	Name     string `gorm:"size:255;index:idx_owner_parent_name,unique" json:"name"`
	// bcrypt 哈希，空串表示不受口令保护
	PasswordHash string    `gorm:"size:128" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`
}

// IsProtected 文件夹是否受口令保护.
func (f *Folder) IsProtected() bool {
	return f.PasswordHash != ""
}
