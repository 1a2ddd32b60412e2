package model

import (
	"time"
)

// ShareLink 分享链接模型.
//
// 创建分享时会把文件字节深拷贝一份（按需加密）到独立的 ObjectKey，
// 因此源文件之后被清除或覆盖不影响已发出的链接.公开兑换以 ShareKey
// 定位，次数上限由 AccessLimit 控制，计数递增通过条件 UPDATE 保证
// 并发下不超卖；令牌路径额外校验所有者且不消耗次数.
type ShareLink struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ShareKey string `gorm:"size:64;uniqueIndex" json:"share_key"`
	Owner    string `gorm:"size:255;index" json:"owner"`
	// 源文件 ID，仅作追溯；链接不依赖源文件存活
	FileID      uint   `gorm:"index" json:"file_id"`
	DisplayName string `gorm:"size:512" json:"display_name"`
	ObjectKey   string `gorm:"size:1024" json:"-"`
	Size        int64  `json:"size"`
	ContentType string `gorm:"size:255" json:"content_type"`
	// 令牌访问路径的凭据，空串表示未签发
	Token string `gorm:"size:64;index" json:"-"`
	// NULL 表示永不过期
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at,omitempty"`
	AccessCount int        `json:"access_count"`
	AccessLimit int        `json:"access_limit"`
	IsPublic    bool       `json:"is_public"`
	IsEncrypted bool       `json:"is_encrypted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Expired 分享链接是否已过期；未设置过期时间视为永不过期.
func (s *ShareLink) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Exhausted 兑换次数是否已用尽.
func (s *ShareLink) Exhausted() bool {
	return s.AccessCount >= s.AccessLimit
}
