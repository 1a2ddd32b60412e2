package types

// CreateShareRequest 创建分享请求.
type CreateShareRequest struct {
	FileID uint `binding:"required" json:"file_id"`
	// 兑换次数上限，0 使用默认值
	AccessLimit int `json:"access_limit,omitempty"`
}

// ShareInfo 分享链接信息.
type ShareInfo struct {
	ShareKey    string `json:"share_key"`
	DisplayName string `json:"display_name"`
	Size        int64  `json:"size"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	AccessCount int    `json:"access_count"`
	AccessLimit int    `json:"access_limit"`
	IsEncrypted bool   `json:"is_encrypted"`
	CreatedAt   string `json:"created_at"`
}

// CreateShareResponse 创建分享响应；Token 只在创建时返回一次.
type CreateShareResponse struct {
	Share ShareInfo `json:"share"`
	Token string    `json:"token"`
}

// ShareListResponse 用户分享列表响应.
type ShareListResponse struct {
	Shares []ShareInfo `json:"shares"`
}
