package types

// UnlockFolderRequest 解锁受保护文件夹请求.
type UnlockFolderRequest struct {
	Password string `json:"password"`
}

// AccessDecisionResponse 访问闸口决策响应.
type AccessDecisionResponse struct {
	Decision string `json:"decision"` // authorized / password_prompt / wrong_password
}
