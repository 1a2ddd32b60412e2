package types

// TrashEntry 回收站条目.
type TrashEntry struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	DeletedAt string `json:"deleted_at"`
}

// TrashListResponse 回收站列表响应，按删除时间倒序.
type TrashListResponse struct {
	Total int          `json:"total"`
	Files []TrashEntry `json:"files"`
}

// TrashActionResponse 通用动作响应.
type TrashActionResponse struct {
	Affected int `json:"affected"`
}
