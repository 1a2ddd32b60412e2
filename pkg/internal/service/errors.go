package service

import (
	"errors"
)

// 核心错误分类.所有校验与授权失败以这些哨兵错误（或其包装）返回给
// 调用方，由 handle 层统一映射为 HTTP 状态；NotFound 与 Forbidden
// 在对外呈现时同样渲染为 404，避免跨用户的存在性泄露.
var (
	// ErrNotFound 实体不存在，或不属于请求者（两者对外不可区分）.
	ErrNotFound = errors.New("not found")
	// ErrForbidden 实体存在但请求者无权操作.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateName 同一所有者同一父目录下名字已存在.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidState 操作与当前生命周期状态不符，例如恢复未删除的文件.
	ErrInvalidState = errors.New("invalid state")
	// ErrWrongPassword 文件夹口令校验失败.
	ErrWrongPassword = errors.New("wrong password")
	// ErrExpired 分享链接已过期.
	ErrExpired = errors.New("share link expired")
	// ErrLimitExceeded 分享链接兑换次数已用尽.
	ErrLimitExceeded = errors.New("access limit exceeded")
	// ErrStorageUnavailable 底层字节存储不可达，调用方可在传输层退避重试.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidArgument 请求参数不合法.
	ErrInvalidArgument = errors.New("invalid argument")
)
