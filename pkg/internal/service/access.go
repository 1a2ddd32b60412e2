package service

import (
	"context"
	"fmt"

	"github.com/yeisme/sharevault/pkg/configs"
	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/model"
)

// Decision 访问闸口的授权决策.
type Decision int

const (
	// DecisionAuthorized 允许访问.
	DecisionAuthorized Decision = iota
	// DecisionPasswordPrompt 文件夹受保护且会话未解锁，需要提供口令.
	DecisionPasswordPrompt
	// DecisionWrongPassword 提供的口令校验失败，会话保持锁定.
	DecisionWrongPassword
)

func (d Decision) String() string {
	switch d {
	case DecisionAuthorized:
		return "authorized"
	case DecisionPasswordPrompt:
		return "password_prompt"
	case DecisionWrongPassword:
		return "wrong_password"
	default:
		return "unknown"
	}
}

// AccessService 口令保护文件夹的会话级访问闸口.
//
// 解锁粒度是单个文件夹而非子树：解锁受保护的父目录不会隐式授权
// 其子目录，子目录需独立通过闸口.会话内解锁单向生效，
// 直到 KV 里的标记过期或会话失效.
type AccessService struct{ *VaultService }

func NewAccessService(c context.Context) *AccessService {
	return &AccessService{NewVaultService(c)}
}

// unlockKey 生成 (session, folder) 解锁标记的 KV 键.
func unlockKey(session string, folderID uint) string {
	return fmt.Sprintf("unlock:v1:%s:%d", session, folderID)
}

// Authorize 判定会话对文件夹的访问权.
//
// 未保护的文件夹恒为 Authorized；受保护且会话已解锁同样放行；
// 未解锁且未供口令返回 PasswordPrompt；口令错误返回 WrongPassword
// 且不解锁；口令正确则写入会话解锁标记后放行.
func (s *AccessService) Authorize(ctx context.Context, session, owner string, folderID uint, password string) (Decision, error) {
	folder, err := s.folder(ctx, owner, folderID)
	if err != nil {
		return DecisionPasswordPrompt, err
	}

	if !folder.IsProtected() {
		return DecisionAuthorized, nil
	}

	if s.IsUnlocked(ctx, session, folderID) {
		return DecisionAuthorized, nil
	}

	if password == "" {
		return DecisionPasswordPrompt, nil
	}

	if !crypto.CheckPassword(folder.PasswordHash, password) {
		return DecisionWrongPassword, nil
	}

	ttl := configs.GetConfig().Share.GetUnlockTTL()
	if err := s.kvClient.Set(ctx, unlockKey(session, folderID), []byte("1"), ttl); err != nil {
		return DecisionPasswordPrompt, fmt.Errorf("mark unlock: %w", err)
	}

	return DecisionAuthorized, nil
}

// IsUnlocked 会话是否已解锁该文件夹.
func (s *AccessService) IsUnlocked(ctx context.Context, session string, folderID uint) bool {
	if s.kvClient == nil || session == "" {
		return false
	}

	exists, err := s.kvClient.Exists(ctx, unlockKey(session, folderID))
	if err != nil {
		return false
	}

	return exists
}

// Require 便捷入口：要求会话对文件夹有访问权，否则返回 ErrForbidden.
// 文件操作路径（下载、移动等）用它做前置检查.
func (s *AccessService) Require(ctx context.Context, session, owner string, folderID uint) error {
	if folderID == model.RootFolderID {
		return nil
	}

	decision, err := s.Authorize(ctx, session, owner, folderID, "")
	if err != nil {
		return err
	}

	if decision != DecisionAuthorized {
		return fmt.Errorf("%w: folder %d is locked", ErrForbidden, folderID)
	}

	return nil
}

// folder 按 ID 读取文件夹并校验所有者.
func (s *AccessService) folder(ctx context.Context, owner string, folderID uint) (*model.Folder, error) {
	fs := &FolderService{s.VaultService}

	return fs.Get(ctx, owner, folderID)
}
