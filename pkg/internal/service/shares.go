package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/storage/blob"
	"github.com/yeisme/sharevault/pkg/internal/types"
	nlog "github.com/yeisme/sharevault/pkg/log"
)

const (
	// defaultShareTTL 临时分享链接的有效期.
	defaultShareTTL = 10 * time.Minute
	// defaultAccessLimit 默认兑换次数上限.
	defaultAccessLimit = 5
	// shareKeyRetries 分享键冲突时的重试次数；128 位随机键碰撞
	// 概率可忽略，重试只是兜底.
	shareKeyRetries = 3
)

// ShareService 分享链接的签发、校验与消费计数.
type ShareService struct{ *FileService }

func NewShareService(c context.Context) *ShareService {
	return &ShareService{NewFileService(c)}
}

// Create 为文件签发分享链接.
//
// 源文件字节在创建时深拷贝（按需加密）到独立对象键，链接生命周期
// 自此与源文件无关：源文件之后被清除不会使已发出的链接失效.
// 返回的 token 用于所有者令牌路径，只在创建时返回一次.
func (s *ShareService) Create(ctx context.Context, owner string, fileID uint, accessLimit int) (*model.ShareLink, string, error) {
	file, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, "", err
	}

	if file.IsDeleted {
		return nil, "", fmt.Errorf("%w: file %d is trashed", ErrNotFound, fileID)
	}

	if accessLimit <= 0 {
		accessLimit = defaultAccessLimit
	}

	src, err := s.blobClient.Get(ctx, file.ObjectKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: file %d bytes missing", ErrNotFound, fileID)
		}

		return nil, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	isEncrypted := false
	if s.cipher != nil {
		data, err = s.cipher.Encrypt(data)
		if err != nil {
			return nil, "", err
		}

		isEncrypted = true
	}

	objectKey := "shares/" + newObjectKey(owner, file.Name)
	if err := s.blobClient.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), file.ContentType); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(defaultShareTTL)

	link := &model.ShareLink{
		Owner:       owner,
		FileID:      file.ID,
		DisplayName: file.Name,
		ObjectKey:   objectKey,
		Size:        file.Size,
		ContentType: file.ContentType,
		Token:       token,
		ExpiresAt:   &expiresAt,
		AccessLimit: accessLimit,
		IsPublic:    true,
		IsEncrypted: isEncrypted,
	}

	// 键冲突时换新键重试
	for attempt := 0; ; attempt++ {
		link.ShareKey = uuid.NewString()

		err = s.dbClient.WithContext(ctx).Create(link).Error
		if err == nil {
			break
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < shareKeyRetries {
			continue
		}

		_ = s.blobClient.Remove(ctx, objectKey)

		return nil, "", fmt.Errorf("create share link: %w", err)
	}

	return link, token, nil
}

// ResolvePublic 兑换公开分享：NotFound → Expired → 原子扣减次数 → 出流.
//
// 次数扣减是单条条件 UPDATE（access_count < access_limit 作守卫），
// 并发兑换同一链接时合计成功次数不可能超过上限.
func (s *ShareService) ResolvePublic(ctx context.Context, shareKey string) ([]byte, *model.ShareLink, error) {
	var link model.ShareLink
	if err := s.dbClient.WithContext(ctx).
		Where("share_key = ? AND is_public = ?", shareKey, true).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: share %s", ErrNotFound, shareKey)
		}

		return nil, nil, fmt.Errorf("get share link: %w", err)
	}

	if link.Expired(time.Now()) {
		return nil, nil, fmt.Errorf("%w: share %s", ErrExpired, shareKey)
	}

	tx := s.dbClient.WithContext(ctx).Model(&model.ShareLink{}).
		Where("share_key = ? AND access_count < access_limit", shareKey).
		Update("access_count", gorm.Expr("access_count + 1"))
	if tx.Error != nil {
		return nil, nil, fmt.Errorf("consume share link: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return nil, nil, fmt.Errorf("%w: share %s", ErrLimitExceeded, shareKey)
	}

	link.AccessCount++

	data, err := s.open(ctx, &link)
	if err != nil {
		return nil, nil, err
	}

	return data, &link, nil
}

// ResolveByToken 所有者令牌路径：令牌本身不足以放行，还要重查
// 所有者身份；过期规则同公开路径；不消耗兑换次数.
func (s *ShareService) ResolveByToken(ctx context.Context, token, requester string) ([]byte, *model.ShareLink, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: token is required", ErrInvalidArgument)
	}

	var link model.ShareLink
	if err := s.dbClient.WithContext(ctx).
		Where("token = ?", token).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: token", ErrNotFound)
		}

		return nil, nil, fmt.Errorf("get share link: %w", err)
	}

	if link.Owner != requester {
		return nil, nil, fmt.Errorf("%w: share %s", ErrForbidden, link.ShareKey)
	}

	if link.Expired(time.Now()) {
		return nil, nil, fmt.Errorf("%w: share %s", ErrExpired, link.ShareKey)
	}

	data, err := s.open(ctx, &link)
	if err != nil {
		return nil, nil, err
	}

	return data, &link, nil
}

// open 读出并按需解密分享副本的字节.
func (s *ShareService) open(ctx context.Context, link *model.ShareLink) ([]byte, error) {
	rc, err := s.blobClient.Get(ctx, link.ObjectKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, fmt.Errorf("%w: share %s bytes missing", ErrNotFound, link.ShareKey)
		}

		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if link.IsEncrypted {
		if s.cipher == nil {
			return nil, fmt.Errorf("decrypt share %s: no cipher configured", link.ShareKey)
		}

		data, err = s.cipher.Decrypt(data)
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}

// Revoke 所有者提前作废分享链接：删除行并尽力清掉字节副本.
func (s *ShareService) Revoke(ctx context.Context, owner, shareKey string) error {
	var link model.ShareLink
	if err := s.dbClient.WithContext(ctx).
		Where("share_key = ?", shareKey).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: share %s", ErrNotFound, shareKey)
		}

		return fmt.Errorf("get share link: %w", err)
	}

	if link.Owner != owner {
		return fmt.Errorf("%w: share %s", ErrForbidden, shareKey)
	}

	if err := s.blobClient.Remove(ctx, link.ObjectKey); err != nil {
		nlog.Logger().Warn().Err(err).Str("key", link.ObjectKey).Msg("revoke: remove blob failed")
	}

	if err := s.dbClient.WithContext(ctx).Delete(&model.ShareLink{}, link.ID).Error; err != nil {
		return fmt.Errorf("revoke share link: %w", err)
	}

	return nil
}

// List 列出用户的分享链接，按创建时间倒序.
func (s *ShareService) List(ctx context.Context, owner string) (types.ShareListResponse, error) {
	var rows []model.ShareLink
	if err := s.dbClient.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return types.ShareListResponse{}, fmt.Errorf("list share links: %w", err)
	}

	resp := types.ShareListResponse{Shares: make([]types.ShareInfo, 0, len(rows))}
	for i := range rows {
		resp.Shares = append(resp.Shares, ShareInfo(&rows[i]))
	}

	return resp, nil
}

// SweepExpired 清理已过期的分享链接及其字节副本，供后台任务调用.
// 过期本身是逻辑时间判断，这里只是回收存储的内务优化.
func (s *ShareService) SweepExpired(ctx context.Context) (int, error) {
	var rows []model.ShareLink
	if err := s.dbClient.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("list expired shares: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)

		if err := s.blobClient.Remove(ctx, r.ObjectKey); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", r.ObjectKey).Msg("sweep: remove blob failed")
		}
	}

	tx := s.dbClient.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ShareLink{})
	if tx.Error != nil {
		return 0, fmt.Errorf("sweep expired shares: %w", tx.Error)
	}

	return int(tx.RowsAffected), nil
}

// ShareInfo 组装对外的分享信息.
func ShareInfo(l *model.ShareLink) types.ShareInfo {
	info := types.ShareInfo{
		ShareKey:    l.ShareKey,
		DisplayName: l.DisplayName,
		Size:        l.Size,
		AccessCount: l.AccessCount,
		AccessLimit: l.AccessLimit,
		IsEncrypted: l.IsEncrypted,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.ExpiresAt != nil {
		info.ExpiresAt = l.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return info
}
