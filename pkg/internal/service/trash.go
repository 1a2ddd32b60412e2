package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/types"
	nlog "github.com/yeisme/sharevault/pkg/log"
)

// TrashService 文件软删除状态机：Active → Trashed → {Restored | Purged}.
type TrashService struct{ *FileService }

func NewTrashService(c context.Context) *TrashService {
	return &TrashService{NewFileService(c)}
}

// Trash 把文件移入回收站.重复移入不报错，只刷新 deleted_at
// （没有观察者依赖严格幂等，刷新语义对用户更直观）.
func (t *TrashService) Trash(ctx context.Context, owner string, fileID uint) error {
	file, err := t.Get(ctx, owner, fileID)
	if err != nil {
		return err
	}

	now := time.Now()

	return t.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": now,
		}).Error; err != nil {
			return fmt.Errorf("trash file: %w", err)
		}

		return touchFolder(tx, owner, file.FolderID)
	})
}

// Restore 把回收站中的文件恢复为活跃状态.恢复未删除的文件
// 返回 ErrInvalidState（从严实现）.
func (t *TrashService) Restore(ctx context.Context, owner string, fileID uint) error {
	file, err := t.Get(ctx, owner, fileID)
	if err != nil {
		return err
	}

	if !file.IsDeleted {
		return fmt.Errorf("%w: file %d is not trashed", ErrInvalidState, fileID)
	}

	return t.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Updates(map[string]any{
			"is_deleted": false,
			"deleted_at": nil,
		}).Error; err != nil {
			return fmt.Errorf("restore file: %w", err)
		}

		return touchFolder(tx, owner, file.FolderID)
	})
}

// Purge 永久删除：尽力移除底层字节（已缺失不算错误），再硬删元数据行.
// 之后对该 ID 的任何操作都会得到 NotFound.
func (t *TrashService) Purge(ctx context.Context, owner string, fileID uint) error {
	file, err := t.Get(ctx, owner, fileID)
	if err != nil {
		return err
	}

	if err := t.blobClient.Remove(ctx, file.ObjectKey); err != nil {
		nlog.Logger().Warn().Err(err).Str("key", file.ObjectKey).Msg("purge: remove blob failed")
	}

	return t.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.File{}, file.ID).Error; err != nil {
			return fmt.Errorf("purge file: %w", err)
		}

		return touchFolder(tx, owner, file.FolderID)
	})
}

// List 列出回收站内容，按删除时间倒序.
func (t *TrashService) List(ctx context.Context, owner string) (types.TrashListResponse, error) {
	var rows []model.File
	if err := t.dbClient.WithContext(ctx).
		Where("owner = ? AND is_deleted = ?", owner, true).
		Order("deleted_at DESC").
		Find(&rows).Error; err != nil {
		return types.TrashListResponse{}, fmt.Errorf("list trash: %w", err)
	}

	resp := types.TrashListResponse{Total: len(rows), Files: make([]types.TrashEntry, 0, len(rows))}
	for _, r := range rows {
		entry := types.TrashEntry{ID: r.ID, Name: r.Name, Size: r.Size}
		if r.DeletedAt != nil {
			entry.DeletedAt = r.DeletedAt.UTC().Format(time.RFC3339)
		}

		resp.Files = append(resp.Files, entry)
	}

	return resp, nil
}

// Empty 清空用户回收站，等价于对每个已删除文件执行 Purge.
func (t *TrashService) Empty(ctx context.Context, owner string) (int, error) {
	var rows []model.File
	if err := t.dbClient.WithContext(ctx).
		Where("owner = ? AND is_deleted = ?", owner, true).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("list trash: %w", err)
	}

	for _, r := range rows {
		if err := t.blobClient.Remove(ctx, r.ObjectKey); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", r.ObjectKey).Msg("empty trash: remove blob failed")
		}
	}

	tx := t.dbClient.WithContext(ctx).
		Where("owner = ? AND is_deleted = ?", owner, true).
		Delete(&model.File{})
	if tx.Error != nil {
		return 0, fmt.Errorf("empty trash: %w", tx.Error)
	}

	return int(tx.RowsAffected), nil
}

// AutoClean 清理所有用户中删除时间早于 before 的回收站条目，
// 供后台任务调用.返回清理数量.
func (t *TrashService) AutoClean(ctx context.Context, before time.Time) (int, error) {
	var rows []model.File
	if err := t.dbClient.WithContext(ctx).
		Where("is_deleted = ? AND deleted_at < ?", true, before).
		Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("list expired trash: %w", err)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)

		if err := t.blobClient.Remove(ctx, r.ObjectKey); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", r.ObjectKey).Msg("autoclean: remove blob failed")
		}
	}

	tx := t.dbClient.WithContext(ctx).Where("id IN ?", ids).Delete(&model.File{})
	if tx.Error != nil {
		return 0, fmt.Errorf("autoclean trash: %w", tx.Error)
	}

	return int(tx.RowsAffected), nil
}
