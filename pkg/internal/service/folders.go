package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/types"
)

// FolderService 管理文件夹树：嵌套、同级命名唯一、口令保护状态.
type FolderService struct{ *VaultService }

func NewFolderService(c context.Context) *FolderService {
	return &FolderService{NewVaultService(c)}
}

// Create 在 parentID 下创建文件夹.同级重名由数据库唯一索引裁决，
// 并发创建同名文件夹时恰好一个成功，失败方得到 ErrDuplicateName.
func (s *FolderService) Create(ctx context.Context, owner string, parentID uint, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if owner == "" || name == "" {
		return nil, fmt.Errorf("%w: owner and name are required", ErrInvalidArgument)
	}

	if parentID != model.RootFolderID {
		if _, err := s.getOwned(ctx, owner, parentID); err != nil {
			return nil, err
		}
	}

	folder := &model.Folder{
		Owner:    owner,
		ParentID: parentID,
		Name:     name,
	}

	if err := s.dbClient.WithContext(ctx).Create(folder).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: folder %q", ErrDuplicateName, name)
		}

		return nil, fmt.Errorf("create folder: %w", err)
	}

	return folder, nil
}

// Get 按 ID 获取文件夹；不存在返回 ErrNotFound，所有者不符返回 ErrForbidden.
func (s *FolderService) Get(ctx context.Context, owner string, folderID uint) (*model.Folder, error) {
	var folder model.Folder
	if err := s.dbClient.WithContext(ctx).First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: folder %d", ErrNotFound, folderID)
		}

		return nil, fmt.Errorf("get folder: %w", err)
	}

	if folder.Owner != owner {
		return nil, fmt.Errorf("%w: folder %d", ErrForbidden, folderID)
	}

	return &folder, nil
}

// getOwned 按 (owner, id) 解析文件夹.存在性与归属在这里合并为
// 一个 ErrNotFound，父目录/目标目录的解析路径不向外泄露他人
// 文件夹是否存在.
func (s *FolderService) getOwned(ctx context.Context, owner string, folderID uint) (*model.Folder, error) {
	var folder model.Folder
	if err := s.dbClient.WithContext(ctx).
		Where("id = ? AND owner = ?", folderID, owner).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: folder %d", ErrNotFound, folderID)
		}

		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Rename 重命名文件夹，同级唯一性规则同创建（排除自身）.
func (s *FolderService) Rename(ctx context.Context, owner string, folderID uint, newName string) (*model.Folder, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: new name is required", ErrInvalidArgument)
	}

	folder, err := s.Get(ctx, owner, folderID)
	if err != nil {
		return nil, err
	}

	if folder.Name == newName {
		return folder, nil
	}

	if err := s.dbClient.WithContext(ctx).Model(folder).Update("name", newName).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: folder %q", ErrDuplicateName, newName)
		}

		return nil, fmt.Errorf("rename folder: %w", err)
	}

	folder.Name = newName

	return folder, nil
}

// Delete 删除文件夹，要求显式确认.级联移除所有子孙文件夹；引用被删
// 文件夹的文件一律移回根目录，绝不随文件夹删除而删除文件.
func (s *FolderService) Delete(ctx context.Context, owner string, folderID uint, confirmed bool) (types.DeleteFolderResponse, error) {
	var resp types.DeleteFolderResponse

	if !confirmed {
		return resp, fmt.Errorf("%w: deletion must be confirmed", ErrInvalidArgument)
	}

	if _, err := s.Get(ctx, owner, folderID); err != nil {
		return resp, err
	}

	err := s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := collectSubtree(tx, owner, folderID)
		if err != nil {
			return err
		}

		detach := tx.Model(&model.File{}).
			Where("owner = ? AND folder_id IN ?", owner, ids).
			Update("folder_id", model.RootFolderID)
		if detach.Error != nil {
			return fmt.Errorf("detach files: %w", detach.Error)
		}

		del := tx.Where("owner = ? AND id IN ?", owner, ids).Delete(&model.Folder{})
		if del.Error != nil {
			return fmt.Errorf("delete folders: %w", del.Error)
		}

		resp.DeletedFolders = int(del.RowsAffected)
		resp.DetachedFiles = int(detach.RowsAffected)

		return nil
	})
	if err != nil {
		return types.DeleteFolderResponse{}, err
	}

	return resp, nil
}

// collectSubtree 自上而下收集 folderID 及其全部子孙的 ID.
// parent 指针保证无环，逐层展开即可终止.
func collectSubtree(tx *gorm.DB, owner string, folderID uint) ([]uint, error) {
	all := []uint{folderID}
	frontier := []uint{folderID}

	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&model.Folder{}).
			Where("owner = ? AND parent_id IN ?", owner, frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, fmt.Errorf("collect subtree: %w", err)
		}

		all = append(all, children...)
		frontier = children
	}

	return all, nil
}

// ListChildren 列出 parentID 直接子级：文件夹按名称排序，
// 未删除的文件按上传时间倒序.parentID 为 0 表示根目录.
func (s *FolderService) ListChildren(ctx context.Context, owner string, parentID uint) (types.ListChildrenResponse, error) {
	var resp types.ListChildrenResponse

	if parentID != model.RootFolderID {
		if _, err := s.getOwned(ctx, owner, parentID); err != nil {
			return resp, err
		}
	}

	var folders []model.Folder
	if err := s.dbClient.WithContext(ctx).
		Where("owner = ? AND parent_id = ?", owner, parentID).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return resp, fmt.Errorf("list folders: %w", err)
	}

	var files []model.File
	if err := s.dbClient.WithContext(ctx).
		Where("owner = ? AND folder_id = ? AND is_deleted = ?", owner, parentID, false).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return resp, fmt.Errorf("list files: %w", err)
	}

	resp.Folders = make([]types.FolderInfo, 0, len(folders))
	for i := range folders {
		resp.Folders = append(resp.Folders, folderInfo(&folders[i]))
	}

	resp.Files = make([]types.FileInfo, 0, len(files))
	for i := range files {
		resp.Files = append(resp.Files, fileInfo(&files[i]))
	}

	return resp, nil
}

// SetPassword 设置或移除文件夹口令.空口令移除保护并清掉调用方
// 会话里的解锁标记.
func (s *FolderService) SetPassword(ctx context.Context, owner string, folderID uint, password, session string) error {
	folder, err := s.Get(ctx, owner, folderID)
	if err != nil {
		return err
	}

	if password == "" {
		if err := s.dbClient.WithContext(ctx).Model(folder).Update("password_hash", "").Error; err != nil {
			return fmt.Errorf("remove folder password: %w", err)
		}

		if s.kvClient != nil && session != "" {
			_ = s.kvClient.Delete(ctx, unlockKey(session, folderID))
		}

		return nil
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.dbClient.WithContext(ctx).Model(folder).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("set folder password: %w", err)
	}

	return nil
}

// touchFolder 刷新文件夹 updated_at.文件增删改时在同一事务内显式
// 调用，使父目录的时间戳与内容变化保持一致；根目录无此语义.
func touchFolder(tx *gorm.DB, owner string, folderID uint) error {
	if folderID == model.RootFolderID {
		return nil
	}

	if err := tx.Model(&model.Folder{}).
		Where("owner = ? AND id = ?", owner, folderID).
		Update("updated_at", time.Now()).Error; err != nil {
		return fmt.Errorf("touch folder: %w", err)
	}

	return nil
}

func folderInfo(f *model.Folder) types.FolderInfo {
	return types.FolderInfo{
		ID:          f.ID,
		Name:        f.Name,
		ParentID:    f.ParentID,
		IsProtected: f.IsProtected(),
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fileInfo(f *model.File) types.FileInfo {
	return types.FileInfo{
		ID:          f.ID,
		Name:        f.Name,
		FolderID:    f.FolderID,
		Size:        f.Size,
		ContentType: f.ContentType,
		UploadedAt:  f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
