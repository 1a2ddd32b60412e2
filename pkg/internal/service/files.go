package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/gorm"

	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/storage/blob"
	"github.com/yeisme/sharevault/pkg/internal/types"
)

// FileService 管理文件上传、下载与放置.字节内容直通 blob 存储，
// 元数据行与父目录时间戳在同一事务内落库.
type FileService struct{ *VaultService }

func NewFileService(c context.Context) *FileService {
	return &FileService{NewVaultService(c)}
}

var (
	ulidEntropy = ulid.Monotonic(crand.Reader, 0)
	ulidMu      sync.Mutex
)

// newObjectKey 生成对象键：按用户隔离前缀 + 时间可排序的随机后缀，
// 避免同名文件在存储层碰撞.
func newObjectKey(owner, name string) string {
	ulidMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy)
	ulidMu.Unlock()

	return fmt.Sprintf("user_%s/%s_%s", owner, id.String(), name)
}

// Upload 上传文件到 folderID（0 为根目录）.同目录下与未删除文件重名时
// 自动加序号后缀（name、name_1、name_2 ...），保证上传总能成功.
func (s *FileService) Upload(ctx context.Context, owner string, folderID uint, name string, r io.Reader, size int64, contentType string) (*model.File, error) {
	name = strings.TrimSpace(name)
	if owner == "" || name == "" {
		return nil, fmt.Errorf("%w: owner and name are required", ErrInvalidArgument)
	}

	// 校验目标文件夹归属，非本人的文件夹一律视作不存在
	if folderID != model.RootFolderID {
		fs := &FolderService{s.VaultService}
		if _, err := fs.getOwned(ctx, owner, folderID); err != nil {
			return nil, err
		}
	}

	name, err := s.dedupeName(ctx, owner, folderID, name)
	if err != nil {
		return nil, err
	}

	objectKey := newObjectKey(owner, name)
	if err := s.blobClient.Put(ctx, objectKey, r, size, contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	file := &model.File{
		Owner:       owner,
		FolderID:    folderID,
		Name:        name,
		ObjectKey:   objectKey,
		Size:        size,
		ContentType: contentType,
	}

	err = s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(file).Error; err != nil {
			return fmt.Errorf("create file record: %w", err)
		}

		return touchFolder(tx, owner, folderID)
	})
	if err != nil {
		// 元数据落库失败，回收已写入的字节
		_ = s.blobClient.Remove(ctx, objectKey)

		return nil, err
	}

	return file, nil
}

// dedupeName 在 (owner, folder) 内针对未删除文件挑选不冲突的名字.
func (s *FileService) dedupeName(ctx context.Context, owner string, folderID uint, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		var count int64
		if err := s.dbClient.WithContext(ctx).Model(&model.File{}).
			Where("owner = ? AND folder_id = ? AND name = ? AND is_deleted = ?", owner, folderID, candidate, false).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("check name: %w", err)
		}

		if count == 0 {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

// Get 按 ID 获取文件元数据（含已在回收站的行）.
func (s *FileService) Get(ctx context.Context, owner string, fileID uint) (*model.File, error) {
	var file model.File
	if err := s.dbClient.WithContext(ctx).First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: file %d", ErrNotFound, fileID)
		}

		return nil, fmt.Errorf("get file: %w", err)
	}

	if file.Owner != owner {
		return nil, fmt.Errorf("%w: file %d", ErrForbidden, fileID)
	}

	return &file, nil
}

// Download 打开未删除文件的字节流.读路径上 blob 缺失视为 NotFound.
func (s *FileService) Download(ctx context.Context, owner string, fileID uint) (io.ReadCloser, *model.File, error) {
	file, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, nil, err
	}

	if file.IsDeleted {
		return nil, nil, fmt.Errorf("%w: file %d is trashed", ErrNotFound, fileID)
	}

	rc, err := s.blobClient.Get(ctx, file.ObjectKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: file %d bytes missing", ErrNotFound, fileID)
		}

		return nil, nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return rc, file, nil
}

// Rename 重命名文件.新名字省略扩展名时沿用原扩展名；与同目录
// 未删除文件重名时拒绝（上传路径自动加后缀，改名路径从严）.
func (s *FileService) Rename(ctx context.Context, owner string, fileID uint, newName string) (*model.File, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: new name is required", ErrInvalidArgument)
	}

	file, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, err
	}

	if path.Ext(newName) == "" {
		newName += path.Ext(file.Name)
	}

	if newName == file.Name {
		return file, nil
	}

	var count int64
	if err := s.dbClient.WithContext(ctx).Model(&model.File{}).
		Where("owner = ? AND folder_id = ? AND name = ? AND is_deleted = ? AND id <> ?",
			owner, file.FolderID, newName, false, file.ID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}

	if count > 0 {
		return nil, fmt.Errorf("%w: file %q", ErrDuplicateName, newName)
	}

	err = s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Update("name", newName).Error; err != nil {
			return fmt.Errorf("rename file: %w", err)
		}

		return touchFolder(tx, owner, file.FolderID)
	})
	if err != nil {
		return nil, err
	}

	file.Name = newName

	return file, nil
}

// Move 把文件移动到 targetFolderID（0 为根目录），源和目标文件夹的
// 时间戳在同一事务内刷新.
func (s *FileService) Move(ctx context.Context, owner string, fileID, targetFolderID uint) (*model.File, error) {
	file, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, err
	}

	if targetFolderID != model.RootFolderID {
		fs := &FolderService{s.VaultService}
		if _, err := fs.getOwned(ctx, owner, targetFolderID); err != nil {
			return nil, err
		}
	}

	if targetFolderID == file.FolderID {
		return file, nil
	}

	oldFolderID := file.FolderID

	err = s.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Update("folder_id", targetFolderID).Error; err != nil {
			return fmt.Errorf("move file: %w", err)
		}

		if err := touchFolder(tx, owner, oldFolderID); err != nil {
			return err
		}

		return touchFolder(tx, owner, targetFolderID)
	})
	if err != nil {
		return nil, err
	}

	file.FolderID = targetFolderID

	return file, nil
}

// CreateTextFile 以纯文本内容创建文件，强制 .txt 扩展名，复用上传路径.
func (s *FileService) CreateTextFile(ctx context.Context, owner string, folderID uint, name, content string) (*model.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	if !strings.HasSuffix(strings.ToLower(name), ".txt") {
		name += ".txt"
	}

	r := strings.NewReader(content)

	return s.Upload(ctx, owner, folderID, name, r, int64(len(content)), "text/plain; charset=utf-8")
}

// Recent 列出用户最近上传的未删除文件.
func (s *FileService) Recent(ctx context.Context, owner string, limit int) (types.RecentFilesResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []model.File
	if err := s.dbClient.WithContext(ctx).
		Where("owner = ? AND is_deleted = ?", owner, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return types.RecentFilesResponse{}, fmt.Errorf("list recent files: %w", err)
	}

	resp := types.RecentFilesResponse{Files: make([]types.FileInfo, 0, len(rows))}
	for i := range rows {
		resp.Files = append(resp.Files, fileInfo(&rows[i]))
	}

	return resp, nil
}
