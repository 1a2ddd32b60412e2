package service_test

import (
	"context"
	crand "crypto/rand"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	ctxPkg "github.com/yeisme/sharevault/pkg/context"
	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/model"
	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/storage"
	"github.com/yeisme/sharevault/pkg/internal/storage/blob"
	"github.com/yeisme/sharevault/pkg/internal/storage/db"
	"github.com/yeisme/sharevault/pkg/internal/storage/kv"
)

// newTestContext 构造内存后端（sqlite + memory kv + memory blob）的测试上下文.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}

	// 内存库只存在于单个连接中
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&model.Folder{}, &model.File{}, &model.ShareLink{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	kvStore, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create kv: %v", err)
	}

	blobStore, err := blob.NewStore(context.Background(), blob.StoreTypeMemory, nil)
	if err != nil {
		t.Fatalf("create blob store: %v", err)
	}

	key := make([]byte, crypto.KeySize)
	if _, err := crand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}

	cipher, err := crypto.NewCipher(key)
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	mgr := &storage.Manager{
		DB:   &db.Client{DB: gdb},
		KV:   &kv.Client{KVStore: kvStore},
		Blob: &blob.Client{Store: blobStore},
	}

	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	return ctxPkg.WithCipher(ctx, cipher)
}

// ctxDB 取出测试上下文里的 gorm 实例，供直接操作表的测试用.
func ctxDB(t *testing.T, ctx context.Context) *gorm.DB {
	t.Helper()

	return ctxPkg.GetDBClient(ctx).GetDB()
}

// mustUpload 上传一个文件，失败即终止测试.
func mustUpload(t *testing.T, ctx context.Context, owner string, folderID uint, name, content string) *model.File {
	t.Helper()

	svc := service.NewFileService(ctx)

	file, err := svc.Upload(ctx, owner, folderID, name, strings.NewReader(content), int64(len(content)), "application/octet-stream")
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}

	return file
}

// mustCreateFolder 创建一个文件夹，失败即终止测试.
func mustCreateFolder(t *testing.T, ctx context.Context, owner string, parentID uint, name string) *model.Folder {
	t.Helper()

	svc := service.NewFolderService(ctx)

	folder, err := svc.Create(ctx, owner, parentID, name)
	if err != nil {
		t.Fatalf("create folder %s: %v", name, err)
	}

	return folder
}
