// Package context 拓展上下文功能，将存储、加密等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/storage"
	blobc "github.com/yeisme/sharevault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/sharevault/pkg/internal/storage/db"
	kvc "github.com/yeisme/sharevault/pkg/internal/storage/kv"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	CipherKey         ContextKey = "cipher"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetDBClient 从 context 中获取 DB 客户端.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetKVClient 从 context 中获取 KV 客户端.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// GetBlobClient 从 context 中获取 blob 客户端.
func GetBlobClient(ctx context.Context) *blobc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetBlobClient()
	}

	return nil
}

// WithCipher 将加密器存储到 context 中.
func WithCipher(ctx context.Context, c *crypto.Cipher) context.Context {
	return context.WithValue(ctx, CipherKey, c)
}

// GetCipher 从 context 中获取加密器.
func GetCipher(ctx context.Context) *crypto.Cipher {
	if c, ok := ctx.Value(CipherKey).(*crypto.Cipher); ok {
		return c
	}

	return nil
}
