// Package storage 聚合存储资源：元数据数据库、解锁状态 KV、文件字节 blob 存储.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	dbClient := mgr.GetDBClient()
//	kvClient := mgr.GetKVClient()
//	blobClient := mgr.GetBlobClient()
package storage

import (
	"context"
	"sync"

	blobc "github.com/yeisme/sharevault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/sharevault/pkg/internal/storage/db"
	kvc "github.com/yeisme/sharevault/pkg/internal/storage/kv"
	nlog "github.com/yeisme/sharevault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB   *dbc.Client
	KV   *kvc.Client
	Blob *blobc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		// KV
		if kvi, e := kvc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.KV = kvi
		}

		// Blob
		if bi, e := blobc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.Blob = bi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetBlobClient 获取 blob 客户端.
func (m *Manager) GetBlobClient() *blobc.Client {
	return m.Blob
}
