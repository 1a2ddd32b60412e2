// Package blob 提供文件字节存储的接口和实现（S3/MinIO 与内存）.
// 元数据始终在 DB 中，blob 只存放不透明的字节对象.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yeisme/sharevault/pkg/configs"
)

// ErrNotExist 表示对象在存储中不存在.
var ErrNotExist = errors.New("blob: object does not exist")

type Client struct {
	Store
}

// Store 定义字节对象存储接口.
type Store interface {
	// Put 写入对象，size 为 -1 表示长度未知（流式上传）.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get 读取对象，对象不存在时返回 ErrNotExist.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove 删除对象；对象不存在不视为错误.
	Remove(ctx context.Context, key string) error
	// Exists 检查对象是否存在.
	Exists(ctx context.Context, key string) (bool, error)
	// Close 关闭存储连接.
	Close() error
}

// StoreType 字节存储类型.
type StoreType string

const (
	StoreTypeS3     StoreType = "s3"
	StoreTypeMemory StoreType = "memory"
)

// StoreFactory 定义创建 Store 的工厂函数类型.
type StoreFactory func(ctx context.Context, config any) (Store, error)

// storeFactories 存储类型到工厂的映射.
var storeFactories = make(map[StoreType]StoreFactory)

// RegisterStoreFactory 注册 Store 工厂函数.
func RegisterStoreFactory(storeType StoreType, factory StoreFactory) {
	storeFactories[storeType] = factory
}

// GetRegisteredStoreTypes 返回已注册的字节存储类型列表.
func GetRegisteredStoreTypes() []StoreType {
	types := make([]StoreType, 0, len(storeFactories))
	for storeType := range storeFactories {
		types = append(types, storeType)
	}

	return types
}

// NewStore 根据类型创建 Store 实例.
func NewStore(ctx context.Context, storeType StoreType, config any) (Store, error) {
	factory, exists := storeFactories[storeType]
	if !exists {
		return nil, fmt.Errorf("unsupported blob store type: %s", storeType)
	}

	return factory(ctx, config)
}

// New 根据全局配置创建并返回一个新的 blob 客户端.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().Blob

	var config any
	if StoreType(cfg.Type) == StoreTypeS3 {
		config = &cfg.S3
	}

	store, err := NewStore(ctx, StoreType(cfg.Type), config)
	if err != nil {
		return nil, err
	}

	return &Client{Store: store}, nil
}
