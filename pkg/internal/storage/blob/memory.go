package blob

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore 内存对象存储实现，用于测试与本地开发.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore 创建内存对象存储实例.
func NewMemoryStore(ctx context.Context, config any) (Store, error) {
	return &MemoryStore{objects: make(map[string][]byte)}, nil
}

// Put 写入对象.
func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = data

	return nil
}

// Get 读取对象.
func (m *MemoryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.objects[key]
	if !exists {
		return nil, ErrNotExist
	}

	// 返回副本，避免调用方持有内部切片
	cp := make([]byte, len(data))
	copy(cp, data)

	return io.NopCloser(bytes.NewReader(cp)), nil
}

// Remove 删除对象，不存在不视为错误.
func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)

	return nil
}

// Exists 检查对象是否存在.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.objects[key]

	return exists, nil
}

// Close 关闭存储（内存实现无需操作）.
func (m *MemoryStore) Close() error {
	return nil
}

func init() {
	RegisterStoreFactory(StoreTypeMemory, NewMemoryStore)
}
