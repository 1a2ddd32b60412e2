// Package service 实现核心领域逻辑：文件夹层级、文件生命周期、
// 分享链接与口令保护的访问闸口.
package service

import (
	"context"

	ctxPkg "github.com/yeisme/sharevault/pkg/context"
	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/storage/blob"
	"github.com/yeisme/sharevault/pkg/internal/storage/db"
	"github.com/yeisme/sharevault/pkg/internal/storage/kv"
)

// VaultService 聚合各领域服务共用的存储客户端与加密器.
type VaultService struct {
	dbClient   *db.Client
	kvClient   *kv.Client
	blobClient *blob.Client
	cipher     *crypto.Cipher
}

// NewVaultService 从 context 中取出注入的存储与加密器构造服务.
func NewVaultService(c context.Context) *VaultService {
	return &VaultService{
		dbClient:   ctxPkg.GetDBClient(c),
		kvClient:   ctxPkg.GetKVClient(c),
		blobClient: ctxPkg.GetBlobClient(c),
		cipher:     ctxPkg.GetCipher(c),
	}
}
