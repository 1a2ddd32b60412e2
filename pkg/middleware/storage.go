package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/context"
	"github.com/yeisme/sharevault/pkg/internal/crypto"
	"github.com/yeisme/sharevault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器与加密器注入到每个请求的 context，
// service 层从 context 取用而不依赖全局状态.
func StorageMiddleware(manager *storage.Manager, cipher *crypto.Cipher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		ctx = context.WithCipher(ctx, cipher)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
