package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultBcryptCost = 12 // 文件夹口令哈希成本
)

// CryptoConfig 静态加密与口令哈希配置.
// MasterKey 是 base64 编码的 32 字节密钥，用于分享文件的静态加密.
// 生产模式下缺失 MasterKey 会导致启动失败；仅在 server.debug 下允许自动生成临时密钥.
type CryptoConfig struct {
	MasterKey  string `mapstructure:"master_key"`
	BcryptCost int    `mapstructure:"bcrypt_cost" rule:"min=4,max=31"`
}

// setDefaults 设置加密配置的默认值.
func (c *CryptoConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("crypto.master_key", "")
	v.SetDefault("crypto.bcrypt_cost", DefaultBcryptCost)
}
