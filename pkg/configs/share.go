package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultUnlockTTLMinutes   = 720 // 文件夹解锁在会话中的保留时长（分钟）
	DefaultTrashRetentionDays = 30  // 回收站保留天数，超期由定时任务清理
)

// ShareConfig 分享与回收站策略配置.
// 分享链接本身的有效期（10 分钟）与默认访问上限（5 次）是业务常量，
// 定义在 service 层，不在此处开放配置.
type ShareConfig struct {
	UnlockTTLMinutes   int `mapstructure:"unlock_ttl_minutes"   rule:"min=1"`
	TrashRetentionDays int `mapstructure:"trash_retention_days" rule:"min=1"`
}

// GetUnlockTTL 返回文件夹解锁缓存的 TTL.
func (c *ShareConfig) GetUnlockTTL() time.Duration {
	return time.Duration(c.UnlockTTLMinutes) * time.Minute
}

// GetTrashRetention 返回回收站保留时长.
func (c *ShareConfig) GetTrashRetention() time.Duration {
	return time.Duration(c.TrashRetentionDays) * 24 * time.Hour
}

// setDefaults 设置分享配置的默认值.
func (c *ShareConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("share.unlock_ttl_minutes", DefaultUnlockTTLMinutes)
	v.SetDefault("share.trash_retention_days", DefaultTrashRetentionDays)
}
