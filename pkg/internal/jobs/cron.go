// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/sharevault/pkg/configs"
	ctxPkg "github.com/yeisme/sharevault/pkg/context"
	"github.com/yeisme/sharevault/pkg/internal/service"
	"github.com/yeisme/sharevault/pkg/internal/storage"
	"github.com/yeisme/sharevault/pkg/log"
	"github.com/yeisme/sharevault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每天 03:30 清理回收站中超过保留期的条目
//   - 每 10 分钟清理已过期分享链接的存储副本
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	// 每天 03:30 自动清理回收站
	if err := sched.AddCron(JobTrashAutoClean, CronTrashAutoClean, runTrashAutoClean, baseCtx); err != nil {
		return fmt.Errorf("register %s: %w", JobTrashAutoClean, err)
	}

	// 每 10 分钟回收过期分享
	if err := sched.AddCron(JobShareSweep, CronShareSweep, runShareSweep, baseCtx); err != nil {
		return fmt.Errorf("register %s: %w", JobShareSweep, err)
	}

	return nil
}

// runTrashAutoClean 清理回收站中删除时间早于保留期的条目.
func runTrashAutoClean(ctx context.Context) {
	l := log.Logger().With().Str("job", JobTrashAutoClean).Logger()

	retention := configs.GetConfig().Share.GetTrashRetention()
	before := time.Now().Add(-retention)

	svc := service.NewTrashService(ctx)

	n, err := svc.AutoClean(ctx, before)
	if err != nil {
		l.Error().Err(err).Msg("auto clean failed")
		return
	}

	if n > 0 {
		l.Info().Int("affected", n).Time("before", before).Msg("auto cleaned trash")
	}
}

// runShareSweep 回收已过期分享链接的字节副本和元数据.
func runShareSweep(ctx context.Context) {
	l := log.Logger().With().Str("job", JobShareSweep).Logger()

	svc := service.NewShareService(ctx)

	n, err := svc.SweepExpired(ctx)
	if err != nil {
		l.Error().Err(err).Msg("sweep failed")
		return
	}

	if n > 0 {
		l.Info().Int("affected", n).Msg("swept expired shares")
	}
}
