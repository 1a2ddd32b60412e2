package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/sharevault/pkg/scheduler"
)

const schedulerKey = "scheduler"

// SchedulerMiddleware 把调度器挂到 gin context，供运维端点查询任务状态.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(schedulerKey, sched)
		c.Next()
	}
}

// GetScheduler 从 gin context 取出调度器，未注入时返回 nil.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	if v, ok := c.Get(schedulerKey); ok {
		if s, ok := v.(*scheduler.Scheduler); ok {
			return s
		}
	}

	return nil
}
