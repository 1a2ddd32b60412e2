package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobTrashAutoClean = "trash.auto_clean"
	JobShareSweep     = "share.sweep_expired"
)

// Cron 表达式常量.
const (
	CronTrashAutoClean = "30 3 * * *"
	CronShareSweep     = "*/10 * * * *"
)
