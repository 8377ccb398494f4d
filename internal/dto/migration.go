package dto

// ── 旧表迁移 DTO ──

// 迁移单条记录的处理结果
const (
	MigrationOutcomeMigrated      = "migrated"       // 已写入 canonical 表
	MigrationOutcomeSkipped       = "skipped"        // canonical 记录已存在（幂等跳过）
	MigrationOutcomeMappedDefault = "mapped_default" // 已迁移，但旧状态不在词表内，按默认值 accepted 落库
	MigrationOutcomeFailed        = "failed"         // 单条失败（如外键悬挂），不中断整批
)

// MigrationRecordResult 单条旧记录的审计结果
type MigrationRecordResult struct {
	LegacyID     string `json:"legacy_id"`
	JobID        string `json:"job_id"`
	RecruiterID  string `json:"recruiter_id"`
	LegacyStatus string `json:"legacy_status"`
	MappedStatus string `json:"mapped_status,omitempty"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason,omitempty"`
}

// MigrationSummary 迁移批次汇总
type MigrationSummary struct {
	Total    int                     `json:"total"`
	Migrated int                     `json:"migrated"`
	Skipped  int                     `json:"skipped"`
	Failed   int                     `json:"failed"`
	Records  []MigrationRecordResult `json:"records"`
}
