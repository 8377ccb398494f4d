package model

import "time"

// JobRecruiter 旧版招募表 — 对应 job_recruiters
// 早期版本用它记录雇主雇佣猎头，后被 assignments 取代。
// 仅作为 ReconciliationMigrator 的导入来源保留，应用不再写入。
type JobRecruiter struct {
	ID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JobID       string     `gorm:"type:uuid;not null"                             json:"job_id"`
	RecruiterID string     `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	Status      string     `gorm:"type:varchar(50)"                               json:"status"` // 自由文本，词表与新表不一致
	Message     string     `gorm:"type:varchar(500)"                              json:"message,omitempty"`
	HiredAt     *time.Time `json:"hired_at,omitempty"`

	// 关联（迁移时 join 职位取雇主）
	Job *Job `gorm:"foreignKey:JobID;references:JobID" json:"job,omitempty"`
}

// TableName 指定表名
func (JobRecruiter) TableName() string { return "job_recruiters" }
