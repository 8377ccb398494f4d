package model

// 职位状态（冗余字段，随委托状态镜像更新）
const (
	JobStatusOpen   = "open"
	JobStatusHired  = "hired"
	JobStatusClosed = "closed"
)

// Job 职位表 — 对应 jobs
type Job struct {
	JobID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_id"`
	EmployerID  string `gorm:"type:uuid;not null"                             json:"employer_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null"                             json:"description"`
	City        string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	Country     string `gorm:"type:varchar(100)"                              json:"country,omitempty"`
	Remote      bool   `gorm:"not null;default:false"                         json:"remote"`
	SalaryMin   *int   `json:"salary_min,omitempty"`
	SalaryMax   *int   `json:"salary_max,omitempty"`
	Status      string `gorm:"type:varchar(20);not null;default:'open'"       json:"status"` // open | hired | closed
	VersionedModel

	// 关联
	Employer *User `gorm:"foreignKey:EmployerID;references:UserID" json:"employer,omitempty"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }
