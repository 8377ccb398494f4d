package model

import "time"

// Submission 候选人推荐表 — 对应 submissions
// employer_id 为冗余字段（从委托带出），用于权限校验时免 join。
// 创建后不可变更。
type Submission struct {
	SubmissionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	AssignmentID   string    `gorm:"type:uuid;not null"                             json:"assignment_id"`
	JobID          string    `gorm:"type:uuid;not null"                             json:"job_id"`
	CandidateID    string    `gorm:"type:uuid;not null"                             json:"candidate_id"`
	RecruiterID    string    `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	EmployerID     string    `gorm:"type:uuid;not null"                             json:"employer_id"`
	RecruiterNotes string    `gorm:"type:varchar(1000)"                             json:"recruiter_notes,omitempty"`
	SubmittedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`

	// 关联
	Job       *Job  `gorm:"foreignKey:JobID;references:JobID"        json:"job,omitempty"`
	Candidate *User `gorm:"foreignKey:CandidateID;references:UserID" json:"candidate,omitempty"`
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
