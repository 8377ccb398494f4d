package model

import "time"

// AssignmentStatus 委托状态
type AssignmentStatus string

const (
	// AssignmentPending 雇主已发起招募，等待猎头响应（初始态）
	AssignmentPending AssignmentStatus = "pending"
	// AssignmentAccepted 猎头已接受，可以推荐候选人
	AssignmentAccepted AssignmentStatus = "accepted"
	// AssignmentDeclined 猎头已拒绝（终态，保留记录不删除）
	AssignmentDeclined AssignmentStatus = "declined"
	// AssignmentCompleted 雇主确认完成（终态）
	AssignmentCompleted AssignmentStatus = "completed"
)

// Terminal 是否为终态；终态拒绝一切后续流转
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentDeclined || s == AssignmentCompleted
}

// Valid 是否为合法状态值
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentAccepted, AssignmentDeclined, AssignmentCompleted:
		return true
	}
	return false
}

// assignmentTransitions 状态机流转表：from → 允许的 to 集合
// pending → accepted | declined ; accepted → completed
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentPending:  {AssignmentAccepted, AssignmentDeclined},
	AssignmentAccepted: {AssignmentCompleted},
}

// CanTransition 判断状态机是否允许 from → to
// 纯函数：不做相关方/角色判断，授权守卫由 Service 层先行检查
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionActorRole 返回执行 to 流转所要求的角色
// accept/decline 只能由委托的猎头执行，complete 只能由委托的雇主执行
func TransitionActorRole(to AssignmentStatus) Role {
	switch to {
	case AssignmentAccepted, AssignmentDeclined:
		return RoleRecruiter
	case AssignmentCompleted:
		return RoleEmployer
	}
	return ""
}

// Assignment 招募委托表 — 对应 assignments（canonical 表）
// 同一 (job_id, recruiter_id) 至多一条非终态记录，由数据库部分唯一索引保证
type Assignment struct {
	AssignmentID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	JobID        string           `gorm:"type:uuid;not null"                             json:"job_id"`
	EmployerID   string           `gorm:"type:uuid;not null"                             json:"employer_id"`
	RecruiterID  string           `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	Message      string           `gorm:"type:varchar(500)"                              json:"message,omitempty"`
	Status       AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RespondedAt  *time.Time       `json:"responded_at,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`

	// 关联
	Job       *Job  `gorm:"foreignKey:JobID;references:JobID"        json:"job,omitempty"`
	Employer  *User `gorm:"foreignKey:EmployerID;references:UserID"  json:"employer,omitempty"`
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// IsParty 判断 userID 是否为委托相关方（雇主或猎头）
func (a *Assignment) IsParty(userID string) bool {
	return a.EmployerID == userID || a.RecruiterID == userID
}

// CounterpartyID 返回 actorID 的对手方（通知接收人）
func (a *Assignment) CounterpartyID(actorID string) string {
	if actorID == a.EmployerID {
		return a.RecruiterID
	}
	return a.EmployerID
}
