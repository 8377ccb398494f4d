package model

// 通知类型（固定词表）
const (
	NotifyContactRequest         = "contact_request"
	NotifyContactAccepted        = "contact_accepted"
	NotifyJobAssignment          = "job_assignment"
	NotifyAssignmentResponse     = "assignment_response"
	NotifyAssignmentStatusUpdate = "assignment_status_update"
	NotifyCandidateSubmission    = "candidate_submission"
	NotifyJobApplication         = "job_application"
	NotifyJobHired               = "job_hired"
)

// Notification 通知消息表 — 对应 notifications
// 作为状态流转的副作用创建；接收人只能翻转 is_read，不做删除
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
