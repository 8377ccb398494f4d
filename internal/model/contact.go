package model

// 人脉状态
const (
	ContactPending  = "pending"
	ContactAccepted = "accepted"
)

// Contact 雇主-猎头人脉表 — 对应 contacts
// 与职位无关的职业网络关系；(employer_id, recruiter_id) 唯一，
// 重复请求幂等忽略而非报错
type Contact struct {
	ContactID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"contact_id"`
	EmployerID  string `gorm:"type:uuid;not null"                             json:"employer_id"`
	RecruiterID string `gorm:"type:uuid;not null"                             json:"recruiter_id"`
	Status      string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | accepted
	BaseModel

	// 关联
	Employer  *User `gorm:"foreignKey:EmployerID;references:UserID"  json:"employer,omitempty"`
	Recruiter *User `gorm:"foreignKey:RecruiterID;references:UserID" json:"recruiter,omitempty"`
}

// TableName 指定表名
func (Contact) TableName() string { return "contacts" }
