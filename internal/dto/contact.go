package dto

// ── 人脉模块 DTO ──

// ContactRequest 发起人脉请求
type ContactRequest struct {
	RecruiterID string `json:"recruiter_id" binding:"required,uuid"`
}

// ContactResponse 人脉响应
type ContactResponse struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Employer  *UserBrief `json:"employer,omitempty"`
	Recruiter *UserBrief `json:"recruiter,omitempty"`
	CreatedAt string     `json:"created_at"`
}
