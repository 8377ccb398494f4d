package dto

// ── 委托模块 DTO ──

// HireRecruiterRequest 雇主发起招募请求
type HireRecruiterRequest struct {
	JobID       string `json:"job_id"       binding:"required,uuid"`
	RecruiterID string `json:"recruiter_id" binding:"required,uuid"`
	Message     string `json:"message"      binding:"omitempty,max=500"`
}

// RespondAssignmentRequest 猎头响应委托请求
type RespondAssignmentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept decline"`
}

// AssignmentListRequest 委托列表查询参数
type AssignmentListRequest struct {
	PaginationRequest
	JobID  string `form:"job_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=pending accepted declined completed"`
}

// AssignmentResponse 委托响应
type AssignmentResponse struct {
	ID          string     `json:"id"`
	JobID       string     `json:"job_id"`
	JobTitle    string     `json:"job_title,omitempty"`
	Message     string     `json:"message,omitempty"`
	Status      string     `json:"status"`
	Employer    *UserBrief `json:"employer,omitempty"`
	Recruiter   *UserBrief `json:"recruiter,omitempty"`
	RespondedAt string     `json:"responded_at,omitempty"`
	CompletedAt string     `json:"completed_at,omitempty"`
	CreatedAt   string     `json:"created_at"`
}
