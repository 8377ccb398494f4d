package dto

// ── 推荐模块 DTO ──

// SubmitCandidateRequest 猎头推荐候选人请求
type SubmitCandidateRequest struct {
	AssignmentID string `json:"assignment_id"   binding:"required,uuid"`
	CandidateID  string `json:"candidate_id"    binding:"required,uuid"`
	Notes        string `json:"recruiter_notes" binding:"omitempty,max=1000"`
}

// SubmissionListRequest 推荐列表查询参数
type SubmissionListRequest struct {
	PaginationRequest
	JobID string `form:"job_id" binding:"omitempty,uuid"`
}

// SubmissionResponse 推荐响应
type SubmissionResponse struct {
	ID             string     `json:"id"`
	AssignmentID   string     `json:"assignment_id"`
	JobID          string     `json:"job_id"`
	JobTitle       string     `json:"job_title,omitempty"`
	Candidate      *UserBrief `json:"candidate,omitempty"`
	Recruiter      *UserBrief `json:"recruiter,omitempty"`
	RecruiterNotes string     `json:"recruiter_notes,omitempty"`
	SubmittedAt    string     `json:"submitted_at"`
}
