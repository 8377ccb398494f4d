package dto

// ── 职位模块 DTO ──

// CreateJobRequest 发布职位请求
type CreateJobRequest struct {
	Title       string `json:"title"       binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required"`
	City        string `json:"city"        binding:"omitempty,max=100"`
	Country     string `json:"country"     binding:"omitempty,max=100"`
	Remote      bool   `json:"remote"`
	SalaryMin   *int   `json:"salary_min"  binding:"omitempty,min=0"`
	SalaryMax   *int   `json:"salary_max"  binding:"omitempty,min=0"`
}

// UpdateJobRequest 更新职位请求（仅更新非 nil 字段）
type UpdateJobRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty"`
	City        *string `json:"city"        binding:"omitempty,max=100"`
	Country     *string `json:"country"     binding:"omitempty,max=100"`
	Remote      *bool   `json:"remote"`
	SalaryMin   *int    `json:"salary_min"  binding:"omitempty,min=0"`
	SalaryMax   *int    `json:"salary_max"  binding:"omitempty,min=0"`
}

// JobListRequest 职位列表查询参数
type JobListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	Status  string `form:"status"  binding:"omitempty,oneof=open hired closed"`
}

// JobResponse 职位响应
type JobResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	Remote      bool       `json:"remote"`
	SalaryMin   *int       `json:"salary_min,omitempty"`
	SalaryMax   *int       `json:"salary_max,omitempty"`
	Status      string     `json:"status"`
	Employer    *UserBrief `json:"employer,omitempty"`
	CreatedAt   string     `json:"created_at"`
}
