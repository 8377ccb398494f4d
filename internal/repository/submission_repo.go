package repository

import (
	"context"

	"gorm.io/gorm"

	"hireloop/backend/internal/model"
)

// SubmissionListFilters 推荐列表过滤条件
// EmployerID / RecruiterID / CandidateID 由 Service 层按调用者角色填入
type SubmissionListFilters struct {
	EmployerID  string
	RecruiterID string
	CandidateID string
	JobID       string
}

// SubmissionRepository 推荐数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	// ExistsForJobAndCandidate 同一候选人对同一职位是否已有推荐
	ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID string) (bool, error)
	List(ctx context.Context, filters *SubmissionListFilters, offset, limit int) ([]model.Submission, int64, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Candidate").
		Preload("Recruiter").
		Where("submission_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepo) ExistsForJobAndCandidate(ctx context.Context, jobID, candidateID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error
	return count > 0, err
}

func (r *submissionRepo) List(ctx context.Context, filters *SubmissionListFilters, offset, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Submission{})
	if filters != nil {
		if filters.EmployerID != "" {
			db = db.Where("employer_id = ?", filters.EmployerID)
		}
		if filters.RecruiterID != "" {
			db = db.Where("recruiter_id = ?", filters.RecruiterID)
		}
		if filters.CandidateID != "" {
			db = db.Where("candidate_id = ?", filters.CandidateID)
		}
		if filters.JobID != "" {
			db = db.Where("job_id = ?", filters.JobID)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Job").
		Preload("Candidate").
		Preload("Recruiter").
		Offset(offset).Limit(limit).
		Order("submitted_at DESC, submission_id DESC").
		Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}
