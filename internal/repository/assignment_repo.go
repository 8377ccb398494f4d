package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hireloop/backend/internal/model"
)

// AssignmentListFilters 委托列表过滤条件
// EmployerID / RecruiterID 由 Service 层按调用者角色填入
type AssignmentListFilters struct {
	EmployerID  string
	RecruiterID string
	JobID       string
	Status      model.AssignmentStatus
}

// AssignmentRepository 委托数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	// GetByIDForUpdate 行锁读取（SELECT ... FOR UPDATE），仅在事务内使用，
	// 用于串行化同一委托上的并发状态流转
	GetByIDForUpdate(ctx context.Context, id string) (*model.Assignment, error)
	// UpdateStatus 乐观锁状态更新：WHERE version = ?，返回受影响行数。
	// 0 行表示版本已被并发流转抢先，调用方应重读后报状态错误
	UpdateStatus(ctx context.Context, assignment *model.Assignment, updatedBy string) (int64, error)
	// ExistsLivePair 是否已存在 (job, recruiter) 的非终态委托
	ExistsLivePair(ctx context.Context, jobID, recruiterID string) (bool, error)
	// ExistsForTriple 是否已存在 (job, employer, recruiter) 的任意状态委托
	//（迁移幂等检查用，不限非终态）
	ExistsForTriple(ctx context.Context, jobID, employerID, recruiterID string) (bool, error)
	// CountLiveForJob 统计职位下的非终态委托数（删除职位前的守卫）
	CountLiveForJob(ctx context.Context, jobID string) (int64, error)
	List(ctx context.Context, filters *AssignmentListFilters, offset, limit int) ([]model.Assignment, int64, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Employer").
		Preload("Recruiter").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) UpdateStatus(ctx context.Context, assignment *model.Assignment, updatedBy string) (int64, error) {
	updates := map[string]interface{}{
		"status":       assignment.Status,
		"responded_at": assignment.RespondedAt,
		"completed_at": assignment.CompletedAt,
		"updated_at":   time.Now(),
		"updated_by":   updatedBy,
		"version":      gorm.Expr("version + 1"),
	}
	res := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ? AND version = ?", assignment.AssignmentID, assignment.Version).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *assignmentRepo) ExistsLivePair(ctx context.Context, jobID, recruiterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("job_id = ? AND recruiter_id = ? AND status IN ?",
			jobID, recruiterID,
			[]model.AssignmentStatus{model.AssignmentPending, model.AssignmentAccepted}).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) ExistsForTriple(ctx context.Context, jobID, employerID, recruiterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("job_id = ? AND employer_id = ? AND recruiter_id = ?", jobID, employerID, recruiterID).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) CountLiveForJob(ctx context.Context, jobID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("job_id = ? AND status IN ?",
			jobID,
			[]model.AssignmentStatus{model.AssignmentPending, model.AssignmentAccepted}).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) List(ctx context.Context, filters *AssignmentListFilters, offset, limit int) ([]model.Assignment, int64, error) {
	var assignments []model.Assignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Assignment{})
	if filters != nil {
		if filters.EmployerID != "" {
			db = db.Where("employer_id = ?", filters.EmployerID)
		}
		if filters.RecruiterID != "" {
			db = db.Where("recruiter_id = ?", filters.RecruiterID)
		}
		if filters.JobID != "" {
			db = db.Where("job_id = ?", filters.JobID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// created_at 相同时以主键兜底，保证分页顺序确定
	if err := db.Preload("Job").
		Preload("Employer").
		Preload("Recruiter").
		Offset(offset).Limit(limit).
		Order("created_at DESC, assignment_id DESC").
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}
