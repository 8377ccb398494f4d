package repository

import (
	"context"

	"gorm.io/gorm"

	"hireloop/backend/internal/model"
)

// JobListFilters 职位列表过滤条件
type JobListFilters struct {
	EmployerID string
	Status     string
	Keyword    string
}

// JobRepository 职位数据访问接口
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	UpdateStatus(ctx context.Context, jobID, status string, updatedBy string) error
	Delete(ctx context.Context, id string, deletedBy string) error
	List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error)
}

// jobRepo JobRepository 的 GORM 实现
type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo 创建 JobRepository 实例
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Where("job_id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// UpdateStatus 更新职位冗余状态（委托完成后镜像为 hired 等）
func (r *jobRepo) UpdateStatus(ctx context.Context, jobID, status string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *jobRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("job_id = ?", id).
		Update("deleted_by", deletedBy).
		Delete(&model.Job{}, "job_id = ?", id).Error
}

func (r *jobRepo) List(ctx context.Context, filters *JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Job{})
	if filters != nil {
		if filters.EmployerID != "" {
			db = db.Where("employer_id = ?", filters.EmployerID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("title ILIKE ? OR description ILIKE ?", kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employer").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}
