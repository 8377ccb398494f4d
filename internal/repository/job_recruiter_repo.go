package repository

import (
	"context"

	"gorm.io/gorm"

	"hireloop/backend/internal/model"
)

// JobRecruiterRepository 旧版招募表数据访问接口（只读，迁移来源）
type JobRecruiterRepository interface {
	// ListInBatches 按批流式读取全部旧记录（join 职位取雇主），
	// 每批回调一次；回调返回错误即中止
	ListInBatches(ctx context.Context, batchSize int, fn func(records []model.JobRecruiter) error) error
	Count(ctx context.Context) (int64, error)
}

// jobRecruiterRepo JobRecruiterRepository 的 GORM 实现
type jobRecruiterRepo struct {
	db *gorm.DB
}

// NewJobRecruiterRepo 创建 JobRecruiterRepository 实例
func NewJobRecruiterRepo(db *gorm.DB) JobRecruiterRepository {
	return &jobRecruiterRepo{db: db}
}

func (r *jobRecruiterRepo) ListInBatches(ctx context.Context, batchSize int, fn func(records []model.JobRecruiter) error) error {
	if batchSize <= 0 {
		batchSize = 200
	}
	var batch []model.JobRecruiter
	return r.db.WithContext(ctx).
		Preload("Job").
		Order("id").
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

func (r *jobRecruiterRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JobRecruiter{}).Count(&count).Error
	return count, err
}
