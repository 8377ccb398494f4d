package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Job          JobRepository
	Assignment   AssignmentRepository
	JobRecruiter JobRecruiterRepository
	Submission   SubmissionRepository
	Notification NotificationRepository
	Contact      ContactRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Job:          NewJobRepo(db),
		Assignment:   NewAssignmentRepo(db),
		JobRecruiter: NewJobRecruiterRepo(db),
		Submission:   NewSubmissionRepo(db),
		Notification: NewNotificationRepo(db),
		Contact:      NewContactRepo(db),
	}
}

// Tx 事务句柄：事务内的读写经由 Repo() 返回的聚合执行，
// Commit/Rollback 由调用方负责
type Tx struct {
	db   *gorm.DB
	repo *Repository
}

// BeginTx 开启事务。
// 聚合不持有底层连接时（接口实现直接注入的组装方式）事务退化为直通：
// Repo() 返回原聚合，Commit/Rollback 为 no-op
func (r *Repository) BeginTx(ctx context.Context) (*Tx, error) {
	if r.db == nil {
		return &Tx{repo: r}, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Tx{db: tx, repo: NewRepository(tx)}, nil
}

// Repo 返回绑定到本事务的 Repository 聚合（含行锁读取）
func (t *Tx) Repo() *Repository { return t.repo }

// Commit 提交事务
func (t *Tx) Commit() error {
	if t.db == nil {
		return nil
	}
	return t.db.Commit().Error
}

// Rollback 回滚事务；提交后调用无副作用
func (t *Tx) Rollback() {
	if t.db != nil {
		t.db.Rollback()
	}
}
