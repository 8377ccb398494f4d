package repository

import (
	"context"

	"gorm.io/gorm"

	"hireloop/backend/internal/model"
)

// ContactRepository 人脉数据访问接口
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	GetByPair(ctx context.Context, employerID, recruiterID string) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	ListForUser(ctx context.Context, userID string, offset, limit int) ([]model.Contact, int64, error)
}

// contactRepo ContactRepository 的 GORM 实现
type contactRepo struct {
	db *gorm.DB
}

// NewContactRepo 创建 ContactRepository 实例
func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Recruiter").
		Where("contact_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) GetByPair(ctx context.Context, employerID, recruiterID string) (*model.Contact, error) {
	var c model.Contact
	err := r.db.WithContext(ctx).
		Where("employer_id = ? AND recruiter_id = ?", employerID, recruiterID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepo) ListForUser(ctx context.Context, userID string, offset, limit int) ([]model.Contact, int64, error) {
	var contacts []model.Contact
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Contact{}).
		Where("employer_id = ? OR recruiter_id = ?", userID, userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employer").
		Preload("Recruiter").
		Offset(offset).Limit(limit).
		Order("created_at DESC, contact_id DESC").
		Find(&contacts).Error; err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}
