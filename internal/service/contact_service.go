package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// ── 人脉模块业务错误 ──

var (
	ErrContactNotFound     = apperrors.New(apperrors.KindNotFound, "人脉请求不存在")
	ErrNotContactRecipient = apperrors.New(apperrors.KindForbidden, "只有被请求的猎头可以接受")
)

// ContactService 人脉业务接口
// 雇主对猎头的职业网络关系，与具体职位无关；重复请求幂等返回已有记录
type ContactService interface {
	Request(ctx context.Context, employerID string, req *dto.ContactRequest) (*dto.ContactResponse, error)
	Accept(ctx context.Context, recruiterID string, contactID string) (*dto.ContactResponse, error)
	List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.ContactResponse, int64, error)
}

type contactService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewContactService 创建 ContactService 实例
func NewContactService(repo *repository.Repository, logger *zap.Logger) ContactService {
	return &contactService{repo: repo, logger: logger}
}

// ────────────────────── Request ──────────────────────

func (s *contactService) Request(ctx context.Context, employerID string, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	recruiter, err := s.repo.User.GetByID(ctx, req.RecruiterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRecruiter
		}
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询用户失败", err)
	}
	if recruiter.Role != model.RoleRecruiter {
		return nil, ErrNotRecruiter
	}

	// 已有记录则幂等返回，不报错、不重复通知
	if existing, err := s.repo.Contact.GetByPair(ctx, employerID, req.RecruiterID); err == nil {
		return toContactResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询人脉失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询人脉失败", err)
	}

	contact := &model.Contact{
		EmployerID:  employerID,
		RecruiterID: req.RecruiterID,
		Status:      model.ContactPending,
		BaseModel:   model.BaseModel{CreatedBy: &employerID},
	}

	if err := s.repo.Contact.Create(ctx, contact); err != nil {
		// 并发重复请求撞上唯一索引，按幂等处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, gerr := s.repo.Contact.GetByPair(ctx, employerID, req.RecruiterID); gerr == nil {
				return toContactResponse(existing), nil
			}
		}
		s.logger.Error("创建人脉失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "创建人脉失败", err)
	}

	emitNotification(ctx, s.repo, s.logger, req.RecruiterID,
		model.NotifyContactRequest,
		"收到新的人脉请求",
		"有雇主希望与您建立联系",
		contact.ContactID)

	contact.Recruiter = recruiter
	return toContactResponse(contact), nil
}

// ────────────────────── Accept ──────────────────────

func (s *contactService) Accept(ctx context.Context, recruiterID string, contactID string) (*dto.ContactResponse, error) {
	contact, err := s.repo.Contact.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		s.logger.Error("查询人脉失败", zap.String("id", contactID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询人脉失败", err)
	}

	if contact.RecruiterID != recruiterID {
		return nil, ErrNotContactRecipient
	}

	// 重复接受幂等返回
	if contact.Status == model.ContactAccepted {
		return toContactResponse(contact), nil
	}

	contact.Status = model.ContactAccepted
	contact.UpdatedBy = &recruiterID
	if err := s.repo.Contact.Update(ctx, contact); err != nil {
		s.logger.Error("更新人脉失败", zap.String("id", contactID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "更新人脉失败", err)
	}

	emitNotification(ctx, s.repo, s.logger, contact.EmployerID,
		model.NotifyContactAccepted,
		"人脉请求已接受",
		"猎头已接受您的人脉请求",
		contact.ContactID)

	return toContactResponse(contact), nil
}

// ────────────────────── List ──────────────────────

func (s *contactService) List(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.ContactResponse, int64, error) {
	contacts, total, err := s.repo.Contact.ListForUser(ctx, userID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出人脉失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出人脉失败", err)
	}

	result := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		result = append(result, *toContactResponse(&contacts[i]))
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

func toContactResponse(c *model.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        c.ContactID,
		Status:    c.Status,
		Employer:  toUserBrief(c.Employer),
		Recruiter: toUserBrief(c.Recruiter),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
