package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// ── 通知模块业务错误 ──

var ErrNotificationNotFound = apperrors.New(apperrors.KindNotFound, "通知不存在")

// NotificationService 通知业务接口
type NotificationService interface {
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出通知失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出通知失败", err)
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, *toNotificationResponse(&notifications[i]))
	}
	return result, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("统计未读通知失败", zap.Error(err))
		return 0, apperrors.Wrap(apperrors.KindStorage, "统计未读通知失败", err)
	}
	return count, nil
}

// MarkRead 将通知置为已读；条件限定 user_id，别人的通知表现为不存在
func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	rows, err := s.repo.Notification.MarkRead(ctx, notificationID, userID)
	if err != nil {
		s.logger.Error("标记通知已读失败", zap.String("id", notificationID), zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "标记通知已读失败", err)
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		s.logger.Error("标记全部已读失败", zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "标记全部已读失败", err)
	}
	return nil
}

// ── 内部辅助方法 ──

func toNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:        n.NotificationID,
		Type:      n.Type,
		Title:     n.Title,
		Content:   n.Content,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedID != nil {
		resp.RelatedID = *n.RelatedID
	}
	return resp
}
