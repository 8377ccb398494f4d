package service

import (
	"context"

	"go.uber.org/zap"

	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
)

// emitNotification 创建通知（状态流转的次级副作用）
// 主效果（状态变更）已提交后调用：通知失败只记日志，不回滚、不向调用方报错
func emitNotification(ctx context.Context, repo *repository.Repository, logger *zap.Logger,
	recipientID, notifyType, title, content string, relatedID string) {

	n := &model.Notification{
		UserID:  recipientID,
		Type:    notifyType,
		Title:   title,
		Content: content,
	}
	if relatedID != "" {
		n.RelatedID = &relatedID
	}

	if err := repo.Notification.Create(ctx, n); err != nil {
		logger.Warn("创建通知失败（主效果已提交，不回滚）",
			zap.String("recipient_id", recipientID),
			zap.String("type", notifyType),
			zap.String("related_id", relatedID),
			zap.Error(err),
		)
	}
}
