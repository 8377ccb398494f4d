package service

import (
	"go.uber.org/zap"

	"hireloop/backend/config"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/jwt"
	"hireloop/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Job          JobService
	Assignment   AssignmentService
	Submission   SubmissionService
	Contact      ContactService
	Notification NotificationService
	Migration    MigrationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Job:          NewJobService(repo, logger),
		Assignment:   NewAssignmentService(repo, logger),
		Submission:   NewSubmissionService(repo, logger),
		Contact:      NewContactService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Migration:    NewMigrationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
