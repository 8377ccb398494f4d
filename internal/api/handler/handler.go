package handler

import "hireloop/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Job          *JobHandler
	Assignment   *AssignmentHandler
	Submission   *SubmissionHandler
	Contact      *ContactHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Job:          NewJobHandler(svc.Job),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Submission:   NewSubmissionHandler(svc.Submission),
		Contact:      NewContactHandler(svc.Contact),
		Notification: NewNotificationHandler(svc.Notification),
		Admin:        NewAdminHandler(svc.Migration),
		Export:       NewExportHandler(svc.Export),
	}
}
