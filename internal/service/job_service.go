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

// ── 职位模块业务错误 ──

var (
	ErrJobNotFound           = apperrors.New(apperrors.KindNotFound, "职位不存在")
	ErrNotJobOwner           = apperrors.New(apperrors.KindForbidden, "只有职位发布者可以操作")
	ErrJobHasLiveAssignments = apperrors.New(apperrors.KindConflict, "职位下存在进行中的委托，不能删除")
	ErrSalaryRange           = apperrors.New(apperrors.KindValidation, "薪资下限不能高于上限")
)

// JobService 职位业务接口
type JobService interface {
	Create(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(ctx context.Context, id string) (*dto.JobResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID string, callerRole model.Role) (*dto.JobResponse, error)
	// Delete 软删除职位；存在 pending/accepted 委托时拒绝
	Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error
	List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
	ListMine(ctx context.Context, employerID string, req *dto.JobListRequest) ([]dto.JobResponse, int64, error)
}

type jobService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJobService 创建 JobService 实例
func NewJobService(repo *repository.Repository, logger *zap.Logger) JobService {
	return &jobService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *jobService) Create(ctx context.Context, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, ErrSalaryRange
	}

	job := &model.Job{
		EmployerID:  employerID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Country:     req.Country,
		Remote:      req.Remote,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      model.JobStatusOpen,
		VersionedModel: model.VersionedModel{SoftDeleteModel: model.SoftDeleteModel{
			BaseModel: model.BaseModel{CreatedBy: &employerID},
		}},
	}

	if err := s.repo.Job.Create(ctx, job); err != nil {
		s.logger.Error("创建职位失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "创建职位失败", err)
	}

	return toJobResponse(job), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *jobService) GetByID(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询职位失败", err)
	}
	return toJobResponse(job), nil
}

// ────────────────────── Update ──────────────────────

func (s *jobService) Update(ctx context.Context, id string, req *dto.UpdateJobRequest, callerID string, callerRole model.Role) (*dto.JobResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询职位失败", err)
	}

	if callerRole != model.RoleAdmin && job.EmployerID != callerID {
		return nil, ErrNotJobOwner
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.Country != nil {
		job.Country = *req.Country
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, ErrSalaryRange
	}
	job.UpdatedBy = &callerID

	if err := s.repo.Job.Update(ctx, job); err != nil {
		s.logger.Error("更新职位失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "更新职位失败", err)
	}

	return toJobResponse(job), nil
}

// ────────────────────── Delete ──────────────────────

func (s *jobService) Delete(ctx context.Context, id string, callerID string, callerRole model.Role) error {
	job, err := s.repo.Job.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return apperrors.Wrap(apperrors.KindStorage, "查询职位失败", err)
	}

	if callerRole != model.RoleAdmin && job.EmployerID != callerID {
		return ErrNotJobOwner
	}

	// 有进行中的委托则拒绝删除，先结束委托再删
	live, err := s.repo.Assignment.CountLiveForJob(ctx, id)
	if err != nil {
		s.logger.Error("统计职位委托失败", zap.String("job_id", id), zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "统计职位委托失败", err)
	}
	if live > 0 {
		return ErrJobHasLiveAssignments
	}

	if err := s.repo.Job.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除职位失败", zap.String("id", id), zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "删除职位失败", err)
	}
	return nil
}

// ────────────────────── List / ListMine ──────────────────────

func (s *jobService) List(ctx context.Context, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return s.list(ctx, &repository.JobListFilters{
		Status:  req.Status,
		Keyword: req.Keyword,
	}, req)
}

func (s *jobService) ListMine(ctx context.Context, employerID string, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	return s.list(ctx, &repository.JobListFilters{
		EmployerID: employerID,
		Status:     req.Status,
		Keyword:    req.Keyword,
	}, req)
}

func (s *jobService) list(ctx context.Context, filters *repository.JobListFilters, req *dto.JobListRequest) ([]dto.JobResponse, int64, error) {
	jobs, total, err := s.repo.Job.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出职位失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出职位失败", err)
	}

	result := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		result = append(result, *toJobResponse(&jobs[i]))
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

func toJobResponse(job *model.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:          job.JobID,
		Title:       job.Title,
		Description: job.Description,
		City:        job.City,
		Country:     job.Country,
		Remote:      job.Remote,
		SalaryMin:   job.SalaryMin,
		SalaryMax:   job.SalaryMax,
		Status:      job.Status,
		Employer:    toUserBrief(job.Employer),
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
	}
}
