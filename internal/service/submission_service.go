package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// ── 推荐模块业务错误 ──

var (
	ErrSubmissionNotFound    = apperrors.New(apperrors.KindNotFound, "推荐不存在")
	ErrNotSubmissionParty    = apperrors.New(apperrors.KindForbidden, "无权查看该推荐")
	ErrNotAssignedRecruiter  = apperrors.New(apperrors.KindForbidden, "只有委托对应的猎头可以推荐候选人")
	ErrAssignmentNotAccepted = apperrors.New(apperrors.KindInvalidTransition, "委托尚未接受，不能推荐候选人")
	ErrNotCandidate          = apperrors.New(apperrors.KindValidation, "目标用户不是候选人")
	ErrDuplicateSubmission   = apperrors.New(apperrors.KindConflict, "该候选人已被推荐到此职位")
)

// SubmissionService 推荐业务接口
// 推荐以 accepted 委托为前置条件，创建后不可变更
type SubmissionService interface {
	SubmitCandidate(ctx context.Context, recruiterID string, req *dto.SubmitCandidateRequest) (*dto.SubmissionResponse, error)
	GetByID(ctx context.Context, callerID string, callerRole model.Role, id string) (*dto.SubmissionResponse, error)
	List(ctx context.Context, callerID string, callerRole model.Role, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

// ────────────────────── SubmitCandidate ──────────────────────

func (s *submissionService) SubmitCandidate(ctx context.Context, recruiterID string, req *dto.SubmitCandidateRequest) (*dto.SubmissionResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询委托失败", zap.String("id", req.AssignmentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询委托失败", err)
	}

	// 相关方守卫先于状态检查
	if assignment.RecruiterID != recruiterID {
		return nil, ErrNotAssignedRecruiter
	}
	if assignment.Status != model.AssignmentAccepted {
		return nil, ErrAssignmentNotAccepted
	}

	candidate, err := s.repo.User.GetByID(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCandidate
		}
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询用户失败", err)
	}
	if candidate.Role != model.RoleCandidate {
		return nil, ErrNotCandidate
	}

	// 同一候选人对同一职位只推荐一次（跨委托也算重复）；
	// 并发窗口由数据库唯一索引兜底
	exists, err := s.repo.Submission.ExistsForJobAndCandidate(ctx, assignment.JobID, req.CandidateID)
	if err != nil {
		s.logger.Error("查询推荐失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询推荐失败", err)
	}
	if exists {
		return nil, ErrDuplicateSubmission
	}

	submission := &model.Submission{
		AssignmentID:   assignment.AssignmentID,
		JobID:          assignment.JobID,
		CandidateID:    req.CandidateID,
		RecruiterID:    recruiterID,
		EmployerID:     assignment.EmployerID,
		RecruiterNotes: req.Notes,
	}

	if err := s.repo.Submission.Create(ctx, submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubmission
		}
		s.logger.Error("创建推荐失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "创建推荐失败", err)
	}

	s.logger.Info("候选人已推荐",
		zap.String("submission_id", submission.SubmissionID),
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("candidate_id", req.CandidateID),
	)

	jobTitle := ""
	if assignment.Job != nil {
		jobTitle = assignment.Job.Title
	}

	// 主效果已落库，通知尽力而为：雇主收到推荐、候选人收到被推荐告知
	emitNotification(ctx, s.repo, s.logger, assignment.EmployerID,
		model.NotifyCandidateSubmission,
		"收到新的候选人推荐",
		fmt.Sprintf("猎头向您的职位「%s」推荐了候选人 %s", jobTitle, candidate.Name),
		submission.SubmissionID)
	emitNotification(ctx, s.repo, s.logger, req.CandidateID,
		model.NotifyJobApplication,
		"您已被推荐到职位",
		fmt.Sprintf("猎头将您推荐到了职位「%s」", jobTitle),
		submission.SubmissionID)

	submission.Job = assignment.Job
	submission.Candidate = candidate
	submission.Recruiter = assignment.Recruiter
	return toSubmissionResponse(submission), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *submissionService) GetByID(ctx context.Context, callerID string, callerRole model.Role, id string) (*dto.SubmissionResponse, error) {
	submission, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询推荐失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询推荐失败", err)
	}

	if callerRole != model.RoleAdmin &&
		callerID != submission.EmployerID &&
		callerID != submission.RecruiterID &&
		callerID != submission.CandidateID {
		return nil, ErrNotSubmissionParty
	}

	return toSubmissionResponse(submission), nil
}

// ────────────────────── List ──────────────────────

func (s *submissionService) List(ctx context.Context, callerID string, callerRole model.Role, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	filters := &repository.SubmissionListFilters{JobID: req.JobID}

	// 按调用者角色限定可见范围
	switch callerRole {
	case model.RoleEmployer:
		filters.EmployerID = callerID
	case model.RoleRecruiter:
		filters.RecruiterID = callerID
	case model.RoleCandidate:
		filters.CandidateID = callerID
	case model.RoleAdmin:
		// 管理员可见全部
	default:
		return nil, 0, ErrNotSubmissionParty
	}

	submissions, total, err := s.repo.Submission.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出推荐失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出推荐失败", err)
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *toSubmissionResponse(&submissions[i]))
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

func toSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:             sub.SubmissionID,
		AssignmentID:   sub.AssignmentID,
		JobID:          sub.JobID,
		Candidate:      toUserBrief(sub.Candidate),
		Recruiter:      toUserBrief(sub.Recruiter),
		RecruiterNotes: sub.RecruiterNotes,
		SubmittedAt:    sub.SubmittedAt.Format(time.RFC3339),
	}
	if sub.Job != nil {
		resp.JobTitle = sub.Job.Title
	}
	return resp
}
