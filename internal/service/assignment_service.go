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

// ── 委托模块业务错误 ──

var (
	ErrAssignmentNotFound = apperrors.New(apperrors.KindNotFound, "委托不存在")
	ErrNotAssignmentParty = apperrors.New(apperrors.KindForbidden, "无权操作该委托")
	ErrNotRecruiter       = apperrors.New(apperrors.KindValidation, "目标用户不是猎头")
	ErrDuplicateHire      = apperrors.New(apperrors.KindConflict, "该职位已向此猎头发起过委托且尚未结束")
)

// invalidTransition 构造状态机拒绝错误（统一文案，便于排查）
func invalidTransition(from, to model.AssignmentStatus) error {
	return apperrors.New(apperrors.KindInvalidTransition,
		fmt.Sprintf("当前状态 %s 不允许流转到 %s", from, to))
}

// AssignmentService 委托业务接口
// 状态机：pending → accepted/declined（猎头），accepted → completed（雇主）；
// 终态记录保留不删除
type AssignmentService interface {
	// HireRecruiter 雇主对自己的职位向猎头发起委托（初始态 pending）
	HireRecruiter(ctx context.Context, employerID string, req *dto.HireRecruiterRequest) (*dto.AssignmentResponse, error)
	// Respond 猎头接受或拒绝 pending 委托
	Respond(ctx context.Context, recruiterID string, assignmentID string, decision string) (*dto.AssignmentResponse, error)
	// Complete 雇主将 accepted 委托标记为完成，并镜像职位状态为 hired
	Complete(ctx context.Context, employerID string, assignmentID string) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, callerID string, callerRole model.Role, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, callerID string, callerRole model.Role, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── HireRecruiter ──────────────────────

func (s *assignmentService) HireRecruiter(ctx context.Context, employerID string, req *dto.HireRecruiterRequest) (*dto.AssignmentResponse, error) {
	job, err := s.repo.Job.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		s.logger.Error("查询职位失败", zap.String("job_id", req.JobID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询职位失败", err)
	}
	if job.EmployerID != employerID {
		return nil, ErrNotJobOwner
	}

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

	// 先行检查非终态唯一；并发窗口由数据库部分唯一索引兜底
	exists, err := s.repo.Assignment.ExistsLivePair(ctx, req.JobID, req.RecruiterID)
	if err != nil {
		s.logger.Error("查询委托失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询委托失败", err)
	}
	if exists {
		return nil, ErrDuplicateHire
	}

	assignment := &model.Assignment{
		JobID:       req.JobID,
		EmployerID:  employerID,
		RecruiterID: req.RecruiterID,
		Message:     req.Message,
		Status:      model.AssignmentPending,
		BaseModel:   model.BaseModel{CreatedBy: &employerID},
		Version:     1,
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateHire
		}
		s.logger.Error("创建委托失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "创建委托失败", err)
	}

	s.logger.Info("委托已创建",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("job_id", req.JobID),
		zap.String("employer_id", employerID),
		zap.String("recruiter_id", req.RecruiterID),
	)

	// 主效果已落库，通知尽力而为
	emitNotification(ctx, s.repo, s.logger, req.RecruiterID,
		model.NotifyJobAssignment,
		"收到新的招募委托",
		fmt.Sprintf("雇主邀请您负责职位「%s」的招募", job.Title),
		assignment.AssignmentID)

	assignment.Job = job
	assignment.Recruiter = recruiter
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Respond ──────────────────────

func (s *assignmentService) Respond(ctx context.Context, recruiterID string, assignmentID string, decision string) (*dto.AssignmentResponse, error) {
	var to model.AssignmentStatus
	switch decision {
	case "accept":
		to = model.AssignmentAccepted
	case "decline":
		to = model.AssignmentDeclined
	default:
		return nil, apperrors.New(apperrors.KindValidation, "decision 必须为 accept 或 decline")
	}

	assignment, err := s.transition(ctx, recruiterID, assignmentID, to)
	if err != nil {
		return nil, err
	}

	var title, content string
	if to == model.AssignmentAccepted {
		title = "猎头已接受委托"
		content = "猎头已接受您的招募委托，可以开始推荐候选人"
	} else {
		title = "猎头已拒绝委托"
		content = "猎头拒绝了您的招募委托，您可以委托其他猎头"
	}
	emitNotification(ctx, s.repo, s.logger, assignment.EmployerID,
		model.NotifyAssignmentResponse, title, content, assignment.AssignmentID)

	return s.GetByID(ctx, recruiterID, model.RoleRecruiter, assignmentID)
}

// ────────────────────── Complete ──────────────────────

func (s *assignmentService) Complete(ctx context.Context, employerID string, assignmentID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.transition(ctx, employerID, assignmentID, model.AssignmentCompleted)
	if err != nil {
		return nil, err
	}

	emitNotification(ctx, s.repo, s.logger, assignment.RecruiterID,
		model.NotifyAssignmentStatusUpdate,
		"委托已完成",
		"雇主已确认本次招募委托完成",
		assignment.AssignmentID)

	// 通知该职位下已被推荐的候选人
	s.notifyJobHired(ctx, assignment.JobID)

	return s.GetByID(ctx, employerID, model.RoleEmployer, assignmentID)
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, callerID string, callerRole model.Role, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询委托失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询委托失败", err)
	}

	if callerRole != model.RoleAdmin && !assignment.IsParty(callerID) {
		return nil, ErrNotAssignmentParty
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, callerID string, callerRole model.Role, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error) {
	filters := &repository.AssignmentListFilters{
		JobID:  req.JobID,
		Status: model.AssignmentStatus(req.Status),
	}

	// 按调用者角色限定可见范围
	switch callerRole {
	case model.RoleEmployer:
		filters.EmployerID = callerID
	case model.RoleRecruiter:
		filters.RecruiterID = callerID
	case model.RoleAdmin:
		// 管理员可见全部
	default:
		return nil, 0, ErrNotAssignmentParty
	}

	assignments, total, err := s.repo.Assignment.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出委托失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出委托失败", err)
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

// transition 在单事务内执行一次状态流转：
// 行锁读取 → 相关方守卫（先于状态检查）→ 状态机检查 → 乐观锁更新。
// completed 流转额外在同一事务内将职位状态镜像为 hired。
// 返回流转后的委托（不含关联预加载）。
func (s *assignmentService) transition(ctx context.Context, actorID string, assignmentID string, to model.AssignmentStatus) (*model.Assignment, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "开启事务失败", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	txRepo := tx.Repo()

	assignment, err := txRepo.Assignment.GetByIDForUpdate(ctx, assignmentID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("锁定委托失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询委托失败", err)
	}

	// 相关方守卫先于状态检查：非对应执行方一律 403，不泄露状态信息
	var expectedActor string
	if model.TransitionActorRole(to) == model.RoleRecruiter {
		expectedActor = assignment.RecruiterID
	} else {
		expectedActor = assignment.EmployerID
	}
	if actorID != expectedActor {
		tx.Rollback()
		return nil, ErrNotAssignmentParty
	}

	if !model.CanTransition(assignment.Status, to) {
		tx.Rollback()
		return nil, invalidTransition(assignment.Status, to)
	}

	from := assignment.Status
	now := time.Now()
	assignment.Status = to
	switch to {
	case model.AssignmentAccepted, model.AssignmentDeclined:
		assignment.RespondedAt = &now
	case model.AssignmentCompleted:
		assignment.CompletedAt = &now
	}

	rows, err := txRepo.Assignment.UpdateStatus(ctx, assignment, actorID)
	if err != nil {
		tx.Rollback()
		s.logger.Error("更新委托状态失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "更新委托状态失败", err)
	}
	if rows == 0 {
		// 版本已被并发流转抢先（行锁下理论上不会发生，兜底保护）
		tx.Rollback()
		return nil, invalidTransition(from, to)
	}

	if to == model.AssignmentCompleted {
		if err := txRepo.Job.UpdateStatus(ctx, assignment.JobID, model.JobStatusHired, actorID); err != nil {
			tx.Rollback()
			s.logger.Error("镜像职位状态失败", zap.String("job_id", assignment.JobID), zap.Error(err))
			return nil, apperrors.Wrap(apperrors.KindStorage, "更新职位状态失败", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "提交事务失败", err)
	}

	assignment.Version++
	s.logger.Info("委托状态已流转",
		zap.String("assignment_id", assignmentID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actorID),
	)
	return assignment, nil
}

// notifyJobHired 职位完成招聘后，向该职位下被推荐过的候选人发送通知。
// 与主流转解耦，失败只记日志。
func (s *assignmentService) notifyJobHired(ctx context.Context, jobID string) {
	submissions, _, err := s.repo.Submission.List(ctx,
		&repository.SubmissionListFilters{JobID: jobID}, 0, 200)
	if err != nil {
		s.logger.Warn("查询职位推荐失败，跳过候选人通知",
			zap.String("job_id", jobID), zap.Error(err))
		return
	}

	seen := make(map[string]struct{}, len(submissions))
	for i := range submissions {
		sub := &submissions[i]
		if _, ok := seen[sub.CandidateID]; ok {
			continue
		}
		seen[sub.CandidateID] = struct{}{}
		emitNotification(ctx, s.repo, s.logger, sub.CandidateID,
			model.NotifyJobHired,
			"职位已完成招聘",
			"您被推荐的职位已完成招聘",
			sub.JobID)
	}
}

func toAssignmentResponse(a *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		ID:        a.AssignmentID,
		JobID:     a.JobID,
		Message:   a.Message,
		Status:    string(a.Status),
		Employer:  toUserBrief(a.Employer),
		Recruiter: toUserBrief(a.Recruiter),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Job != nil {
		resp.JobTitle = a.Job.Title
	}
	if a.RespondedAt != nil {
		resp.RespondedAt = a.RespondedAt.Format(time.RFC3339)
	}
	if a.CompletedAt != nil {
		resp.CompletedAt = a.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
