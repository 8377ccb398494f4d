package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// ── 测试辅助 ──

func setupTestAssignmentService() (AssignmentService, *repository.Repository, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewAssignmentService(repo, zap.NewNop())
	return svc, repo, mocks
}

// seedHireFixture 预置雇主、猎头和职位
func seedHireFixture(m *mockRepos) {
	m.user.users["emp-001"] = &model.User{UserID: "emp-001", Name: "张老板", Email: "boss@corp.cn", Role: model.RoleEmployer}
	m.user.users["rec-001"] = &model.User{UserID: "rec-001", Name: "李猎头", Email: "hunter@hh.cn", Role: model.RoleRecruiter}
	m.user.users["rec-002"] = &model.User{UserID: "rec-002", Name: "王猎头", Email: "hunter2@hh.cn", Role: model.RoleRecruiter}
	m.user.users["can-001"] = &model.User{UserID: "can-001", Name: "赵候选", Email: "dev@mail.cn", Role: model.RoleCandidate}
	m.job.jobs["job-001"] = &model.Job{JobID: "job-001", EmployerID: "emp-001", Title: "资深Go工程师", Status: model.JobStatusOpen}
}

// seedAssignment 预置一条指定状态的委托
func seedAssignment(m *mockRepos, id string, status model.AssignmentStatus) *model.Assignment {
	a := &model.Assignment{
		AssignmentID: id,
		JobID:        "job-001",
		EmployerID:   "emp-001",
		RecruiterID:  "rec-001",
		Status:       status,
		Version:      1,
	}
	m.assignment.assignments[id] = a
	m.assignment.order = append(m.assignment.order, id)
	return a
}

// ── HireRecruiter 测试 ──

func TestAssignmentService_HireRecruiter_Success(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)

	result, err := svc.HireRecruiter(context.Background(), "emp-001", &dto.HireRecruiterRequest{
		JobID:       "job-001",
		RecruiterID: "rec-001",
		Message:     "这个职位比较急，拜托了",
	})
	if err != nil {
		t.Fatalf("HireRecruiter 应成功: %v", err)
	}
	if result.Status != string(model.AssignmentPending) {
		t.Errorf("期望初始状态 pending，实际=%s", result.Status)
	}

	// 猎头应收到 job_assignment 通知
	notes := mocks.notification.forUser("rec-001")
	if len(notes) != 1 {
		t.Fatalf("期望猎头收到1条通知，实际=%d", len(notes))
	}
	if notes[0].Type != model.NotifyJobAssignment {
		t.Errorf("期望通知类型 %s，实际=%s", model.NotifyJobAssignment, notes[0].Type)
	}
}

func TestAssignmentService_HireRecruiter_NotJobOwner(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)

	_, err := svc.HireRecruiter(context.Background(), "rec-002", &dto.HireRecruiterRequest{
		JobID:       "job-001",
		RecruiterID: "rec-001",
	})
	if !errors.Is(err, ErrNotJobOwner) {
		t.Errorf("期望 ErrNotJobOwner，实际: %v", err)
	}
}

func TestAssignmentService_HireRecruiter_JobNotFound(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)

	_, err := svc.HireRecruiter(context.Background(), "emp-001", &dto.HireRecruiterRequest{
		JobID:       "job-999",
		RecruiterID: "rec-001",
	})
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("期望 ErrJobNotFound，实际: %v", err)
	}
}

func TestAssignmentService_HireRecruiter_TargetNotRecruiter(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)

	// 目标是候选人
	_, err := svc.HireRecruiter(context.Background(), "emp-001", &dto.HireRecruiterRequest{
		JobID:       "job-001",
		RecruiterID: "can-001",
	})
	if !errors.Is(err, ErrNotRecruiter) {
		t.Errorf("期望 ErrNotRecruiter，实际: %v", err)
	}
}

func TestAssignmentService_HireRecruiter_DuplicateLive(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	_, err := svc.HireRecruiter(context.Background(), "emp-001", &dto.HireRecruiterRequest{
		JobID:       "job-001",
		RecruiterID: "rec-001",
	})
	if !errors.Is(err, ErrDuplicateHire) {
		t.Errorf("期望 ErrDuplicateHire，实际: %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("期望 KindConflict，实际: %v", apperrors.KindOf(err))
	}
}

// 终态记录不阻止再次委托同一猎头
func TestAssignmentService_HireRecruiter_AfterDeclined(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentDeclined)

	result, err := svc.HireRecruiter(context.Background(), "emp-001", &dto.HireRecruiterRequest{
		JobID:       "job-001",
		RecruiterID: "rec-001",
	})
	if err != nil {
		t.Fatalf("拒绝后重新委托应成功: %v", err)
	}
	if result.Status != string(model.AssignmentPending) {
		t.Errorf("期望新委托状态 pending，实际=%s", result.Status)
	}
}

// ── Respond 测试 ──

func TestAssignmentService_Respond_Accept(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	result, err := svc.Respond(context.Background(), "rec-001", "asg-100", "accept")
	if err != nil {
		t.Fatalf("Respond accept 应成功: %v", err)
	}
	if result.Status != string(model.AssignmentAccepted) {
		t.Errorf("期望状态 accepted，实际=%s", result.Status)
	}
	if result.RespondedAt == "" {
		t.Error("接受后应记录 responded_at")
	}

	// 雇主应收到 assignment_response 通知
	notes := mocks.notification.forUser("emp-001")
	if len(notes) != 1 || notes[0].Type != model.NotifyAssignmentResponse {
		t.Errorf("期望雇主收到1条 assignment_response 通知，实际=%v", notes)
	}
}

func TestAssignmentService_Respond_Decline(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	result, err := svc.Respond(context.Background(), "rec-001", "asg-100", "decline")
	if err != nil {
		t.Fatalf("Respond decline 应成功: %v", err)
	}
	if result.Status != string(model.AssignmentDeclined) {
		t.Errorf("期望状态 declined，实际=%s", result.Status)
	}

	// 拒绝是终态，但记录保留
	if _, ok := mocks.assignment.assignments["asg-100"]; !ok {
		t.Error("拒绝后委托记录应保留")
	}
}

func TestAssignmentService_Respond_WrongRecruiter(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	_, err := svc.Respond(context.Background(), "rec-002", "asg-100", "accept")
	if !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("期望 ErrNotAssignmentParty，实际: %v", err)
	}
}

// 雇主不能替猎头响应，即使是委托相关方
func TestAssignmentService_Respond_ByEmployer(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	_, err := svc.Respond(context.Background(), "emp-001", "asg-100", "accept")
	if !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("期望 ErrNotAssignmentParty，实际: %v", err)
	}
}

func TestAssignmentService_Respond_AlreadyAccepted(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentAccepted)

	_, err := svc.Respond(context.Background(), "rec-001", "asg-100", "accept")
	if apperrors.KindOf(err) != apperrors.KindInvalidTransition {
		t.Errorf("重复接受应报状态机错误，实际: %v", err)
	}
}

func TestAssignmentService_Respond_Terminal(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentCompleted)

	_, err := svc.Respond(context.Background(), "rec-001", "asg-100", "decline")
	if apperrors.KindOf(err) != apperrors.KindInvalidTransition {
		t.Errorf("终态流转应报状态机错误，实际: %v", err)
	}
}

func TestAssignmentService_Respond_BadDecision(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	_, err := svc.Respond(context.Background(), "rec-001", "asg-100", "maybe")
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("非法 decision 应报参数错误，实际: %v", err)
	}
}

func TestAssignmentService_Respond_NotFound(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)

	_, err := svc.Respond(context.Background(), "rec-001", "asg-999", "accept")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

// ── Complete 测试 ──

func TestAssignmentService_Complete_Success(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentAccepted)

	result, err := svc.Complete(context.Background(), "emp-001", "asg-100")
	if err != nil {
		t.Fatalf("Complete 应成功: %v", err)
	}
	if result.Status != string(model.AssignmentCompleted) {
		t.Errorf("期望状态 completed，实际=%s", result.Status)
	}
	if result.CompletedAt == "" {
		t.Error("完成后应记录 completed_at")
	}

	// 职位状态应镜像为 hired
	if mocks.job.jobs["job-001"].Status != model.JobStatusHired {
		t.Errorf("期望职位状态 hired，实际=%s", mocks.job.jobs["job-001"].Status)
	}

	// 猎头应收到 assignment_status_update 通知
	notes := mocks.notification.forUser("rec-001")
	if len(notes) != 1 || notes[0].Type != model.NotifyAssignmentStatusUpdate {
		t.Errorf("期望猎头收到1条 assignment_status_update 通知，实际=%v", notes)
	}
}

func TestAssignmentService_Complete_FromPending(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	_, err := svc.Complete(context.Background(), "emp-001", "asg-100")
	if apperrors.KindOf(err) != apperrors.KindInvalidTransition {
		t.Errorf("pending 不能直接完成，实际: %v", err)
	}
	// 职位状态不应被改动
	if mocks.job.jobs["job-001"].Status != model.JobStatusOpen {
		t.Errorf("流转失败时职位状态不应改变，实际=%s", mocks.job.jobs["job-001"].Status)
	}
}

func TestAssignmentService_Complete_ByRecruiter(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentAccepted)

	_, err := svc.Complete(context.Background(), "rec-001", "asg-100")
	if !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("猎头不能确认完成，期望 ErrNotAssignmentParty，实际: %v", err)
	}
}

// 相关方守卫先于状态检查：错误执行方在终态上操作仍报 403 而非状态机错误
func TestAssignmentService_Complete_WrongActorOnTerminal(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentDeclined)

	_, err := svc.Complete(context.Background(), "rec-001", "asg-100")
	if !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("期望 ErrNotAssignmentParty，实际: %v", err)
	}
}

// 委托完成后，该职位下被推荐过的候选人收到 job_hired 通知
func TestAssignmentService_Complete_NotifiesSubmittedCandidates(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentAccepted)
	mocks.submission.submissions["sub-001"] = &model.Submission{
		SubmissionID: "sub-001", AssignmentID: "asg-100",
		JobID: "job-001", CandidateID: "can-001",
		RecruiterID: "rec-001", EmployerID: "emp-001",
		SubmittedAt: time.Now(),
	}
	mocks.submission.order = append(mocks.submission.order, "sub-001")

	if _, err := svc.Complete(context.Background(), "emp-001", "asg-100"); err != nil {
		t.Fatalf("Complete 应成功: %v", err)
	}

	notes := mocks.notification.forUser("can-001")
	if len(notes) != 1 || notes[0].Type != model.NotifyJobHired {
		t.Errorf("期望候选人收到1条 job_hired 通知，实际=%v", notes)
	}
}

// 通知写入失败不影响已提交的状态流转
func TestAssignmentService_Complete_NotificationFailureTolerated(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentAccepted)
	mocks.notification.createErr = errors.New("通知表不可用")

	result, err := svc.Complete(context.Background(), "emp-001", "asg-100")
	if err != nil {
		t.Fatalf("通知失败不应影响流转: %v", err)
	}
	if result.Status != string(model.AssignmentCompleted) {
		t.Errorf("期望状态 completed，实际=%s", result.Status)
	}
}

// ── GetByID / List 测试 ──

func TestAssignmentService_GetByID_PartyOnly(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)

	if _, err := svc.GetByID(context.Background(), "rec-001", model.RoleRecruiter, "asg-100"); err != nil {
		t.Errorf("相关方查看应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "rec-002", model.RoleRecruiter, "asg-100"); !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("非相关方查看应被拒绝，实际: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "admin-001", model.RoleAdmin, "asg-100"); err != nil {
		t.Errorf("管理员查看应成功: %v", err)
	}
}

func TestAssignmentService_List_RoleScoped(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentPending)
	// 另一个猎头的委托
	other := &model.Assignment{
		AssignmentID: "asg-101", JobID: "job-001",
		EmployerID: "emp-001", RecruiterID: "rec-002",
		Status: model.AssignmentDeclined, Version: 1,
	}
	mocks.assignment.assignments["asg-101"] = other
	mocks.assignment.order = append(mocks.assignment.order, "asg-101")

	req := &dto.AssignmentListRequest{}

	// 猎头只看到自己的
	result, total, err := svc.List(context.Background(), "rec-001", model.RoleRecruiter, req)
	if err != nil || total != 1 || len(result) != 1 {
		t.Errorf("猎头应只看到1条委托，total=%d err=%v", total, err)
	}

	// 雇主看到名下全部
	_, total, err = svc.List(context.Background(), "emp-001", model.RoleEmployer, req)
	if err != nil || total != 2 {
		t.Errorf("雇主应看到2条委托，total=%d err=%v", total, err)
	}

	// 候选人没有委托视角
	if _, _, err := svc.List(context.Background(), "can-001", model.RoleCandidate, req); !errors.Is(err, ErrNotAssignmentParty) {
		t.Errorf("候选人列表应被拒绝，实际: %v", err)
	}
}

// 状态过滤
func TestAssignmentService_List_StatusFilter(t *testing.T) {
	svc, _, mocks := setupTestAssignmentService()
	seedHireFixture(mocks)
	seedAssignment(mocks, "asg-100", model.AssignmentDeclined)

	req := &dto.AssignmentListRequest{Status: "declined"}
	_, total, err := svc.List(context.Background(), "emp-001", model.RoleEmployer, req)
	if err != nil || total != 1 {
		t.Errorf("应能按 declined 过滤出1条，total=%d err=%v", total, err)
	}
}
