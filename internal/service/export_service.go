package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// exportMaxRows 单次导出的行数上限（全量导出走离线任务，不在这里做）
const exportMaxRows = 5000

// ExportService 报表导出接口
// 按调用者角色限定可见范围后，导出委托与推荐两张工作表
type ExportService interface {
	ExportReport(ctx context.Context, callerID string, callerRole model.Role) (*excelize.File, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportReport 生成 xlsx 报表，返回文件对象和建议文件名
func (s *exportService) ExportReport(ctx context.Context, callerID string, callerRole model.Role) (*excelize.File, string, error) {
	aFilters := &repository.AssignmentListFilters{}
	sFilters := &repository.SubmissionListFilters{}
	switch callerRole {
	case model.RoleEmployer:
		aFilters.EmployerID = callerID
		sFilters.EmployerID = callerID
	case model.RoleRecruiter:
		aFilters.RecruiterID = callerID
		sFilters.RecruiterID = callerID
	case model.RoleAdmin:
		// 管理员导出全部
	default:
		return nil, "", ErrNoPermission
	}

	assignments, _, err := s.repo.Assignment.List(ctx, aFilters, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("导出查询委托失败", zap.Error(err))
		return nil, "", apperrors.Wrap(apperrors.KindStorage, "导出查询委托失败", err)
	}
	submissions, _, err := s.repo.Submission.List(ctx, sFilters, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("导出查询推荐失败", zap.Error(err))
		return nil, "", apperrors.Wrap(apperrors.KindStorage, "导出查询推荐失败", err)
	}

	f := excelize.NewFile()

	if err := s.writeAssignmentSheet(f, assignments); err != nil {
		f.Close()
		return nil, "", apperrors.Wrap(apperrors.KindStorage, "生成委托工作表失败", err)
	}
	if err := s.writeSubmissionSheet(f, submissions); err != nil {
		f.Close()
		return nil, "", apperrors.Wrap(apperrors.KindStorage, "生成推荐工作表失败", err)
	}

	filename := fmt.Sprintf("hireloop_report_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}

// ── 内部辅助方法 ──

func (s *exportService) writeAssignmentSheet(f *excelize.File, assignments []model.Assignment) error {
	const sheet = "委托"
	// 默认工作表改名复用
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	headers := []string{"委托ID", "职位", "雇主", "猎头", "状态", "留言", "响应时间", "完成时间", "创建时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, a := range assignments {
		values := []interface{}{
			a.AssignmentID,
			jobTitleOf(a.Job),
			userNameOf(a.Employer),
			userNameOf(a.Recruiter),
			string(a.Status),
			a.Message,
			formatTimePtr(a.RespondedAt),
			formatTimePtr(a.CompletedAt),
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *exportService) writeSubmissionSheet(f *excelize.File, submissions []model.Submission) error {
	const sheet = "推荐"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"推荐ID", "委托ID", "职位", "候选人", "猎头", "备注", "推荐时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, sub := range submissions {
		values := []interface{}{
			sub.SubmissionID,
			sub.AssignmentID,
			jobTitleOf(sub.Job),
			userNameOf(sub.Candidate),
			userNameOf(sub.Recruiter),
			sub.RecruiterNotes,
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func jobTitleOf(job *model.Job) string {
	if job == nil {
		return ""
	}
	return job.Title
}

func userNameOf(user *model.User) string {
	if user == nil {
		return ""
	}
	return user.Name
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
