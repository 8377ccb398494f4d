package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// legacyStatusMapping 旧表自由文本状态 → canonical 状态
// 旧表里 hired 表示"雇主已雇佣该猎头"，对应新语义的 accepted
var legacyStatusMapping = map[string]model.AssignmentStatus{
	"pending":   model.AssignmentPending,
	"hired":     model.AssignmentAccepted,
	"accepted":  model.AssignmentAccepted,
	"declined":  model.AssignmentDeclined,
	"completed": model.AssignmentCompleted,
}

// mapLegacyStatus 归一化并映射旧状态；不在词表内时落到 accepted 并标记
func mapLegacyStatus(raw string) (model.AssignmentStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := legacyStatusMapping[normalized]; ok {
		return mapped, true
	}
	return model.AssignmentAccepted, false
}

// MigrationService 旧表对账迁移接口
// 将历史 job_recruiters 记录折算进 canonical 的 assignments 表。
// 可重复执行：已存在同 (job, employer, recruiter) 委托的记录跳过。
type MigrationService interface {
	// Run 全量扫描旧表并迁移，返回逐条审计结果。
	// 单条失败（外键悬挂等）不中断整批；ctx 取消则中止并返回已处理部分的错误
	Run(ctx context.Context, batchSize int) (*dto.MigrationSummary, error)
	// Preview 只统计旧表规模，不做任何写入
	Preview(ctx context.Context) (int64, error)
}

type migrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMigrationService 创建 MigrationService 实例
func NewMigrationService(repo *repository.Repository, logger *zap.Logger) MigrationService {
	return &migrationService{repo: repo, logger: logger}
}

// ────────────────────── Run ──────────────────────

func (s *migrationService) Run(ctx context.Context, batchSize int) (*dto.MigrationSummary, error) {
	summary := &dto.MigrationSummary{}

	err := s.repo.JobRecruiter.ListInBatches(ctx, batchSize, func(records []model.JobRecruiter) error {
		for i := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := s.migrateOne(ctx, &records[i])
			summary.Total++
			switch result.Outcome {
			case dto.MigrationOutcomeMigrated, dto.MigrationOutcomeMappedDefault:
				summary.Migrated++
			case dto.MigrationOutcomeSkipped:
				summary.Skipped++
			case dto.MigrationOutcomeFailed:
				summary.Failed++
			}
			summary.Records = append(summary.Records, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("旧表迁移中止",
			zap.Int("processed", summary.Total), zap.Error(err))
		return summary, apperrors.Wrap(apperrors.KindStorage, "旧表迁移中止", err)
	}

	s.logger.Info("旧表迁移完成",
		zap.Int("total", summary.Total),
		zap.Int("migrated", summary.Migrated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// migrateOne 迁移单条旧记录，任何失败都收敛为审计结果不向上抛
func (s *migrationService) migrateOne(ctx context.Context, rec *model.JobRecruiter) dto.MigrationRecordResult {
	result := dto.MigrationRecordResult{
		LegacyID:     rec.ID,
		JobID:        rec.JobID,
		RecruiterID:  rec.RecruiterID,
		LegacyStatus: rec.Status,
	}

	// 旧记录指向的职位已不存在（悬挂外键），无法补出雇主
	if rec.Job == nil {
		result.Outcome = dto.MigrationOutcomeFailed
		result.Reason = "关联职位不存在或已删除"
		s.logger.Warn("旧记录迁移失败",
			zap.String("legacy_id", rec.ID), zap.String("reason", result.Reason))
		return result
	}
	employerID := rec.Job.EmployerID

	// 幂等检查：canonical 表已有同 (job, employer, recruiter) 委托则跳过
	exists, err := s.repo.Assignment.ExistsForTriple(ctx, rec.JobID, employerID, rec.RecruiterID)
	if err != nil {
		result.Outcome = dto.MigrationOutcomeFailed
		result.Reason = "查询委托失败: " + err.Error()
		return result
	}
	if exists {
		result.Outcome = dto.MigrationOutcomeSkipped
		result.Reason = "canonical 记录已存在"
		return result
	}

	mapped, known := mapLegacyStatus(rec.Status)
	result.MappedStatus = string(mapped)

	assignment := &model.Assignment{
		JobID:       rec.JobID,
		EmployerID:  employerID,
		RecruiterID: rec.RecruiterID,
		Message:     rec.Message,
		Status:      mapped,
		Version:     1,
	}
	// 保留旧记录的时间证据
	if rec.HiredAt != nil {
		switch mapped {
		case model.AssignmentAccepted, model.AssignmentDeclined:
			assignment.RespondedAt = rec.HiredAt
		case model.AssignmentCompleted:
			assignment.RespondedAt = rec.HiredAt
			assignment.CompletedAt = rec.HiredAt
		}
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		// 并发或同批重复记录撞上唯一索引，按幂等跳过
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			result.Outcome = dto.MigrationOutcomeSkipped
			result.Reason = "canonical 记录已存在"
			return result
		}
		result.Outcome = dto.MigrationOutcomeFailed
		result.Reason = "写入委托失败: " + err.Error()
		s.logger.Warn("旧记录迁移失败",
			zap.String("legacy_id", rec.ID), zap.Error(err))
		return result
	}

	if known {
		result.Outcome = dto.MigrationOutcomeMigrated
	} else {
		result.Outcome = dto.MigrationOutcomeMappedDefault
		result.Reason = "旧状态不在词表内，按 accepted 落库"
		s.logger.Warn("旧状态不在词表内",
			zap.String("legacy_id", rec.ID),
			zap.String("legacy_status", rec.Status),
		)
	}
	return result
}

// ────────────────────── Preview ──────────────────────

func (s *migrationService) Preview(ctx context.Context) (int64, error) {
	count, err := s.repo.JobRecruiter.Count(ctx)
	if err != nil {
		s.logger.Error("统计旧表失败", zap.Error(err))
		return 0, apperrors.Wrap(apperrors.KindStorage, "统计旧表失败", err)
	}
	return count, nil
}
