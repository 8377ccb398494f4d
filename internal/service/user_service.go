package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hireloop/backend/internal/dto"
	"hireloop/backend/internal/model"
	"hireloop/backend/internal/repository"
	"hireloop/backend/pkg/apperrors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound   = apperrors.New(apperrors.KindNotFound, "用户不存在")
	ErrUserSelfDelete = apperrors.New(apperrors.KindValidation, "不能删除自己")
	ErrNoPermission   = apperrors.New(apperrors.KindForbidden, "无权操作")
)

// UserService 用户业务接口
type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string, callerRole model.Role) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error)
}

// ImportUserRow Excel 导入解析后的单行数据
type ImportUserRow struct {
	Row     int
	Name    string
	Email   string
	Role    string
	Company string
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询用户失败", err)
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{Keyword: req.Keyword}
	if req.Role != "" {
		role, ok := model.ParseRole(req.Role)
		if !ok {
			return nil, 0, ErrInvalidRole
		}
		filters.Role = role
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.KindStorage, "列出用户失败", err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string, callerRole model.Role) (*dto.UserResponse, error) {
	// 非管理员只能修改自己
	if callerRole != model.RoleAdmin && callerID != id {
		return nil, ErrNoPermission
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "查询用户失败", err)
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Headline != nil {
		user.Headline = *req.Headline
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindStorage, "更新用户失败", err)
	}

	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "查询用户失败", err)
	}

	if err := s.repo.User.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return apperrors.Wrap(apperrors.KindStorage, "删除用户失败", err)
	}
	return nil
}

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = apperrors.New(apperrors.KindValidation, "Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = apperrors.New(apperrors.KindValidation, fmt.Sprintf("数据行数超过上限 %d 行", maxImportRows))
	ErrImportBadHeader   = apperrors.New(apperrors.KindValidation, "Excel表头缺少必要列（姓名/邮箱/角色）")
)

// ParseImportFile 解析导入 Excel 文件，返回解析后的行数据
func (s *userService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "无法解析Excel文件", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "读取工作表失败", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 解析表头（支持灵活列序）
	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 || colIndex["role"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportUserRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["email"]; idx < len(row) {
			item.Email = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["role"]; idx < len(row) {
			item.Role = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["company"]; idx >= 0 && idx < len(row) {
			item.Company = strings.TrimSpace(row[idx])
		}

		// 跳过全空行
		if item.Name == "" && item.Email == "" && item.Role == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex 解析 Excel 表头，返回列名 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":    -1,
		"email":   -1,
		"role":    -1,
		"company": -1,
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case lower == "姓名" || lower == "name":
			idx["name"] = i
		case lower == "邮箱" || lower == "email":
			idx["email"] = i
		case lower == "角色" || lower == "role":
			idx["role"] = i
		case lower == "公司" || lower == "company":
			idx["company"] = i
		}
	}
	return idx
}

// ────────────────────── ImportUsers ──────────────────────

// ImportUsers 批量导入用户
// 第一阶段逐行校验（角色合法、邮箱未占用），第二阶段在事务中批量写入：
// 校验失败的行计入 Errors 不阻断其他行；写入阶段任一失败则整批回滚
func (s *userService) ImportUsers(ctx context.Context, rows []ImportUserRow, callerID string) (*dto.ImportUserResponse, error) {
	resp := &dto.ImportUserResponse{Total: len(rows)}

	type validatedRow struct {
		row  ImportUserRow
		role model.Role
		hash []byte
	}
	var validRows []validatedRow

	for _, row := range rows {
		if row.Name == "" || row.Email == "" || row.Role == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: "必填字段为空",
			})
			continue
		}

		role, ok := model.ParseRole(row.Role)
		if !ok || role == model.RoleAdmin {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: fmt.Sprintf("非法角色: %s", row.Role),
			})
			continue
		}

		// 检查邮箱唯一性
		if _, err := s.repo.User.GetByEmail(ctx, row.Email); err == nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: fmt.Sprintf("邮箱已存在: %s", row.Email),
			})
			continue
		}

		// 默认密码 = "Hl" + 邮箱 @ 前缀后6位（首次登录需修改）
		defaultPwd := row.Email
		if at := strings.Index(defaultPwd, "@"); at > 0 {
			defaultPwd = defaultPwd[:at]
		}
		if len(defaultPwd) > 6 {
			defaultPwd = defaultPwd[len(defaultPwd)-6:]
		}
		defaultPwd = "Hl" + defaultPwd

		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPwd), bcrypt.DefaultCost)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportUserError{
				Row: row.Row, Reason: "密码哈希失败",
			})
			continue
		}

		validRows = append(validRows, validatedRow{row: row, role: role, hash: hash})
	}

	// 在事务中批量创建所有通过校验的用户
	if len(validRows) > 0 {
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

		for _, vr := range validRows {
			user := &model.User{
				Name:         vr.row.Name,
				Email:        vr.row.Email,
				PasswordHash: string(vr.hash),
				Role:         vr.role,
				Company:      vr.row.Company,
				VersionedModel: model.VersionedModel{SoftDeleteModel: model.SoftDeleteModel{
					BaseModel: model.BaseModel{CreatedBy: &callerID},
				}},
			}

			if err := txRepo.User.Create(ctx, user); err != nil {
				// 事务中任一写入失败则全部回滚
				tx.Rollback()
				s.logger.Error("导入用户写入失败，事务回滚",
					zap.Int("row", vr.row.Row), zap.Error(err))
				return nil, apperrors.Wrap(apperrors.KindStorage,
					fmt.Sprintf("第 %d 行写入数据库失败，已回滚全部导入", vr.row.Row), err)
			}
			resp.Success++
		}

		if err := tx.Commit(); err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, apperrors.Wrap(apperrors.KindStorage, "提交事务失败", err)
		}
	}

	return resp, nil
}

// ── 内部辅助方法 ──

// toUserResponse 将 model.User 转换为 dto.UserResponse
func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     string(user.Role),
		Company:  user.Company,
		Headline: user.Headline,
	}
}

// toUserBrief 将 model.User 转换为 dto.UserBrief（可为 nil）
func toUserBrief(user *model.User) *dto.UserBrief {
	if user == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:      user.UserID,
		Name:    user.Name,
		Role:    string(user.Role),
		Company: user.Company,
	}
}
