package model

import "strings"

// Role 用户角色（封闭集合）
// 旧系统以自由字符串存储角色且大小写比较不一致（"Employer" vs "employer"），
// 这里收敛为常量集合，边界处统一用 ParseRole 归一化。
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

// ParseRole 将外部输入归一化为合法角色；非法输入返回 false
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEmployer:
		return RoleEmployer, true
	case RoleRecruiter:
		return RoleRecruiter, true
	case RoleCandidate:
		return RoleCandidate, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// String 实现 fmt.Stringer
func (r Role) String() string { return string(r) }
