package constant

// RoleLevel 买家角色等级（与用户表 role_level 一致）
type RoleLevel int8

const (
	RoleGuest  RoleLevel = 0 // 游客/普通买家，无自返
	RoleMember RoleLevel = 1 // 会员
	RoleLeader RoleLevel = 2 // 团长
	RoleAgent  RoleLevel = 3 // 代理
)

// Valid 角色等级是否合法
func (r RoleLevel) Valid() bool {
	return r >= RoleGuest && r <= RoleAgent
}

func (r RoleLevel) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleLeader:
		return "leader"
	case RoleAgent:
		return "agent"
	}
	return "unknown"
}
