package models

type UserRole string

const (
	AdminRole     UserRole = "ADMIN_ROLE"
	UserRoleBasic UserRole = "USER_ROLE"
)

var roleHumanName = map[UserRole]string{
	AdminRole:     "Администратор",
	UserRoleBasic: "Пользователь",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

func RoleByAdminFlag(isAdmin bool) UserRole {
	if isAdmin {
		return AdminRole
	}
	return UserRoleBasic
}

const SystemUser = "Система"
