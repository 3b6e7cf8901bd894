package models

// Principal пользователь, от имени которого выполняется операция
type Principal struct {
	UserID  string
	Name    string
	IsAdmin bool
}

func (p Principal) Role() UserRole {
	return RoleByAdminFlag(p.IsAdmin)
}
