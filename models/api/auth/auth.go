package authapimodels

import (
	"request-flow-backend/models"
)

type MeView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	IsAdmin  bool            `json:"is_admin"`
	Role     models.UserRole `json:"role"`
	RoleName string          `json:"role_name"`
}

func MeConvert(principal models.Principal) MeView {
	role := principal.Role()
	return MeView{
		ID:       principal.UserID,
		Name:     principal.Name,
		IsAdmin:  principal.IsAdmin,
		Role:     role,
		RoleName: role.ToHuman(),
	}
}

type PermissionsView struct {
	Role        models.UserRole                       `json:"role"`
	RoleName    string                                `json:"role_name"`
	Permissions map[models.Module][]models.Permission `json:"permissions"` // модуль - список прав роли
}
