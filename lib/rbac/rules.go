package rbac

import (
	"request-flow-backend/models"
)

var (
	AdminRoleSet = []models.UserRole{models.AdminRole}
	AllRoles     = []models.UserRole{models.AdminRole, models.UserRoleBasic}
)

// права на уровне маршрутов, проверки по конкретной заявке выполняет обработчик заявок
func (i *impl) initRules() {
	i.usersRules()
	i.requestRules()
	i.commentRules()
	i.dictRules()
}

func (i *impl) usersRules() {
	//VIEW
	i.mustRegister(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/user [get]")
	i.mustRegister(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/user/{id} [get]")
	i.mustRegister(models.UsersModule, models.EditPermission, AllRoles, "/api/v1/user/{id}/preferences [put]")
	//MANAGE
	i.mustRegister(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/user [post]")
	i.mustRegister(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/user/{id} [delete]")
	i.mustRegister(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/user/{id}/admin [put]")
}

func (i *impl) requestRules() {
	//VIEW
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/list [post]")
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/export [post]")
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/{id} [get]")
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/{id}/pdf [get]")
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/{id}/events [get]")
	i.mustRegister(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/request/{id}/timeline [get]")
	//CREATE/EDIT
	i.mustRegister(models.RequestModule, models.CreatePermission, AllRoles, "/api/v1/request [post]")
	i.mustRegister(models.RequestModule, models.EditPermission, AllRoles, "/api/v1/request/{id}/fields [put]")
	//FLOW
	i.mustRegister(models.RequestModule, models.FlowPermission, AllRoles, "/api/v1/request/{id}/approve [post]")
	i.mustRegister(models.RequestModule, models.FlowPermission, AllRoles, "/api/v1/request/{id}/reject [post]")
	i.mustRegister(models.RequestModule, models.FlowPermission, AllRoles, "/api/v1/request/{id}/reopen [post]")
	//TEAM
	i.mustRegister(models.RequestModule, models.TeamPermission, AllRoles, "/api/v1/request/{id}/participants [post]")
	i.mustRegister(models.RequestModule, models.TeamPermission, AllRoles, "/api/v1/request/{id}/participants/{userId} [delete]")
	i.mustRegister(models.RequestModule, models.ManagePermission, AdminRoleSet, "/api/v1/request/{id}/recruiters [post]")
	i.mustRegister(models.RequestModule, models.ManagePermission, AdminRoleSet, "/api/v1/request/{id}/recruiters/{userId} [delete]")
	//APPROVERS
	i.mustRegister(models.ApproverModule, models.ManagePermission, AdminRoleSet, "/api/v1/request/{id}/approvers [post]")
	i.mustRegister(models.ApproverModule, models.ManagePermission, AdminRoleSet, "/api/v1/request/{id}/approvers/{approverId} [delete]")
}

func (i *impl) commentRules() {
	i.mustRegister(models.CommentModule, models.ViewPermission, AllRoles, "/api/v1/request/{id}/comments [get]")
	i.mustRegister(models.CommentModule, models.CreatePermission, AllRoles, "/api/v1/request/{id}/comments [post]")
	i.mustRegister(models.CommentModule, models.EditPermission, AllRoles, "/api/v1/request/{id}/comments/{commentId} [put]")
	i.mustRegister(models.CommentModule, models.EditPermission, AllRoles, "/api/v1/request/{id}/comments/{commentId} [delete]")
}

var dictPaths = []string{
	"stage",
	"workflow",
	"department",
	"department_approver",
	"request_type",
	"request_field",
	"request_status",
}

// dictRules справочники читают все, изменяет администратор
func (i *impl) dictRules() {
	for _, name := range dictPaths {
		base := "/api/v1/dict/" + name
		i.mustRegister(models.DictModule, models.ViewPermission, AllRoles, base+" [get]")
		i.mustRegister(models.DictModule, models.ViewPermission, AllRoles, base+"/{id} [get]")
		for _, pattern := range []string{
			base + " [post]",
			base + " [put]",
			base + "/{id} [put]",
			base + "/{id} [delete]",
			base + "/{id}/{part} [post]",
			base + "/{id}/{part} [put]",
			base + "/{id}/{part}/{partID} [put]",
			base + "/{id}/{part}/{partID} [delete]",
		} {
			i.mustRegister(models.DictModule, models.ManagePermission, AdminRoleSet, pattern)
		}
	}
	i.mustRegister(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/department_approver/list [post]")
	i.mustRegister(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/request_field/by_type/{id} [get]")
}
