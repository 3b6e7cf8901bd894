package dictapimodels

import (
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type DepartmentData struct {
	Name string `json:"name" validate:"required"`
}

func (c DepartmentData) Validate() error {
	return apimodels.ValidateStruct(c)
}

// DepartmentMembersData полный список пользователей роли, заменяет текущий
type DepartmentMembersData struct {
	UserIDs []string `json:"user_ids" validate:"dive,required"`
}

func (c DepartmentMembersData) Validate() error {
	return apimodels.ValidateStruct(c)
}

type DepartmentMemberView struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type DepartmentView struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Participants []DepartmentMemberView `json:"participants"`
	Recruiters   []DepartmentMemberView `json:"recruiters"`
}

func departmentMembersConvert(list []dbmodels.DepartmentMember, role models.MemberRole) []DepartmentMemberView {
	result := []DepartmentMemberView{}
	for _, member := range list {
		if member.Role != role {
			continue
		}
		item := DepartmentMemberView{UserID: member.UserID}
		if member.User != nil {
			item.Name = member.User.GetName()
			item.Email = member.User.Email
		}
		result = append(result, item)
	}
	return result
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:           rec.ID,
		Name:         rec.Name,
		Participants: departmentMembersConvert(rec.Members, models.MemberRoleParticipant),
		Recruiters:   departmentMembersConvert(rec.Members, models.MemberRoleRecruiter),
	}
}
