package models

// MemberRole роль пользователя в заявке или подразделении
type MemberRole string

const (
	MemberRoleParticipant     MemberRole = "PARTICIPANT"
	MemberRoleRecruiter       MemberRole = "RECRUITER"
	MemberRoleCurrentApprover MemberRole = "CURRENT_APPROVER"
)

var memberRoleHumanName = map[MemberRole]string{
	MemberRoleParticipant:     "Участник",
	MemberRoleRecruiter:       "Рекрутер",
	MemberRoleCurrentApprover: "Текущий согласующий",
}

func (r MemberRole) ToHuman() string {
	if human, exist := memberRoleHumanName[r]; exist {
		return human
	}
	return string(r)
}
