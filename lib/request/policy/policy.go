package requestpolicy

import (
	requestflow "request-flow-backend/lib/request/flow"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

type Action string

const (
	ActionView               Action = "VIEW"
	ActionUpdateFields       Action = "UPDATE_FIELDS"
	ActionApprove            Action = "APPROVE"
	ActionReject             Action = "REJECT"
	ActionReopen             Action = "REOPEN"
	ActionManageApprovers    Action = "MANAGE_APPROVERS"
	ActionManageParticipants Action = "MANAGE_PARTICIPANTS"
	ActionManageRecruiters   Action = "MANAGE_RECRUITERS"
	ActionComment            Action = "COMMENT"
)

// CanActOnRequest единая проверка прав на действие с заявкой.
// Для заявки должны быть загружены Members и StageApprovers.
func CanActOnRequest(principal models.Principal, rec dbmodels.Request, action Action) bool {
	if principal.UserID == "" {
		return false
	}
	switch action {
	case ActionUpdateFields:
		return true
	case ActionApprove:
		return rec.HasMember(models.MemberRoleCurrentApprover, principal.UserID)
	case ActionReject, ActionReopen:
		return requestflow.IsSnapshotApprover(rec.StageApprovers, principal.UserID)
	case ActionManageApprovers, ActionManageRecruiters:
		return principal.IsAdmin
	case ActionManageParticipants:
		return principal.IsAdmin || isApprover(principal, rec) || isMember(principal, rec)
	case ActionView, ActionComment:
		return principal.IsAdmin || rec.CreatorID == principal.UserID || isApprover(principal, rec) || isMember(principal, rec)
	}
	return false
}

// Check возвращает ошибку предметной области для запрещённого действия
func Check(principal models.Principal, rec dbmodels.Request, action Action) error {
	if CanActOnRequest(principal, rec, action) {
		return nil
	}
	switch action {
	case ActionApprove, ActionReject, ActionReopen:
		return models.ErrNotAnApprover
	}
	return models.ErrUnauthorized
}

func isApprover(principal models.Principal, rec dbmodels.Request) bool {
	return rec.HasMember(models.MemberRoleCurrentApprover, principal.UserID) ||
		requestflow.IsSnapshotApprover(rec.StageApprovers, principal.UserID)
}

func isMember(principal models.Principal, rec dbmodels.Request) bool {
	return rec.HasMember(models.MemberRoleParticipant, principal.UserID) ||
		rec.HasMember(models.MemberRoleRecruiter, principal.UserID)
}
