package requesthandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	requestflow "request-flow-backend/lib/request/flow"
	requestpolicy "request-flow-backend/lib/request/policy"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

// AddApprover добавляет согласующего в копию заявки. Для текущего этапа пересчитываются текущие согласующие.
func (i impl) AddApprover(actor models.Principal, id string, data requestapimodels.ApproverAddData) (*requestapimodels.StageApproverView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID).
		WithField("stage_id", data.StageID).
		WithField("approver_id", data.UserID)
	var result *requestapimodels.StageApproverView
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionManageApprovers); err != nil {
			return err
		}
		links, err := workflowLinks(s, *rec)
		if err != nil {
			return err
		}
		link, _ := requestflow.Locate(links, data.StageID)
		if link == nil {
			return models.ErrStageNotInWorkflow
		}
		user, err := s.users.GetByID(data.UserID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пользователя")
		}
		if user == nil {
			return models.ErrUserNotFound
		}
		for _, approver := range rec.StageApprovers {
			if approver.StageID == data.StageID && approver.UserID == data.UserID {
				return models.ErrApproverAlreadyExists
			}
		}
		newRec := dbmodels.RequestStageApprover{
			RequestRef: dbmodels.RequestRef{RequestID: rec.ID},
			StageID:    data.StageID,
			UserID:     data.UserID,
		}
		newRec.ID, err = s.approvers.Create(newRec)
		if err != nil {
			return errors.Wrap(err, "ошибка добавления согласующего")
		}
		if data.StageID == rec.StageID && rec.IsPending() {
			snapshot := requestflow.WithApprover(rec.StageApprovers, newRec)
			err = s.requests.SetMembers(rec.ID, models.MemberRoleCurrentApprover, requestflow.ApproversAtStage(snapshot, rec.StageID))
			if err != nil {
				return errors.Wrap(err, "ошибка обновления текущих согласующих")
			}
		}
		result = &requestapimodels.StageApproverView{
			ID:        newRec.ID,
			StageID:   newRec.StageID,
			StageName: link.GetStageName(),
			User:      requestapimodels.UserShortConvert(user, user.ID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("согласующий добавлен в заявку")
	return result, nil
}

// RemoveApprover у этапа должен остаться хотя бы один согласующий
func (i impl) RemoveApprover(actor models.Principal, id, approverID string) error {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID).
		WithField("request_stage_approver_id", approverID)
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionManageApprovers); err != nil {
			return err
		}
		var removed *dbmodels.RequestStageApprover
		remaining := []dbmodels.RequestStageApprover{}
		for idx := range rec.StageApprovers {
			if rec.StageApprovers[idx].ID == approverID {
				removed = &rec.StageApprovers[idx]
				continue
			}
			remaining = append(remaining, rec.StageApprovers[idx])
		}
		if removed == nil {
			return models.ErrApproverNotFound
		}
		if len(requestflow.ApproversAtStage(remaining, removed.StageID)) == 0 {
			return models.ErrMustRetainOneApprover
		}
		if err := s.approvers.Delete(rec.ID, approverID); err != nil {
			return errors.Wrap(err, "ошибка удаления согласующего")
		}
		if removed.StageID == rec.StageID && rec.IsPending() {
			err := s.requests.SetMembers(rec.ID, models.MemberRoleCurrentApprover, requestflow.ApproversAtStage(remaining, rec.StageID))
			if err != nil {
				return errors.Wrap(err, "ошибка обновления текущих согласующих")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("согласующий удален из заявки")
	return nil
}

type memberErrors struct {
	alreadyExists error
	doesNotExist  error
}

var memberErrorsByRole = map[models.MemberRole]memberErrors{
	models.MemberRoleParticipant: {alreadyExists: models.ErrParticipantAlreadyExists, doesNotExist: models.ErrParticipantDoesNotExist},
	models.MemberRoleRecruiter:   {alreadyExists: models.ErrRecruiterAlreadyExists, doesNotExist: models.ErrRecruiterDoesNotExist},
}

func (i impl) AddParticipant(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error) {
	return i.changeMember(actor, id, userID, models.MemberRoleParticipant, requestpolicy.ActionManageParticipants, true)
}

func (i impl) RemoveParticipant(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error) {
	return i.changeMember(actor, id, userID, models.MemberRoleParticipant, requestpolicy.ActionManageParticipants, false)
}

func (i impl) AddRecruiter(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error) {
	return i.changeMember(actor, id, userID, models.MemberRoleRecruiter, requestpolicy.ActionManageRecruiters, true)
}

func (i impl) RemoveRecruiter(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error) {
	return i.changeMember(actor, id, userID, models.MemberRoleRecruiter, requestpolicy.ActionManageRecruiters, false)
}

func (i impl) changeMember(actor models.Principal, id, userID string, role models.MemberRole, action requestpolicy.Action, add bool) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID).
		WithField("member_id", userID).
		WithField("role", role)
	if userID == "" {
		return nil, models.ErrEmptyUser
	}
	roleErrors := memberErrorsByRole[role]
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, action); err != nil {
			return err
		}
		exists := rec.HasMember(role, userID)
		if !add {
			if !exists {
				return roleErrors.doesNotExist
			}
			if err := s.requests.RemoveMember(rec.ID, userID, role); err != nil {
				return errors.Wrap(err, "ошибка удаления пользователя из заявки")
			}
			return nil
		}
		if exists {
			return roleErrors.alreadyExists
		}
		user, err := s.users.GetByID(userID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пользователя")
		}
		if user == nil {
			return models.ErrUserNotFound
		}
		if err = s.requests.AddMember(rec.ID, userID, role); err != nil {
			return errors.Wrap(err, "ошибка добавления пользователя в заявку")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if add {
		logger.Info("пользователь добавлен в заявку")
	} else {
		logger.Info("пользователь удален из заявки")
	}
	return i.afterCommit(actor, id, nil)
}
