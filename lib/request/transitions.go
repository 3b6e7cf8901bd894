package requesthandler

import (
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/lib/metrics"
	"request-flow-backend/lib/notify"
	"request-flow-backend/lib/request/fieldvalue"
	requestflow "request-flow-backend/lib/request/flow"
	requestpolicy "request-flow-backend/lib/request/policy"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

const actionCreate = "CREATE"

func (i impl) Create(actor models.Principal, data requestapimodels.RequestCreateData) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("user_id", actor.UserID).
		WithField("request_type_id", data.RequestTypeID).
		WithField("department_id", data.DepartmentID)
	if actor.UserID == "" {
		return nil, models.ErrUnauthorized
	}
	requestID := ""
	err := i.inTx(func(s stores) error {
		requestType, err := s.requestTypes.GetByID(data.RequestTypeID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения типа заявки")
		}
		if requestType == nil {
			return models.ErrRequestTypeNotFound
		}
		department, err := s.departments.GetByID(data.DepartmentID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения подразделения")
		}
		if department == nil {
			return models.ErrDepartmentNotFound
		}
		links, err := s.workflows.ListStages(requestType.WorkflowID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения этапов процесса согласования")
		}
		firstStage := requestflow.FirstStage(links)
		if firstStage == nil {
			return models.ErrWorkflowHasNoStages
		}
		stageIDs := requestflow.StageIDs(links)
		deptApprovers, err := s.deptApprovers.ListByDepartment(department.ID, stageIDs)
		if err != nil {
			return errors.Wrap(err, "ошибка получения согласующих подразделения")
		}
		snapshot := requestflow.SnapshotFromDepartment("", deptApprovers, stageIDs)
		firstApprovers := requestflow.ApproversAtStage(snapshot, firstStage.StageID)
		if len(firstApprovers) == 0 {
			return models.ErrNoApproversConfigured
		}
		fields, err := newFieldValues(requestType.Fields, data.Fields)
		if err != nil {
			return err
		}
		statusID, err := statusIDByName(s, models.RequestStatusPending)
		if err != nil {
			return err
		}

		requestID, err = s.requests.Create(dbmodels.Request{
			DepartmentID:    department.ID,
			RequestTypeID:   requestType.ID,
			CreatorID:       actor.UserID,
			StageID:         firstStage.StageID,
			RequestStatusID: statusID,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}
		for idx := range snapshot {
			snapshot[idx].RequestID = requestID
		}
		if err = s.approvers.CreateMany(snapshot); err != nil {
			return errors.Wrap(err, "ошибка сохранения согласующих заявки")
		}
		for idx := range fields {
			fields[idx].RequestID = requestID
		}
		if err = s.fields.CreateMany(fields); err != nil {
			return errors.Wrap(err, "ошибка сохранения полей заявки")
		}
		members := map[models.MemberRole][]string{
			models.MemberRoleParticipant:     departmentMemberIDs(*department, models.MemberRoleParticipant),
			models.MemberRoleRecruiter:       departmentMemberIDs(*department, models.MemberRoleRecruiter),
			models.MemberRoleCurrentApprover: firstApprovers,
		}
		for role, userIDs := range members {
			if err = s.requests.SetMembers(requestID, role, userIDs); err != nil {
				return errors.Wrapf(err, "ошибка сохранения пользователей заявки с ролью %v", role)
			}
		}
		return nil
	})
	metrics.RecordTransition(actionCreate, err)
	if err != nil {
		logger.WithError(err).Warn("заявка не создана")
		return nil, err
	}
	logger.WithField("request_id", requestID).Info("заявка создана")
	return i.afterCommit(actor, requestID, &notify.Notification{Kind: models.NotifyRequestCreated})
}

func (i impl) Approve(actor models.Principal, id string) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID)
	n := notify.Notification{}
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionApprove); err != nil {
			return err
		}
		if !rec.IsPending() {
			return models.ErrRequestNotPending
		}
		links, err := workflowLinks(s, *rec)
		if err != nil {
			return err
		}
		current, next := requestflow.Locate(links, rec.StageID)
		if current == nil {
			return models.ErrStageNotInWorkflow
		}
		updMap := map[string]interface{}{}
		currentApprovers := []string{}
		if next == nil {
			statusID, err := statusIDByName(s, models.RequestStatusApproved)
			if err != nil {
				return err
			}
			updMap["request_status_id"] = statusID
			n.Kind = models.NotifyRequestApproved
		} else {
			currentApprovers = requestflow.ApproversAtStage(rec.StageApprovers, next.StageID)
			if len(currentApprovers) == 0 {
				return models.ErrNoApproversConfigured
			}
			updMap["stage_id"] = next.StageID
			n.Kind = models.NotifyRequestStageChanged
		}
		if err = s.requests.Update(rec.ID, updMap); err != nil {
			return errors.Wrap(err, "ошибка обновления заявки")
		}
		if err = s.requests.SetMembers(rec.ID, models.MemberRoleCurrentApprover, currentApprovers); err != nil {
			return errors.Wrap(err, "ошибка обновления текущих согласующих")
		}
		return addEvent(s, rec.ID, actor.UserID, models.EventActionApprove, rec.StageID)
	})
	metrics.RecordTransition(string(models.EventActionApprove), err)
	if err != nil {
		return nil, err
	}
	logger.WithField("kind", n.Kind).Info("заявка согласована на этапе")
	return i.afterCommit(actor, id, &n)
}

func (i impl) Reject(actor models.Principal, id string) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID)
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionReject); err != nil {
			return err
		}
		if !rec.IsPending() {
			return models.ErrRequestNotPending
		}
		statusID, err := statusIDByName(s, models.RequestStatusRejected)
		if err != nil {
			return err
		}
		if err = s.requests.Update(rec.ID, map[string]interface{}{"request_status_id": statusID}); err != nil {
			return errors.Wrap(err, "ошибка обновления заявки")
		}
		if err = s.requests.SetMembers(rec.ID, models.MemberRoleCurrentApprover, nil); err != nil {
			return errors.Wrap(err, "ошибка обновления текущих согласующих")
		}
		return addEvent(s, rec.ID, actor.UserID, models.EventActionReject, rec.StageID)
	})
	metrics.RecordTransition(string(models.EventActionReject), err)
	if err != nil {
		return nil, err
	}
	logger.Info("заявка отклонена")
	return i.afterCommit(actor, id, &notify.Notification{Kind: models.NotifyRequestRejected})
}

// Reopen возвращает заявку на первый этап, текущие согласующие пересчитываются целиком
func (i impl) Reopen(actor models.Principal, id string) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID)
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionReopen); err != nil {
			return err
		}
		if rec.IsPending() {
			return models.ErrRequestAlreadyPending
		}
		links, err := workflowLinks(s, *rec)
		if err != nil {
			return err
		}
		firstStage := requestflow.FirstStage(links)
		if firstStage == nil {
			return models.ErrWorkflowHasNoStages
		}
		firstApprovers := requestflow.ApproversAtStage(rec.StageApprovers, firstStage.StageID)
		if len(firstApprovers) == 0 {
			return models.ErrNoApproversConfigured
		}
		statusID, err := statusIDByName(s, models.RequestStatusPending)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"stage_id":          firstStage.StageID,
			"request_status_id": statusID,
		}
		if err = s.requests.Update(rec.ID, updMap); err != nil {
			return errors.Wrap(err, "ошибка обновления заявки")
		}
		if err = s.requests.SetMembers(rec.ID, models.MemberRoleCurrentApprover, firstApprovers); err != nil {
			return errors.Wrap(err, "ошибка обновления текущих согласующих")
		}
		return addEvent(s, rec.ID, actor.UserID, models.EventActionReopen, rec.StageID)
	})
	metrics.RecordTransition(string(models.EventActionReopen), err)
	if err != nil {
		return nil, err
	}
	logger.Info("заявка открыта повторно")
	return i.afterCommit(actor, id, &notify.Notification{Kind: models.NotifyRequestReopened})
}

// UpdateFields событие UPDATE пишется только при наличии изменений
func (i impl) UpdateFields(actor models.Principal, id string, data requestapimodels.RequestFieldsData) (*requestapimodels.RequestView, error) {
	logger := log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID)
	changesCount := 0
	err := i.mutate(id, func(s stores, rec *dbmodels.Request) error {
		if err := requestpolicy.Check(actor, *rec, requestpolicy.ActionUpdateFields); err != nil {
			return err
		}
		requestType, err := s.requestTypes.GetByID(rec.RequestTypeID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения типа заявки")
		}
		if requestType == nil {
			return models.ErrRequestTypeNotFound
		}
		changes := []requestapimodels.FieldChange{}
		newRows := []dbmodels.RequestFieldInRequest{}
		newNames := []string{}
		for _, item := range dedupFieldValues(data.Fields) {
			link := findTypeField(requestType.Fields, item.FieldID)
			if link == nil {
				return models.ErrUnknownField
			}
			value, err := canonicalValue(*link, item.Value)
			if err != nil {
				return err
			}
			stored := findStoredField(rec.Fields, item.FieldID)
			if stored == nil {
				if value == "" {
					continue
				}
				newRows = append(newRows, dbmodels.RequestFieldInRequest{
					RequestRef:     dbmodels.RequestRef{RequestID: rec.ID},
					RequestFieldID: item.FieldID,
					Value:          value,
				})
				newNames = append(newNames, fieldName(*link))
				continue
			}
			if stored.Value == value {
				continue
			}
			if err = s.fields.UpdateValue(stored.ID, value); err != nil {
				return errors.Wrap(err, "ошибка обновления поля заявки")
			}
			changes = append(changes, requestapimodels.FieldChange{
				ID:        stored.ID,
				Name:      fieldName(*link),
				FromValue: stored.Value,
				ToValue:   value,
			})
		}
		if len(newRows) != 0 {
			if err = s.fields.CreateMany(newRows); err != nil {
				return errors.Wrap(err, "ошибка сохранения полей заявки")
			}
			for idx, row := range newRows {
				changes = append(changes, requestapimodels.FieldChange{
					ID:      row.ID,
					Name:    newNames[idx],
					ToValue: row.Value,
				})
			}
		}
		changesCount = len(changes)
		if changesCount == 0 {
			return nil
		}
		payload, err := json.Marshal(changes)
		if err != nil {
			return errors.Wrap(err, "ошибка сериализации изменений полей")
		}
		return addEvent(s, rec.ID, actor.UserID, models.EventActionUpdate, string(payload))
	})
	metrics.RecordTransition(string(models.EventActionUpdate), err)
	if err != nil {
		return nil, err
	}
	logger.WithField("changes", changesCount).Info("поля заявки обновлены")
	return i.afterCommit(actor, id, nil)
}

func addEvent(s stores, requestID, userID string, action models.EventAction, value string) error {
	_, err := s.events.Create(dbmodels.RequestEvent{
		RequestRef: dbmodels.RequestRef{RequestID: requestID},
		UserID:     userID,
		Action:     action,
		Value:      value,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка записи события заявки")
	}
	return nil
}

func departmentMemberIDs(department dbmodels.Department, role models.MemberRole) []string {
	result := []string{}
	for _, member := range department.Members {
		if member.Role == role {
			result = append(result, member.UserID)
		}
	}
	return result
}

// dedupFieldValues при повторе поля действует последнее значение, порядок первого появления сохраняется
func dedupFieldValues(list []requestapimodels.FieldValueData) []requestapimodels.FieldValueData {
	result := []requestapimodels.FieldValueData{}
	position := map[string]int{}
	for _, item := range list {
		if idx, ok := position[item.FieldID]; ok {
			result[idx] = item
			continue
		}
		position[item.FieldID] = len(result)
		result = append(result, item)
	}
	return result
}

func findTypeField(list []dbmodels.RequestFieldInRequestType, fieldID string) *dbmodels.RequestFieldInRequestType {
	for idx := range list {
		if list[idx].RequestFieldID == fieldID {
			return &list[idx]
		}
	}
	return nil
}

func findStoredField(list []dbmodels.RequestFieldInRequest, fieldID string) *dbmodels.RequestFieldInRequest {
	for idx := range list {
		if list[idx].RequestFieldID == fieldID {
			return &list[idx]
		}
	}
	return nil
}

func fieldName(link dbmodels.RequestFieldInRequestType) string {
	if link.RequestField == nil {
		return link.RequestFieldID
	}
	return link.RequestField.Name
}

// canonicalValue ошибка разбора возвращается как нарушение условия операции с именем поля
func canonicalValue(link dbmodels.RequestFieldInRequestType, raw string) (string, error) {
	if link.RequestField == nil {
		return raw, nil
	}
	optionIDs := []string{}
	for _, option := range link.RequestField.Options {
		optionIDs = append(optionIDs, option.ID)
	}
	value, err := fieldvalue.Canonicalize(link.RequestField.Type, optionIDs, raw)
	if err != nil {
		var formatErr *fieldvalue.FormatError
		if errors.As(err, &formatErr) {
			return "", &models.AppError{Kind: models.KindPrecondition, Msg: fieldName(link) + ": " + formatErr.Error()}
		}
		return "", err
	}
	return value, nil
}

// newFieldValues значения полей новой заявки в порядке полей типа, сохраняются только переданные поля
func newFieldValues(typeFields []dbmodels.RequestFieldInRequestType, input []requestapimodels.FieldValueData) ([]dbmodels.RequestFieldInRequest, error) {
	values := map[string]string{}
	for _, item := range dedupFieldValues(input) {
		link := findTypeField(typeFields, item.FieldID)
		if link == nil {
			return nil, models.ErrUnknownField
		}
		value, err := canonicalValue(*link, item.Value)
		if err != nil {
			return nil, err
		}
		values[item.FieldID] = value
	}
	result := []dbmodels.RequestFieldInRequest{}
	for _, link := range typeFields {
		value, ok := values[link.RequestFieldID]
		if !ok {
			continue
		}
		result = append(result, dbmodels.RequestFieldInRequest{
			RequestFieldID: link.RequestFieldID,
			Value:          value,
		})
	}
	return result, nil
}
