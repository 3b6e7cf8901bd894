package requesthandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"request-flow-backend/config"
	"request-flow-backend/db"
	departmentapproverstore "request-flow-backend/lib/dicts/department-approver/store"
	departmentstore "request-flow-backend/lib/dicts/department/store"
	requeststatusstore "request-flow-backend/lib/dicts/request-status/store"
	requesttypestore "request-flow-backend/lib/dicts/request-type/store"
	workflowstore "request-flow-backend/lib/dicts/workflow/store"
	xlsexport "request-flow-backend/lib/export/xls"
	"request-flow-backend/lib/notify"
	requesteventstore "request-flow-backend/lib/request-events/store"
	fieldvaluestore "request-flow-backend/lib/request/field-store"
	requestflow "request-flow-backend/lib/request/flow"
	stageapproverstore "request-flow-backend/lib/request/stage-approver-store"
	requeststore "request-flow-backend/lib/request/store"
	userstore "request-flow-backend/lib/users/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/lib/utils/lock"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(actor models.Principal, data requestapimodels.RequestCreateData) (*requestapimodels.RequestView, error)
	UpdateFields(actor models.Principal, id string, data requestapimodels.RequestFieldsData) (*requestapimodels.RequestView, error)
	Approve(actor models.Principal, id string) (*requestapimodels.RequestView, error)
	Reject(actor models.Principal, id string) (*requestapimodels.RequestView, error)
	Reopen(actor models.Principal, id string) (*requestapimodels.RequestView, error)
	AddApprover(actor models.Principal, id string, data requestapimodels.ApproverAddData) (*requestapimodels.StageApproverView, error)
	RemoveApprover(actor models.Principal, id, approverID string) error
	AddParticipant(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error)
	RemoveParticipant(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error)
	AddRecruiter(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error)
	RemoveRecruiter(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error)
	GetByID(actor models.Principal, id string) (*requestapimodels.RequestView, error)
	List(actor models.Principal, filter requestapimodels.ListFilter) (list []requestapimodels.RequestListItem, rowCount int64, err error)
	Export(actor models.Principal, filter requestapimodels.ListFilter) ([]byte, error)
	Card(actor models.Principal, id string) ([]byte, error)
}

var Instance Provider

// stores хранилища, которые используются внутри одной транзакции
type stores struct {
	requests      requeststore.Provider
	approvers     stageapproverstore.Provider
	fields        fieldvaluestore.Provider
	events        requesteventstore.Provider
	statuses      requeststatusstore.Provider
	requestTypes  requesttypestore.Provider
	workflows     workflowstore.Provider
	deptApprovers departmentapproverstore.Provider
	departments   departmentstore.Provider
	users         userstore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		requests:      requeststore.NewInstance(tx),
		approvers:     stageapproverstore.NewInstance(tx),
		fields:        fieldvaluestore.NewInstance(tx),
		events:        requesteventstore.NewInstance(tx),
		statuses:      requeststatusstore.NewInstance(tx),
		requestTypes:  requesttypestore.NewInstance(tx),
		workflows:     workflowstore.NewInstance(tx),
		deptApprovers: departmentapproverstore.NewInstance(tx),
		departments:   departmentstore.NewInstance(tx),
		users:         userstore.NewInstance(tx),
	}
}

func NewHandler() {
	initchecker.CheckInit(
		"notify", notify.Instance,
		"xlsexport", xlsexport.Instance,
	)
	Instance = impl{
		stores:   newStores(db.DB),
		notifier: notify.Instance,
		exporter: xlsexport.Instance,
		fontDir:  config.Conf.Export.FontDir,
		lockWait: time.Duration(config.Conf.Lock.WaitSec) * time.Second,
		inTx: func(fn func(s stores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(newStores(tx))
			})
		},
	}
}

type impl struct {
	stores
	notifier notify.Provider
	exporter xlsexport.Provider
	fontDir  string
	lockWait time.Duration
	inTx     func(fn func(s stores) error) error
}

func lockKey(requestID string) string {
	return "request:" + requestID
}

// mutate изменяет заявку под блокировкой по ИД, строка заявки дополнительно блокируется в транзакции
func (i impl) mutate(requestID string, fn func(s stores, rec *dbmodels.Request) error) error {
	success, err := lock.WithDelay(context.Background(), lockKey(requestID), i.lockWait, func() error {
		return i.inTx(func(s stores) error {
			rec, err := s.requests.GetForUpdate(requestID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения заявки")
			}
			if rec == nil {
				return models.ErrRequestNotFound
			}
			return fn(s, rec)
		})
	})
	if err != nil {
		return err
	}
	if !success {
		return models.ErrRequestBusy
	}
	return nil
}

func (i impl) getRequest(id string) (*dbmodels.Request, error) {
	rec, err := i.requests.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, models.ErrRequestNotFound
	}
	return rec, nil
}

func statusIDByName(s stores, name string) (string, error) {
	rec, err := s.statuses.GetByName(name)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения статуса заявки")
	}
	if rec == nil {
		log.WithField("status", name).Error("системный статус заявки отсутствует в справочнике")
		return "", models.ErrStatusNotFound
	}
	return rec.ID, nil
}

func workflowLinks(s stores, rec dbmodels.Request) ([]dbmodels.StageInWorkflow, error) {
	links, err := s.workflows.ListStages(rec.GetWorkflowID())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапов процесса согласования")
	}
	return links, nil
}

// usersAtStage пользователи из копии согласующих заявки для этапа
func usersAtStage(rec dbmodels.Request, stageID string) []dbmodels.User {
	result := []dbmodels.User{}
	seen := map[string]bool{}
	for _, approver := range rec.StageApprovers {
		if approver.StageID != stageID || approver.User == nil || seen[approver.UserID] {
			continue
		}
		seen[approver.UserID] = true
		result = append(result, *approver.User)
	}
	return result
}

// afterCommit перечитывает заявку, рассылает уведомление и возвращает представление
func (i impl) afterCommit(actor models.Principal, requestID string, n *notify.Notification) (*requestapimodels.RequestView, error) {
	rec, err := i.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if n != nil && i.notifier != nil {
		n.RequestID = rec.ID
		n.Actor = actor
		n.StatusName = rec.GetStatusName()
		n.StageID = rec.StageID
		if rec.Stage != nil {
			n.StageName = rec.Stage.Name
		}
		n.Involved = requestflow.InvolvedUsers(*rec)
		if n.Kind == models.NotifyRequestStageChanged {
			n.NextApprovers = usersAtStage(*rec, rec.StageID)
		}
		i.notifier.Dispatch(*n)
	}
	return i.buildView(*rec)
}
