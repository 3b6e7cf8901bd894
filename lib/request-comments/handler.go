package requestcommentshandler

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	"request-flow-backend/lib/metrics"
	"request-flow-backend/lib/notify"
	requestcommentstore "request-flow-backend/lib/request-comments/store"
	requestflow "request-flow-backend/lib/request/flow"
	requestpolicy "request-flow-backend/lib/request/policy"
	requeststore "request-flow-backend/lib/request/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

const actionComment = "COMMENT"

type Provider interface {
	Create(actor models.Principal, requestID string, data requestapimodels.CommentData) (*requestapimodels.CommentView, error)
	Update(actor models.Principal, requestID, id string, data requestapimodels.CommentData) (*requestapimodels.CommentView, error)
	Delete(actor models.Principal, requestID, id string) error
	List(actor models.Principal, requestID string) (list []requestapimodels.CommentView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		requestStore: requeststore.NewInstance(db.DB),
		store:        requestcommentstore.NewInstance(db.DB),
		notifier:     notify.Instance,
	}
	initchecker.CheckInit(
		"requestStore", instance.requestStore,
		"store", instance.store,
		"notifier", instance.notifier,
	)
	Instance = instance
}

type impl struct {
	requestStore requeststore.Provider
	store        requestcommentstore.Provider
	notifier     notify.Provider
}

func (i impl) Create(actor models.Principal, requestID string, data requestapimodels.CommentData) (*requestapimodels.CommentView, error) {
	logger := log.
		WithField("request_id", requestID).
		WithField("user_id", actor.UserID)
	rec, err := i.getRequest(actor, requestID, requestpolicy.ActionComment)
	if err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(data.Comment)
	id, err := i.store.Create(dbmodels.RequestComment{
		RequestRef: dbmodels.RequestRef{RequestID: requestID},
		UserID:     actor.UserID,
		Comment:    comment,
	})
	metrics.RecordTransition(actionComment, err)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания комментария")
	}
	logger.WithField("comment_id", id).Info("добавлен комментарий к заявке")
	i.notifier.Dispatch(notify.Notification{
		Kind:       models.NotifyRequestCommented,
		RequestID:  rec.ID,
		StageID:    rec.StageID,
		StatusName: rec.GetStatusName(),
		Actor:      actor,
		Comment:    comment,
		Involved:   requestflow.InvolvedUsers(*rec),
	})
	return i.getComment(requestID, id)
}

// Update комментарий меняет только автор
func (i impl) Update(actor models.Principal, requestID, id string, data requestapimodels.CommentData) (*requestapimodels.CommentView, error) {
	if _, err := i.getRequest(actor, requestID, requestpolicy.ActionView); err != nil {
		return nil, err
	}
	current, err := i.getComment(requestID, id)
	if err != nil {
		return nil, err
	}
	if current.User.ID != actor.UserID {
		return nil, models.ErrUnauthorized
	}
	err = i.store.Update(requestID, id, map[string]interface{}{"comment": strings.TrimSpace(data.Comment)})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка обновления комментария")
	}
	log.
		WithField("request_id", requestID).
		WithField("user_id", actor.UserID).
		WithField("comment_id", id).
		Info("комментарий изменен")
	return i.getComment(requestID, id)
}

// Delete удаляет автор или администратор
func (i impl) Delete(actor models.Principal, requestID, id string) error {
	if _, err := i.getRequest(actor, requestID, requestpolicy.ActionView); err != nil {
		return err
	}
	current, err := i.getComment(requestID, id)
	if err != nil {
		return err
	}
	if current.User.ID != actor.UserID && !actor.IsAdmin {
		return models.ErrUnauthorized
	}
	if err = i.store.Delete(requestID, id); err != nil {
		return errors.Wrap(err, "ошибка удаления комментария")
	}
	log.
		WithField("request_id", requestID).
		WithField("user_id", actor.UserID).
		WithField("comment_id", id).
		Info("комментарий удален")
	return nil
}

func (i impl) List(actor models.Principal, requestID string) (list []requestapimodels.CommentView, err error) {
	if _, err = i.getRequest(actor, requestID, requestpolicy.ActionView); err != nil {
		return nil, err
	}
	recList, err := i.store.List(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения комментариев заявки")
	}
	list = make([]requestapimodels.CommentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, requestapimodels.CommentConvert(rec))
	}
	return list, nil
}

func (i impl) getRequest(actor models.Principal, requestID string, action requestpolicy.Action) (*dbmodels.Request, error) {
	rec, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, models.ErrRequestNotFound
	}
	if err = requestpolicy.Check(actor, *rec, action); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) getComment(requestID, id string) (*requestapimodels.CommentView, error) {
	rec, err := i.store.GetByID(requestID, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения комментария")
	}
	if rec == nil {
		return nil, models.ErrCommentNotFound
	}
	view := requestapimodels.CommentConvert(*rec)
	return &view, nil
}
