package requesteventshandler

import (
	"slices"
	"sort"

	"github.com/pkg/errors"
	"request-flow-backend/db"
	stagestore "request-flow-backend/lib/dicts/stage/store"
	requestcommentstore "request-flow-backend/lib/request-comments/store"
	requesteventstore "request-flow-backend/lib/request-events/store"
	requestpolicy "request-flow-backend/lib/request/policy"
	requeststore "request-flow-backend/lib/request/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	List(actor models.Principal, requestID string) (list []requestapimodels.EventView, err error)
	Timeline(actor models.Principal, requestID string) (list []requestapimodels.TimelineItem, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		requestStore: requeststore.NewInstance(db.DB),
		eventStore:   requesteventstore.NewInstance(db.DB),
		commentStore: requestcommentstore.NewInstance(db.DB),
		stageStore:   stagestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"requestStore", instance.requestStore,
		"eventStore", instance.eventStore,
		"commentStore", instance.commentStore,
		"stageStore", instance.stageStore,
	)
	Instance = instance
}

type impl struct {
	requestStore requeststore.Provider
	eventStore   requesteventstore.Provider
	commentStore requestcommentstore.Provider
	stageStore   stagestore.Provider
}

// List события заявки по возрастанию времени, журнал только дополняется
func (i impl) List(actor models.Principal, requestID string) (list []requestapimodels.EventView, err error) {
	if err = i.checkView(actor, requestID); err != nil {
		return nil, err
	}
	return i.events(requestID)
}

// Timeline события и комментарии одной лентой
func (i impl) Timeline(actor models.Principal, requestID string) (list []requestapimodels.TimelineItem, err error) {
	if err = i.checkView(actor, requestID); err != nil {
		return nil, err
	}
	events, err := i.events(requestID)
	if err != nil {
		return nil, err
	}
	comments, err := i.commentStore.List(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения комментариев заявки")
	}
	list = make([]requestapimodels.TimelineItem, 0, len(events)+len(comments))
	for idx := range events {
		list = append(list, requestapimodels.TimelineItem{
			Type:      requestapimodels.TimelineEvent,
			CreatedAt: events[idx].CreatedAt,
			Event:     &events[idx],
		})
	}
	for _, rec := range comments {
		comment := requestapimodels.CommentConvert(rec)
		list = append(list, requestapimodels.TimelineItem{
			Type:      requestapimodels.TimelineComment,
			CreatedAt: comment.CreatedAt,
			Comment:   &comment,
		})
	}
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].CreatedAt.Before(list[b].CreatedAt)
	})
	return list, nil
}

func (i impl) checkView(actor models.Principal, requestID string) error {
	rec, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return models.ErrRequestNotFound
	}
	return requestpolicy.Check(actor, *rec, requestpolicy.ActionView)
}

func (i impl) events(requestID string) ([]requestapimodels.EventView, error) {
	recList, err := i.eventStore.List(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения событий заявки")
	}
	stageNames, err := i.stageNames(recList)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.EventView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.EventConvert(rec, stageNames))
	}
	return result, nil
}

// stageNames названия этапов, на которые ссылаются события решений и повторного открытия
func (i impl) stageNames(recList []dbmodels.RequestEvent) (map[string]string, error) {
	stageIDs := []string{}
	for _, rec := range recList {
		if rec.Action == models.EventActionUpdate || rec.Value == "" || slices.Contains(stageIDs, rec.Value) {
			continue
		}
		stageIDs = append(stageIDs, rec.Value)
	}
	result := map[string]string{}
	if len(stageIDs) == 0 {
		return result, nil
	}
	stages, err := i.stageStore.GetByIDs(stageIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапов")
	}
	for _, stage := range stages {
		result[stage.ID] = stage.Name
	}
	return result, nil
}
