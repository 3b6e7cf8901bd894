package requesthandler

import (
	"github.com/pkg/errors"
	pdfexport "request-flow-backend/lib/export/pdf"
	requestflow "request-flow-backend/lib/request/flow"
	requestpolicy "request-flow-backend/lib/request/policy"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

func (i impl) GetByID(actor models.Principal, id string) (*requestapimodels.RequestView, error) {
	rec, err := i.getRequest(id)
	if err != nil {
		return nil, err
	}
	if err = requestpolicy.Check(actor, *rec, requestpolicy.ActionView); err != nil {
		return nil, err
	}
	return i.buildView(*rec)
}

func (i impl) List(actor models.Principal, filter requestapimodels.ListFilter) (list []requestapimodels.RequestListItem, rowCount int64, err error) {
	if actor.UserID == "" {
		return nil, 0, models.ErrUnauthorized
	}
	recList, rowCount, err := i.requests.List(actor.UserID, actor.IsAdmin, filter.ToDB())
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка заявок")
	}
	list = make([]requestapimodels.RequestListItem, 0, len(recList))
	for _, rec := range recList {
		list = append(list, requestapimodels.RequestListItemConvert(rec))
	}
	return list, rowCount, nil
}

// Export выгружает весь список по фильтру без постраничного разбиения
func (i impl) Export(actor models.Principal, filter requestapimodels.ListFilter) ([]byte, error) {
	if actor.UserID == "" {
		return nil, models.ErrUnauthorized
	}
	dbFilter := filter.ToDB()
	dbFilter.Page = 0
	dbFilter.Limit = 0
	recList, _, err := i.requests.List(actor.UserID, actor.IsAdmin, dbFilter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка заявок")
	}
	list := make([]requestapimodels.RequestListItem, 0, len(recList))
	for _, rec := range recList {
		list = append(list, requestapimodels.RequestListItemConvert(rec))
	}
	buf, err := i.exporter.ExportRequestList(list)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования xlsx")
	}
	return buf.Bytes(), nil
}

func (i impl) Card(actor models.Principal, id string) ([]byte, error) {
	view, err := i.GetByID(actor, id)
	if err != nil {
		return nil, err
	}
	data, err := pdfexport.RequestCard(i.fontDir, *view)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования карточки заявки")
	}
	return data, nil
}

// buildView дополняет заявку состоянием этапов и видимыми решениями согласующих
func (i impl) buildView(rec dbmodels.Request) (*requestapimodels.RequestView, error) {
	view := requestapimodels.RequestConvert(rec)
	links, err := workflowLinks(i.stores, rec)
	if err != nil {
		return nil, err
	}
	for _, item := range requestflow.Progress(links, rec.StageID, rec.GetStatusName()) {
		view.Progress = append(view.Progress, requestapimodels.StageProgressView{
			StageID:   item.Link.StageID,
			StageName: item.Link.GetStageName(),
			Order:     item.Link.Order,
			State:     string(item.State),
		})
	}
	events, err := i.events.List(rec.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения событий заявки")
	}
	visible := requestflow.VisibleDecisions(events)
	for idx := range view.StageApprovers {
		approver := &view.StageApprovers[idx]
		decision := requestflow.StageDecision(visible, approver.StageID, approver.User.ID)
		if decision == nil {
			continue
		}
		decidedAt := decision.CreatedAt
		approver.Decision = decision.Action
		approver.DecidedAt = &decidedAt
	}
	return &view, nil
}
