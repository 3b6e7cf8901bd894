package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
)

type Provider interface {
	ExportRequestList(list []requestapimodels.RequestListItem) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const requestSheet = "Заявки"

var requestHeaders = []string{"Номер", "Дата создания", "Тип заявки", "Подразделение", "Автор", "Этап", "Статус"}

func (i impl) ExportRequestList(list []requestapimodels.RequestListItem) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", requestSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	w := newSheetWriter(f, requestSheet, len(requestHeaders))
	if err := w.writeHeader(requestHeaders); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	headerRow := w.row
	for _, item := range list {
		err := w.writeRow([]interface{}{
			"REQ-" + item.ID,
			item.CreatedAt.Format("02.01.2006 15:04"),
			item.RequestTypeName,
			item.DepartmentName,
			item.CreatorName,
			item.StageName,
			models.RequestStatusToHuman(item.StatusName),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка записи заявки %v в xlsx", item.ID)
		}
	}
	if err := w.finish(headerRow); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	return f.WriteToBuffer()
}
