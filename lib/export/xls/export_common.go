package xlsexport

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	fontFamily   = "Times New Roman"
	fontSize     = 11
	defaultWidth = 25
)

// sheetWriter пишет таблицу построчно на один лист
type sheetWriter struct {
	f       *excelize.File
	sheet   string
	columns int
	row     int
}

func newSheetWriter(f *excelize.File, sheet string, columns int) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, columns: columns}
}

func (w *sheetWriter) cell(col, row int) (string, error) {
	return excelize.CoordinatesToCellName(col, row)
}

func (w *sheetWriter) styleRows(style *excelize.Style, rowFrom, rowTo int) error {
	styleID, err := w.f.NewStyle(style)
	if err != nil {
		return err
	}
	first, err := w.cell(1, rowFrom)
	if err != nil {
		return err
	}
	last, err := w.cell(w.columns, rowTo)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, first, last, styleID)
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	w.row++
	first, err := w.cell(1, w.row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(w.sheet, first, &values)
}

// writeHeader жирная строка заголовков, закреплённая при прокрутке, с фильтром по колонкам
func (w *sheetWriter) writeHeader(headers []string) error {
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err := w.writeRow(values); err != nil {
		return errors.Wrap(err, "ошибка записи заголовка")
	}
	headerStyle := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: fontSize},
	}
	if err := w.styleRows(headerStyle, w.row, w.row); err != nil {
		return errors.Wrap(err, "ошибка оформления заголовка")
	}
	lastCol, err := excelize.ColumnNumberToName(w.columns)
	if err != nil {
		return err
	}
	if err = w.f.SetColWidth(w.sheet, "A", lastCol, defaultWidth); err != nil {
		return err
	}
	err = w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      w.row,
		TopLeftCell: "A" + strconv.Itoa(w.row+1),
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return errors.Wrap(err, "ошибка закрепления заголовка")
	}
	return nil
}

// finish оформляет строки данных и включает автофильтр
func (w *sheetWriter) finish(headerRow int) error {
	if w.row == headerRow {
		return nil
	}
	dataStyle := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize},
	}
	if err := w.styleRows(dataStyle, headerRow+1, w.row); err != nil {
		return errors.Wrap(err, "ошибка оформления данных")
	}
	first, err := w.cell(1, headerRow)
	if err != nil {
		return err
	}
	last, err := w.cell(w.columns, w.row)
	if err != nil {
		return err
	}
	return w.f.AutoFilter(w.sheet, first+":"+last, nil)
}
