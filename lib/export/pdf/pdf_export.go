package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
)

const (
	fontFamily   = "Arial"
	fontFile     = "Arial.ttf"
	fontBoldFile = "Arial Bold.ttf"
	lineHeight   = 7.0
)

// RequestCard печатная карточка заявки. Без шрифтов в fontDir используется встроенный Helvetica.
func RequestCard(fontDir string, view requestapimodels.RequestView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("RequestCard panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	family, tr := setupFont(pdf, fontDir)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Заявка REQ-%v", view.ID)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(family, "", 11)
	attrs := [][2]string{
		{"Тип заявки", view.RequestTypeName},
		{"Подразделение", view.DepartmentName},
		{"Автор", view.Creator.Name},
		{"Создана", view.CreatedAt.Format("02.01.2006 15:04")},
		{"Этап", view.StageName},
		{"Статус", models.RequestStatusToHuman(view.StatusName)},
	}
	for _, attr := range attrs {
		writeRow(pdf, family, tr, attr[0], attr[1])
	}

	if len(view.Fields) != 0 {
		writeSection(pdf, family, tr, "Поля заявки")
		for _, field := range view.Fields {
			writeRow(pdf, family, tr, field.Name, fieldText(field))
		}
	}

	if len(view.Progress) != 0 {
		writeSection(pdf, family, tr, "Этапы согласования")
		for _, stage := range view.Progress {
			approvers := ""
			for _, approver := range view.StageApprovers {
				if approver.StageID != stage.StageID {
					continue
				}
				if approvers != "" {
					approvers += ", "
				}
				approvers += approver.User.Name
				if approver.Decision != "" {
					approvers += " (" + approver.Decision.ToHuman() + ")"
				}
			}
			writeRow(pdf, family, tr, fmt.Sprintf("%v. %v", stage.Order+1, stage.StageName), stageStateToHuman(stage.State)+"; "+approvers)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupFont(pdf *fpdf.Fpdf, fontDir string) (family string, tr func(string) string) {
	_, regularErr := os.Stat(filepath.Join(fontDir, fontFile))
	_, boldErr := os.Stat(filepath.Join(fontDir, fontBoldFile))
	if regularErr != nil || boldErr != nil {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddUTF8Font(fontFamily, "", fontFile)
	pdf.AddUTF8Font(fontFamily, "B", fontBoldFile)
	return fontFamily, func(s string) string { return s }
}

func writeSection(pdf *fpdf.Fpdf, family string, tr func(string) string, title string) {
	pdf.Ln(4)
	pdf.SetFont(family, "B", 13)
	pdf.CellFormat(0, 9, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
}

func writeRow(pdf *fpdf.Fpdf, family string, tr func(string) string, name, value string) {
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(60, lineHeight, tr(name), "", 0, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

func fieldText(field requestapimodels.FieldView) string {
	if field.Type == models.FieldTypeSelect {
		for _, option := range field.Options {
			if option.ID == field.Value {
				return option.Name
			}
		}
	}
	if field.Type == models.FieldTypeBoolean {
		switch field.Formatted {
		case true:
			return "Да"
		case false:
			return "Нет"
		}
	}
	return field.Value
}

func stageStateToHuman(state string) string {
	switch state {
	case "APPROVED":
		return "Согласован"
	case "CURRENT":
		return "Текущий"
	case "REJECTED":
		return "Отклонён"
	}
	return "Ожидает"
}
