package models

import "strings"

type NotificationKind string

const (
	NotifyRequestCreated      NotificationKind = "RequestCreated"
	NotifyRequestStageChanged NotificationKind = "RequestStageChanged"
	NotifyRequestApproved     NotificationKind = "RequestApproved"
	NotifyRequestRejected     NotificationKind = "RequestRejected"
	NotifyRequestReopened     NotificationKind = "RequestReopened"
	NotifyRequestCommented    NotificationKind = "RequestCommented"
)

type NotificationTpl struct {
	Name    string
	Subject string
	Msg     string
}

var NotificationTplMap = map[NotificationKind]NotificationTpl{
	NotifyRequestCreated:      {Name: "Создание заявки", Subject: "REQ-{{RequestID}} создана", Msg: "Заявка REQ-{{RequestID}} создана пользователем {{Actor}}<br />Открыть: {{Link}}"},
	NotifyRequestStageChanged: {Name: "Переход на следующий этап", Subject: "REQ-{{RequestID}} переведена на этап {{Stage}}", Msg: "Заявка REQ-{{RequestID}} переведена на этап «{{Stage}}» пользователем {{Actor}}<br />Открыть: {{Link}}"},
	NotifyRequestApproved:     {Name: "Согласование заявки", Subject: "REQ-{{RequestID}} согласована", Msg: "Заявка REQ-{{RequestID}} согласована пользователем {{Actor}}<br />Открыть: {{Link}}"},
	NotifyRequestRejected:     {Name: "Отклонение заявки", Subject: "REQ-{{RequestID}} отклонена", Msg: "Заявка REQ-{{RequestID}} отклонена пользователем {{Actor}}<br />Открыть: {{Link}}"},
	NotifyRequestReopened:     {Name: "Повторное открытие заявки", Subject: "REQ-{{RequestID}} открыта повторно", Msg: "Заявка REQ-{{RequestID}} открыта повторно пользователем {{Actor}}<br />Открыть: {{Link}}"},
	NotifyRequestCommented:    {Name: "Комментарий к заявке", Subject: "REQ-{{RequestID}}: новый комментарий", Msg: "{{Comment}}<br />- {{Actor}}<br />Ответить: {{Link}}"},
}

type NotificationData struct {
	RequestID string
	Actor     string
	Stage     string
	Comment   string
	Link      string
}

func (t NotificationTpl) Render(data NotificationData) (subject, msg string) {
	r := strings.NewReplacer(
		"{{RequestID}}", data.RequestID,
		"{{Actor}}", data.Actor,
		"{{Stage}}", data.Stage,
		"{{Comment}}", data.Comment,
		"{{Link}}", data.Link,
	)
	return r.Replace(t.Subject), r.Replace(t.Msg)
}
