package notify

import (
	"time"

	log "github.com/sirupsen/logrus"
	"request-flow-backend/config"
	"request-flow-backend/lib/eventbus"
	"request-flow-backend/lib/metrics"
	"request-flow-backend/lib/smtp"
	connectionhub "request-flow-backend/lib/ws/hub/connection-hub"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
	wsmodels "request-flow-backend/models/ws"
)

const (
	channelSmtp = "smtp"
	channelNats = "nats"
	channelWs   = "ws"
)

// Notification результат перехода заявки, по которому рассылаются уведомления
type Notification struct {
	Kind          models.NotificationKind
	RequestID     string
	StageID       string
	StageName     string
	StatusName    string
	Actor         models.Principal
	Comment       string
	Involved      []dbmodels.User
	NextApprovers []dbmodels.User
}

// BusEvent сообщение о переходе заявки в шине событий
type BusEvent struct {
	Kind       models.NotificationKind `json:"kind"`
	RequestID  string                  `json:"request_id"`
	StageID    string                  `json:"stage_id"`
	StatusName string                  `json:"status"`
	ActorID    string                  `json:"actor_id"`
	Time       time.Time               `json:"time"`
}

var busSubject = map[models.NotificationKind]string{
	models.NotifyRequestCreated:      "request.create",
	models.NotifyRequestStageChanged: "request.approve",
	models.NotifyRequestApproved:     "request.approve",
	models.NotifyRequestRejected:     "request.reject",
	models.NotifyRequestReopened:     "request.reopen",
	models.NotifyRequestCommented:    "request.comment",
}

type Provider interface {
	// Dispatch отправляет уведомления без ожидания результата, ошибки только логируются
	Dispatch(n Notification)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		mail:      smtp.Instance,
		bus:       eventbus.Instance,
		hub:       connectionhub.Instance,
		publicURL: config.Conf.App.PublicURL,
		run: func(f func()) {
			go f()
		},
	}
}

type impl struct {
	mail      smtp.Provider
	bus       eventbus.Provider
	hub       connectionhub.Provider
	publicURL string
	run       func(func())
}

func (i impl) Dispatch(n Notification) {
	i.run(func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("request_id", n.RequestID).Errorf("паника при отправке уведомлений: %v", r)
			}
		}()
		i.sendMail(n)
		i.publish(n)
		i.push(n)
	})
}

func (i impl) link(requestID string) string {
	return i.publicURL + "/requests/" + requestID
}

func (i impl) sendMail(n Notification) {
	if i.mail == nil {
		return
	}
	logger := log.WithField("request_id", n.RequestID).WithField("kind", n.Kind)
	tpl, ok := models.NotificationTplMap[n.Kind]
	if !ok {
		logger.Warn("шаблон уведомления не найден")
		return
	}
	to := Recipients(n.Kind, n.Involved, n.NextApprovers)
	if len(to) == 0 {
		return
	}
	subject, body := tpl.Render(models.NotificationData{
		RequestID: n.RequestID,
		Actor:     n.Actor.Name,
		Stage:     n.StageName,
		Comment:   n.Comment,
		Link:      i.link(n.RequestID),
	})
	err := i.mail.SendEMail(to, subject, body)
	metrics.RecordNotification(channelSmtp, err)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления по почте")
	}
}

func (i impl) publish(n Notification) {
	if i.bus == nil {
		return
	}
	subject, ok := busSubject[n.Kind]
	if !ok {
		return
	}
	err := i.bus.Publish(subject, BusEvent{
		Kind:       n.Kind,
		RequestID:  n.RequestID,
		StageID:    n.StageID,
		StatusName: n.StatusName,
		ActorID:    n.Actor.UserID,
		Time:       time.Now(),
	})
	metrics.RecordNotification(channelNats, err)
	if err != nil {
		log.WithError(err).WithField("request_id", n.RequestID).Warn("событие заявки не опубликовано")
	}
}

func (i impl) push(n Notification) {
	if i.hub == nil {
		return
	}
	tpl, ok := models.NotificationTplMap[n.Kind]
	if !ok {
		return
	}
	subject, _ := tpl.Render(models.NotificationData{RequestID: n.RequestID, Actor: n.Actor.Name, Stage: n.StageName})
	now := time.Now().Format("02.01.2006 15:04:05")
	seen := map[string]bool{}
	users := append(append([]dbmodels.User{}, n.Involved...), n.NextApprovers...)
	for _, user := range users {
		if user.ID == "" || seen[user.ID] || user.ID == n.Actor.UserID {
			continue
		}
		seen[user.ID] = true
		if i.hub.SendMessage(wsmodels.ServerMessage{
			ToUserID:  user.ID,
			Time:      now,
			Code:      string(n.Kind),
			RequestID: n.RequestID,
			Msg:       subject,
		}) {
			metrics.RecordNotification(channelWs, nil)
		}
	}
}
