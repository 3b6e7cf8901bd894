package notify

import (
	"sync"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
	wsmodels "request-flow-backend/models/ws"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMail) SendEMail(to []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

func (f *fakeMail) IsConfigured() bool { return true }

type fakeBus struct {
	subjects []string
}

func (f *fakeBus) Publish(subject string, payload any) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeBus) Close() {}

type fakeHub struct {
	messages []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn) {}

func (f *fakeHub) DeleteClient(userID string, conn *websocket.Conn) {}

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) bool {
	f.messages = append(f.messages, msg)
	return true
}

func (f *fakeHub) IsConnected(userID string) bool { return true }

func user(id, email string, mutate ...func(u *dbmodels.User)) dbmodels.User {
	u := dbmodels.User{
		BaseModel:                          dbmodels.BaseModel{ID: id},
		Email:                              email,
		EmailWhenRequestCreated:            true,
		EmailWhenRequestCommentedOn:        true,
		EmailWhenRequestStageChanged:       true,
		EmailWhenAwaitingMyRequestApproval: true,
	}
	for _, m := range mutate {
		m(&u)
	}
	return u
}

func TestRecipients(t *testing.T) {
	noStage := func(u *dbmodels.User) { u.EmailWhenRequestStageChanged = false }
	noAwaiting := func(u *dbmodels.User) { u.EmailWhenAwaitingMyRequestApproval = false }

	t.Run("filtered by preference and deduplicated by email", func(t *testing.T) {
		involved := []dbmodels.User{
			user("u1", "a@example.com"),
			user("u2", "A@example.com"),
			user("u3", "c@example.com", noStage),
			user("u4", ""),
		}
		require.Equal(t, []string{"a@example.com"}, Recipients(models.NotifyRequestApproved, involved, nil))
	})
	t.Run("stage change adds next approvers awaiting approval", func(t *testing.T) {
		involved := []dbmodels.User{user("u1", "a@example.com"), user("u2", "b@example.com", noStage)}
		next := []dbmodels.User{user("u2", "b@example.com", noStage), user("u5", "e@example.com", noAwaiting), user("u1", "a@example.com")}
		require.Equal(t, []string{"a@example.com", "b@example.com"}, Recipients(models.NotifyRequestStageChanged, involved, next))
	})
	t.Run("next approvers ignored for other kinds", func(t *testing.T) {
		next := []dbmodels.User{user("u2", "b@example.com")}
		require.Empty(t, Recipients(models.NotifyRequestRejected, nil, next))
	})
	t.Run("comment preference", func(t *testing.T) {
		involved := []dbmodels.User{
			user("u1", "a@example.com", func(u *dbmodels.User) { u.EmailWhenRequestCommentedOn = false }),
			user("u2", "b@example.com"),
		}
		require.Equal(t, []string{"b@example.com"}, Recipients(models.NotifyRequestCommented, involved, nil))
	})
}

func TestDispatch(t *testing.T) {
	mail := &fakeMail{}
	bus := &fakeBus{}
	hub := &fakeHub{}
	handler := impl{
		mail:      mail,
		bus:       bus,
		hub:       hub,
		publicURL: "http://front",
		run:       func(f func()) { f() },
	}
	n := Notification{
		Kind:      models.NotifyRequestRejected,
		RequestID: "r1",
		StageID:   "a",
		Actor:     models.Principal{UserID: "u1", Name: "Иван"},
		Involved:  []dbmodels.User{user("u1", "a@example.com"), user("u2", "b@example.com")},
	}
	t.Run("all channels", func(t *testing.T) {
		handler.Dispatch(n)
		require.Len(t, mail.sent, 1)
		require.Equal(t, []string{"a@example.com", "b@example.com"}, mail.sent[0].to)
		require.Equal(t, "REQ-r1 отклонена", mail.sent[0].subject)
		require.Contains(t, mail.sent[0].body, "http://front/requests/r1")
		require.Equal(t, []string{"request.reject"}, bus.subjects)
		require.Len(t, hub.messages, 1)
		require.Equal(t, "u2", hub.messages[0].ToUserID)
	})
	t.Run("mail failure is swallowed", func(t *testing.T) {
		mail.err = errors.New("smtp down")
		require.NotPanics(t, func() { handler.Dispatch(n) })
		require.Len(t, mail.sent, 2)
		require.Len(t, bus.subjects, 2)
	})
	t.Run("no recipients no mail", func(t *testing.T) {
		before := len(mail.sent)
		handler.Dispatch(Notification{Kind: models.NotifyRequestCreated, RequestID: "r2"})
		require.Len(t, mail.sent, before)
	})
}
