package requestcommentshandler

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"request-flow-backend/lib/notify"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
	dbmodels "request-flow-backend/models/db"
)

type oneRequest struct {
	rec dbmodels.Request
}

func (o oneRequest) Create(rec dbmodels.Request) (string, error) {
	return "", nil
}

func (o oneRequest) GetByID(id string) (*dbmodels.Request, error) {
	if id != o.rec.ID {
		return nil, nil
	}
	rec := o.rec
	return &rec, nil
}

func (o oneRequest) GetForUpdate(id string) (*dbmodels.Request, error) {
	return o.GetByID(id)
}

func (o oneRequest) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (o oneRequest) List(userID string, isAdmin bool, filter dbmodels.RequestFilter) ([]dbmodels.Request, int64, error) {
	return nil, 0, nil
}

func (o oneRequest) AddMember(requestID, userID string, role models.MemberRole) error {
	return nil
}

func (o oneRequest) RemoveMember(requestID, userID string, role models.MemberRole) error {
	return nil
}

func (o oneRequest) SetMembers(requestID string, role models.MemberRole, userIDs []string) error {
	return nil
}

func (o oneRequest) CountByStatus() (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memComments struct {
	list []dbmodels.RequestComment
}

func (m *memComments) Create(rec dbmodels.RequestComment) (string, error) {
	rec.ID = "comment-" + strconv.Itoa(len(m.list)+1)
	rec.CreatedAt = time.Now()
	m.list = append(m.list, rec)
	return rec.ID, nil
}

func (m *memComments) GetByID(requestID, id string) (*dbmodels.RequestComment, error) {
	for _, rec := range m.list {
		if rec.RequestID == requestID && rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memComments) Update(requestID, id string, updMap map[string]interface{}) error {
	for idx := range m.list {
		if m.list[idx].RequestID == requestID && m.list[idx].ID == id {
			m.list[idx].Comment = updMap["comment"].(string)
		}
	}
	return nil
}

func (m *memComments) Delete(requestID, id string) error {
	result := []dbmodels.RequestComment{}
	for _, rec := range m.list {
		if rec.RequestID != requestID || rec.ID != id {
			result = append(result, rec)
		}
	}
	m.list = result
	return nil
}

func (m *memComments) List(requestID string) ([]dbmodels.RequestComment, error) {
	result := []dbmodels.RequestComment{}
	for _, rec := range m.list {
		if rec.RequestID == requestID {
			result = append(result, rec)
		}
	}
	return result, nil
}

type recorder struct {
	sent []notify.Notification
}

func (r *recorder) Dispatch(n notify.Notification) {
	r.sent = append(r.sent, n)
}

func TestComments(t *testing.T) {
	creator := &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "creator"}, Email: "creator@example.com"}
	approver := &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "u1"}, Email: "u1@example.com"}
	request := dbmodels.Request{
		BaseModel: dbmodels.BaseModel{ID: "r1"},
		CreatorID: "creator",
		Creator:   creator,
		StageID:   "a",
		StageApprovers: []dbmodels.RequestStageApprover{
			{StageID: "a", UserID: "u1", User: approver},
		},
	}
	comments := &memComments{}
	notifier := &recorder{}
	handler := impl{
		requestStore: oneRequest{rec: request},
		store:        comments,
		notifier:     notifier,
	}
	author := models.Principal{UserID: "u1", Name: "u1"}

	t.Run("create by viewer only", func(t *testing.T) {
		_, err := handler.Create(models.Principal{UserID: "outsider"}, "r1", requestapimodels.CommentData{Comment: "привет"})
		require.ErrorIs(t, err, models.ErrUnauthorized)
		_, err = handler.Create(author, "missing", requestapimodels.CommentData{Comment: "привет"})
		require.ErrorIs(t, err, models.ErrRequestNotFound)

		view, err := handler.Create(author, "r1", requestapimodels.CommentData{Comment: "  нужен бюджет  "})
		require.NoError(t, err)
		require.Equal(t, "нужен бюджет", view.Comment)
		require.Equal(t, "u1", view.User.ID)

		require.Len(t, notifier.sent, 1)
		sent := notifier.sent[0]
		require.Equal(t, models.NotifyRequestCommented, sent.Kind)
		require.Equal(t, "нужен бюджет", sent.Comment)
		require.Len(t, sent.Involved, 2)
	})
	t.Run("update by author only", func(t *testing.T) {
		_, err := handler.Update(models.Principal{UserID: "creator"}, "r1", "comment-1", requestapimodels.CommentData{Comment: "x"})
		require.ErrorIs(t, err, models.ErrUnauthorized)
		view, err := handler.Update(author, "r1", "comment-1", requestapimodels.CommentData{Comment: "нужен бюджет до пятницы"})
		require.NoError(t, err)
		require.Equal(t, "нужен бюджет до пятницы", view.Comment)
		_, err = handler.Update(author, "r1", "comment-9", requestapimodels.CommentData{Comment: "x"})
		require.ErrorIs(t, err, models.ErrCommentNotFound)
	})
	t.Run("delete by author or admin", func(t *testing.T) {
		_, err := handler.Create(models.Principal{UserID: "creator"}, "r1", requestapimodels.CommentData{Comment: "ок"})
		require.NoError(t, err)

		require.ErrorIs(t, handler.Delete(models.Principal{UserID: "creator"}, "r1", "comment-1"), models.ErrUnauthorized)
		require.NoError(t, handler.Delete(models.Principal{UserID: "admin", IsAdmin: true}, "r1", "comment-1"))
		require.NoError(t, handler.Delete(models.Principal{UserID: "creator"}, "r1", "comment-2"))

		list, err := handler.List(author, "r1")
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
