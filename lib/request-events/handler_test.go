package requesteventshandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
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

type fixedEvents []dbmodels.RequestEvent

func (f fixedEvents) Create(rec dbmodels.RequestEvent) (string, error) {
	return "", nil
}

func (f fixedEvents) List(requestID string) ([]dbmodels.RequestEvent, error) {
	return f, nil
}

type fixedComments []dbmodels.RequestComment

func (f fixedComments) Create(rec dbmodels.RequestComment) (string, error) {
	return "", nil
}

func (f fixedComments) GetByID(requestID, id string) (*dbmodels.RequestComment, error) {
	return nil, nil
}

func (f fixedComments) Update(requestID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f fixedComments) Delete(requestID, id string) error {
	return nil
}

func (f fixedComments) List(requestID string) ([]dbmodels.RequestComment, error) {
	return f, nil
}

type fixedStages map[string]string

func (f fixedStages) Create(rec dbmodels.Stage) (string, error) {
	return "", nil
}

func (f fixedStages) GetByID(id string) (*dbmodels.Stage, error) {
	return nil, nil
}

func (f fixedStages) GetByIDs(ids []string) ([]dbmodels.Stage, error) {
	result := []dbmodels.Stage{}
	for _, id := range ids {
		if name, ok := f[id]; ok {
			result = append(result, dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: id}, Name: name})
		}
	}
	return result, nil
}

func (f fixedStages) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f fixedStages) List() ([]dbmodels.Stage, error) {
	return nil, nil
}

func TestTimeline(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	at := func(minutes int) dbmodels.BaseModel {
		return dbmodels.BaseModel{ID: "rec", CreatedAt: base.Add(time.Duration(minutes) * time.Minute)}
	}
	handler := impl{
		requestStore: oneRequest{rec: dbmodels.Request{BaseModel: dbmodels.BaseModel{ID: "r1"}, CreatorID: "creator"}},
		eventStore: fixedEvents{
			{BaseModel: at(1), UserID: "u1", Action: models.EventActionApprove, Value: "a"},
			{BaseModel: at(3), UserID: "creator", Action: models.EventActionUpdate, Value: `[{"id":"v1","name":"Бюджет","fromValue":"10","toValue":"20"}]`},
		},
		commentStore: fixedComments{
			{BaseModel: at(2), UserID: "creator", Comment: "согласуйте"},
		},
		stageStore: fixedStages{"a": "Руководитель"},
	}
	creator := models.Principal{UserID: "creator"}

	events, err := handler.List(creator, "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Согласовано на этапе «Руководитель»", events[0].Description)
	require.Equal(t, "Бюджет: «10» → «20»", events[1].Description)

	timeline, err := handler.Timeline(creator, "r1")
	require.NoError(t, err)
	types := []string{}
	for _, item := range timeline {
		types = append(types, item.Type)
	}
	require.Equal(t, []string{
		requestapimodels.TimelineEvent,
		requestapimodels.TimelineComment,
		requestapimodels.TimelineEvent,
	}, types)
	require.Equal(t, "согласуйте", timeline[1].Comment.Comment)

	_, err = handler.List(models.Principal{UserID: "outsider"}, "r1")
	require.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = handler.Timeline(creator, "missing")
	require.ErrorIs(t, err, models.ErrRequestNotFound)
}
