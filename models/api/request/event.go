package requestapimodels

import (
	"fmt"
	"strings"
	"time"

	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type EventView struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	User        UserShort          `json:"user"`
	Action      models.EventAction `json:"action"`
	ActionName  string             `json:"action_name"`
	Value       string             `json:"value"`
	Description string             `json:"description"`
	Changes     []FieldChange      `json:"changes,omitempty"` // только для UPDATE
}

// EventConvert stageNames нужен для описания решений по этапу
func EventConvert(rec dbmodels.RequestEvent, stageNames map[string]string) EventView {
	result := EventView{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		User:       UserShortConvert(rec.User, rec.UserID),
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		Value:      rec.Value,
	}
	stageName := stageNames[rec.Value]
	if stageName == "" {
		stageName = rec.Value
	}
	switch rec.Action {
	case models.EventActionApprove:
		result.Description = fmt.Sprintf("Согласовано на этапе «%v»", stageName)
	case models.EventActionReject:
		result.Description = fmt.Sprintf("Отклонено на этапе «%v»", stageName)
	case models.EventActionReopen:
		result.Description = fmt.Sprintf("Открыто повторно с этапа «%v»", stageName)
	case models.EventActionUpdate:
		changes, err := ParseFieldChanges(rec.Value)
		if err != nil {
			result.Description = rec.Action.ToHuman()
			break
		}
		result.Changes = changes
		parts := make([]string, 0, len(changes))
		for _, change := range changes {
			parts = append(parts, fmt.Sprintf("%v: «%v» → «%v»", change.Name, change.FromValue, change.ToValue))
		}
		result.Description = strings.Join(parts, "; ")
	default:
		result.Description = rec.Action.ToHuman()
	}
	return result
}

type CommentData struct {
	Comment string `json:"comment" validate:"required"`
}

func (r CommentData) Validate() error {
	if strings.TrimSpace(r.Comment) == "" {
		return apimodels.ValidateStruct(CommentData{})
	}
	return nil
}

type CommentView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      UserShort `json:"user"`
	Comment   string    `json:"comment"`
}

func CommentConvert(rec dbmodels.RequestComment) CommentView {
	return CommentView{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		User:      UserShortConvert(rec.User, rec.UserID),
		Comment:   rec.Comment,
	}
}

const (
	TimelineEvent   = "event"
	TimelineComment = "comment"
)

// TimelineItem элемент общей ленты заявки: событие или комментарий
type TimelineItem struct {
	Type      string       `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Event     *EventView   `json:"event,omitempty"`
	Comment   *CommentView `json:"comment,omitempty"`
}
