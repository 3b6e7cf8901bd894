package requestapimodels

import (
	"encoding/json"
	"time"

	"request-flow-backend/lib/request/fieldvalue"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type FieldValueData struct {
	FieldID string `json:"field_id" validate:"required"` // ИД поля заявки (RequestField)
	Value   string `json:"value"`                        // значение в строковом виде
}

type RequestCreateData struct {
	RequestTypeID string           `json:"request_type_id" validate:"required"`
	DepartmentID  string           `json:"department_id" validate:"required"`
	Fields        []FieldValueData `json:"fields" validate:"dive"`
}

func (r RequestCreateData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RequestFieldsData struct {
	Fields []FieldValueData `json:"fields" validate:"min=1,dive"`
}

func (r RequestFieldsData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type ApproverAddData struct {
	StageID string `json:"stage_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

func (r ApproverAddData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type MemberData struct {
	UserID string `json:"user_id" validate:"required"`
}

func (r MemberData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type ListFilter struct {
	apimodels.Pagination
	Status       string `json:"status"`        // имя статуса: Pending, Approved, Rejected ...
	DepartmentID string `json:"department_id"` // подразделение
}

func (r ListFilter) Validate() error {
	return nil
}

func (r ListFilter) ToDB() dbmodels.RequestFilter {
	page, limit := r.GetPage()
	return dbmodels.RequestFilter{
		StatusName:   r.Status,
		DepartmentID: r.DepartmentID,
		Page:         page,
		Limit:        limit,
	}
}

// FieldChange изменение поля в событии UPDATE
type FieldChange struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FromValue string `json:"fromValue"`
	ToValue   string `json:"toValue"`
}

func ParseFieldChanges(value string) ([]FieldChange, error) {
	result := []FieldChange{}
	if value == "" {
		return result, nil
	}
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return nil, err
	}
	return result, nil
}

type UserShort struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UserShortConvert(rec *dbmodels.User, id string) UserShort {
	if rec == nil {
		return UserShort{ID: id}
	}
	return UserShort{
		ID:    rec.ID,
		Name:  rec.GetName(),
		Email: rec.Email,
	}
}

type OptionView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FieldView struct {
	ID          string                  `json:"id"`       // ИД значения в заявке
	FieldID     string                  `json:"field_id"` // ИД поля
	Name        string                  `json:"name"`
	Type        models.RequestFieldType `json:"type"`
	Value       string                  `json:"value"`                  // хранимое значение
	Formatted   interface{}             `json:"formatted"`              // значение по типу поля
	FormatError string                  `json:"format_error,omitempty"` // значение не разобрано по типу поля
	Options     []OptionView            `json:"options,omitempty"`
}

// FieldConvert при ошибке разбора отдаёт хранимую строку без изменений
func FieldConvert(rec dbmodels.RequestFieldInRequest) FieldView {
	result := FieldView{
		ID:      rec.ID,
		FieldID: rec.RequestFieldID,
		Value:   rec.Value,
	}
	if rec.RequestField == nil {
		result.Formatted = rec.Value
		return result
	}
	result.Name = rec.RequestField.Name
	result.Type = rec.RequestField.Type
	for _, option := range rec.RequestField.Options {
		result.Options = append(result.Options, OptionView{ID: option.ID, Name: option.Name})
	}
	value, err := fieldvalue.Parse(rec.RequestField.Type, rec.Value)
	if err != nil {
		result.Formatted = rec.Value
		result.FormatError = err.Error()
		return result
	}
	result.Formatted = value.Interface()
	return result
}

type StageApproverView struct {
	ID        string             `json:"id"`
	StageID   string             `json:"stage_id"`
	StageName string             `json:"stage_name"`
	User      UserShort          `json:"user"`
	Decision  models.EventAction `json:"decision,omitempty"`   // APPROVE/REJECT после последнего повторного открытия
	DecidedAt *time.Time         `json:"decided_at,omitempty"` // время решения
}

type StageProgressView struct {
	StageID   string `json:"stage_id"`
	StageName string `json:"stage_name"`
	Order     int    `json:"order"`
	State     string `json:"state"` // APPROVED, CURRENT, REJECTED, UPCOMING
}

type RequestView struct {
	ID               string              `json:"id"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DepartmentID     string              `json:"department_id"`
	DepartmentName   string              `json:"department_name"`
	RequestTypeID    string              `json:"request_type_id"`
	RequestTypeName  string              `json:"request_type_name"`
	Creator          UserShort           `json:"creator"`
	StageID          string              `json:"stage_id"`
	StageName        string              `json:"stage_name"`
	StatusID         string              `json:"status_id"`
	StatusName       string              `json:"status_name"`
	CurrentApprovers []UserShort         `json:"current_approvers"`
	Participants     []UserShort         `json:"participants"`
	Recruiters       []UserShort         `json:"recruiters"`
	StageApprovers   []StageApproverView `json:"stage_approvers"`
	Fields           []FieldView         `json:"fields"`
	Progress         []StageProgressView `json:"progress"`
}

func membersConvert(rec dbmodels.Request, role models.MemberRole) []UserShort {
	result := []UserShort{}
	for _, member := range rec.Members {
		if member.Role == role {
			result = append(result, UserShortConvert(member.User, member.UserID))
		}
	}
	return result
}

// RequestConvert заполняет атрибуты заявки, этапы процесса и решения согласующих добавляет обработчик
func RequestConvert(rec dbmodels.Request) RequestView {
	result := RequestView{
		ID:               rec.ID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
		DepartmentID:     rec.DepartmentID,
		RequestTypeID:    rec.RequestTypeID,
		Creator:          UserShortConvert(rec.Creator, rec.CreatorID),
		StageID:          rec.StageID,
		StatusID:         rec.RequestStatusID,
		StatusName:       rec.GetStatusName(),
		CurrentApprovers: membersConvert(rec, models.MemberRoleCurrentApprover),
		Participants:     membersConvert(rec, models.MemberRoleParticipant),
		Recruiters:       membersConvert(rec, models.MemberRoleRecruiter),
		StageApprovers:   []StageApproverView{},
		Fields:           []FieldView{},
		Progress:         []StageProgressView{},
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
	}
	if rec.RequestType != nil {
		result.RequestTypeName = rec.RequestType.Name
	}
	if rec.Stage != nil {
		result.StageName = rec.Stage.Name
	}
	for _, field := range rec.Fields {
		result.Fields = append(result.Fields, FieldConvert(field))
	}
	for _, approver := range rec.StageApprovers {
		view := StageApproverView{
			ID:      approver.ID,
			StageID: approver.StageID,
			User:    UserShortConvert(approver.User, approver.UserID),
		}
		if approver.Stage != nil {
			view.StageName = approver.Stage.Name
		}
		result.StageApprovers = append(result.StageApprovers, view)
	}
	return result
}

type RequestListItem struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	RequestTypeName string    `json:"request_type_name"`
	DepartmentName  string    `json:"department_name"`
	CreatorName     string    `json:"creator_name"`
	StageName       string    `json:"stage_name"`
	StatusName      string    `json:"status_name"`
}

func RequestListItemConvert(rec dbmodels.Request) RequestListItem {
	result := RequestListItem{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		StatusName: rec.GetStatusName(),
	}
	if rec.RequestType != nil {
		result.RequestTypeName = rec.RequestType.Name
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
	}
	if rec.Creator != nil {
		result.CreatorName = rec.Creator.GetName()
	}
	if rec.Stage != nil {
		result.StageName = rec.Stage.Name
	}
	return result
}
