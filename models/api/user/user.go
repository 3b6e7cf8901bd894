package userapimodels

import (
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type UserData struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (u UserData) Validate() error {
	return apimodels.ValidateStruct(u)
}

type AdminFlagData struct {
	IsAdmin bool `json:"is_admin"`
}

func (u AdminFlagData) Validate() error {
	return nil
}

// PreferencesData настройки почтовых уведомлений пользователя
type PreferencesData struct {
	EmailWhenRequestCreated            bool `json:"email_when_request_created"`
	EmailWhenRequestCommentedOn        bool `json:"email_when_request_commented_on"`
	EmailWhenRequestStageChanged       bool `json:"email_when_request_stage_changed"`
	EmailWhenAwaitingMyRequestApproval bool `json:"email_when_awaiting_my_request_approval"`
}

func (u PreferencesData) Validate() error {
	return nil
}

type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	IsAdmin bool   `json:"is_admin"`
	PreferencesData
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:      rec.ID,
		Name:    rec.Name,
		Email:   rec.Email,
		Image:   rec.Image,
		IsAdmin: rec.IsAdmin,
		PreferencesData: PreferencesData{
			EmailWhenRequestCreated:            rec.EmailWhenRequestCreated,
			EmailWhenRequestCommentedOn:        rec.EmailWhenRequestCommentedOn,
			EmailWhenRequestStageChanged:       rec.EmailWhenRequestStageChanged,
			EmailWhenAwaitingMyRequestApproval: rec.EmailWhenAwaitingMyRequestApproval,
		},
	}
}
