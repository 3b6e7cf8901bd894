package usershandler

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	userstore "request-flow-backend/lib/users/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	userapimodels "request-flow-backend/models/api/user"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(actor models.Principal, request userapimodels.UserData) (id string, err error)
	Get(actor models.Principal, id string) (item userapimodels.UserView, err error)
	List(actor models.Principal) (list []userapimodels.UserView, err error)
	Delete(actor models.Principal, id string) error
	SetAdmin(actor models.Principal, id string, request userapimodels.AdminFlagData) error
	UpdatePreferences(actor models.Principal, id string, request userapimodels.PreferencesData) (item userapimodels.UserView, err error)
	EnsureAdmin(email, name string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(userstore.NewInstance(db.DB))
}

func NewHandlerWithStore(store userstore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store userstore.Provider
}

func (i impl) Create(actor models.Principal, request userapimodels.UserData) (id string, err error) {
	if !actor.IsAdmin {
		return "", models.ErrUnauthorized
	}
	email := strings.TrimSpace(request.Email)
	existing, err := i.store.GetByEmail(email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки почты пользователя")
	}
	if existing != nil {
		return "", models.ErrUserExists
	}
	id, err = i.store.Create(dbmodels.User{
		Name:                               request.Name,
		Email:                              email,
		EmailWhenRequestCreated:            true,
		EmailWhenRequestCommentedOn:        true,
		EmailWhenRequestStageChanged:       true,
		EmailWhenAwaitingMyRequestApproval: true,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания пользователя")
	}
	log.
		WithField("user_id", actor.UserID).
		WithField("rec_id", id).
		Info("создан пользователь")
	return id, nil
}

func (i impl) Get(actor models.Principal, id string) (item userapimodels.UserView, err error) {
	rec, err := i.getUser(id)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) List(actor models.Principal) (list []userapimodels.UserView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	list = make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, userapimodels.UserConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(actor models.Principal, id string) error {
	if !actor.IsAdmin {
		return models.ErrUnauthorized
	}
	if _, err := i.getUser(id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления пользователя")
	}
	log.
		WithField("user_id", actor.UserID).
		WithField("rec_id", id).
		Info("удален пользователь")
	return nil
}

func (i impl) SetAdmin(actor models.Principal, id string, request userapimodels.AdminFlagData) error {
	if !actor.IsAdmin {
		return models.ErrUnauthorized
	}
	if _, err := i.getUser(id); err != nil {
		return err
	}
	if err := i.store.Update(id, map[string]interface{}{"is_admin": request.IsAdmin}); err != nil {
		return errors.Wrap(err, "ошибка обновления пользователя")
	}
	log.
		WithField("user_id", actor.UserID).
		WithField("rec_id", id).
		WithField("is_admin", request.IsAdmin).
		Info("изменены права администратора")
	return nil
}

// UpdatePreferences свои настройки меняет пользователь, чужие только администратор
func (i impl) UpdatePreferences(actor models.Principal, id string, request userapimodels.PreferencesData) (item userapimodels.UserView, err error) {
	if actor.UserID != id && !actor.IsAdmin {
		return userapimodels.UserView{}, models.ErrUnauthorized
	}
	if _, err = i.getUser(id); err != nil {
		return userapimodels.UserView{}, err
	}
	updMap := map[string]interface{}{
		"email_when_request_created":              request.EmailWhenRequestCreated,
		"email_when_request_commented_on":         request.EmailWhenRequestCommentedOn,
		"email_when_request_stage_changed":        request.EmailWhenRequestStageChanged,
		"email_when_awaiting_my_request_approval": request.EmailWhenAwaitingMyRequestApproval,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return userapimodels.UserView{}, errors.Wrap(err, "ошибка обновления настроек уведомлений")
	}
	log.
		WithField("user_id", actor.UserID).
		WithField("rec_id", id).
		Info("обновлены настройки уведомлений")
	return i.Get(actor, id)
}

// EnsureAdmin создает администратора при первом запуске, пустая почта пропускается
func (i impl) EnsureAdmin(email, name string) error {
	if email == "" {
		return nil
	}
	rec, err := i.store.GetByEmail(email)
	if err != nil {
		return errors.Wrap(err, "ошибка получения администратора")
	}
	if rec != nil {
		if rec.IsAdmin {
			return nil
		}
		return i.store.Update(rec.ID, map[string]interface{}{"is_admin": true})
	}
	id, err := i.store.Create(dbmodels.User{
		Name:                               name,
		Email:                              email,
		IsAdmin:                            true,
		EmailWhenRequestCreated:            true,
		EmailWhenRequestCommentedOn:        true,
		EmailWhenRequestStageChanged:       true,
		EmailWhenAwaitingMyRequestApproval: true,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка создания администратора")
	}
	log.WithField("rec_id", id).Info("создан администратор")
	return nil
}

func (i impl) getUser(id string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return nil, models.ErrUserNotFound
	}
	return rec, nil
}
