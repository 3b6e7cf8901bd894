package departmentprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"request-flow-backend/db"
	departmentstore "request-flow-backend/lib/dicts/department/store"
	userstore "request-flow-backend/lib/users/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (id string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (item dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
	SetMembers(id string, role models.MemberRole, request dictapimodels.DepartmentMembersData) (item dictapimodels.DepartmentView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	instance := impl{
		store:     departmentstore.NewInstance(tx),
		userStore: userstore.NewInstance(tx),
		tx:        tx,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
	)
	return instance
}

type impl struct {
	store     departmentstore.Provider
	userStore userstore.Provider
	tx        *gorm.DB
}

func (i impl) Create(request dictapimodels.DepartmentData) (id string, err error) {
	id, err = i.store.Create(dbmodels.Department{Name: request.Name})
	if err != nil {
		return "", err
	}
	log.
		WithField("department_name", request.Name).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	logger := log.WithField("rec_id", id)
	if _, err := i.Get(id); err != nil {
		return err
	}
	err := i.store.Update(id, map[string]interface{}{"name": request.Name})
	if err != nil {
		return err
	}
	logger.Info("обновлено подразделение")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, errors.Wrap(err, "ошибка получения подразделения")
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, models.ErrDepartmentNotFound
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка подразделений")
	}
	list = make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

// SetMembers заменяет участников или рекрутеров подразделения, на созданные заявки не влияет
func (i impl) SetMembers(id string, role models.MemberRole, request dictapimodels.DepartmentMembersData) (item dictapimodels.DepartmentView, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("role", role)
	userIDs := uniqueIDs(request.UserIDs)
	err = i.tx.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		if _, err := txHandler.Get(id); err != nil {
			return err
		}
		users, err := txHandler.userStore.GetByIDs(userIDs)
		if err != nil {
			return errors.Wrap(err, "ошибка получения пользователей")
		}
		if len(users) != len(userIDs) {
			return models.ErrUserNotFound
		}
		if err = txHandler.store.ReplaceMembers(id, role, userIDs); err != nil {
			return errors.Wrapf(err, "ошибка сохранения пользователей подразделения с ролью %v", role)
		}
		return nil
	})
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	logger.WithField("count", len(userIDs)).Info("обновлен состав подразделения")
	return i.Get(id)
}

func uniqueIDs(ids []string) []string {
	result := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
