package apimodels

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count,omitempty"` //для списков, общее кол-во записей, учитывая фильтр (если он есть)
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице
	Page  int `json:"page"`  // Страница (1,2,3..)
}

func (r Pagination) Validate() error {
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: Response{
			Status: "success",
			Data:   data,
		},
		RowCount: rowCount,
	}
}

var validate = validator.New()

// ValidateStruct проверяет теги validate и возвращает первое нарушение понятным сообщением
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	fieldErr := validationErrors[0]
	switch fieldErr.Tag() {
	case "required":
		return errors.Errorf("не заполнено поле %v", fieldErr.Field())
	case "email":
		return errors.Errorf("некорректный адрес почты в поле %v", fieldErr.Field())
	case "min":
		return errors.Errorf("поле %v должно содержать не меньше %v элементов", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return errors.Errorf("недопустимое значение поля %v, ожидается одно из: %v", fieldErr.Field(), fieldErr.Param())
	}
	return errors.Errorf("некорректное значение поля %v", fieldErr.Field())
}
