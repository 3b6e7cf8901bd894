package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type validateSample struct {
	Name  string   `json:"name" validate:"required"`
	Email string   `json:"email" validate:"omitempty,email"`
	IDs   []string `json:"ids" validate:"min=1"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(validateSample{Name: "a", IDs: []string{"1"}}))
	require.EqualError(t, ValidateStruct(validateSample{IDs: []string{"1"}}), "не заполнено поле Name")
	require.EqualError(t, ValidateStruct(validateSample{Name: "a", Email: "x", IDs: []string{"1"}}), "некорректный адрес почты в поле Email")
	require.EqualError(t, ValidateStruct(validateSample{Name: "a"}), "поле IDs должно содержать не меньше 1 элементов")
}

func TestPagination(t *testing.T) {
	page, limit := Pagination{}.GetPage()
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
	page, limit = Pagination{Page: 3, Limit: 500}.GetPage()
	require.Equal(t, 3, page)
	require.Equal(t, 100, limit)
}
