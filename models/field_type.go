package models

type RequestFieldType string

const (
	FieldTypeText      RequestFieldType = "TEXT"
	FieldTypeParagraph RequestFieldType = "PARAGRAPH"
	FieldTypeNumber    RequestFieldType = "NUMBER"
	FieldTypeBoolean   RequestFieldType = "BOOLEAN"
	FieldTypeDate      RequestFieldType = "DATE"
	FieldTypeSelect    RequestFieldType = "SELECT"
)

var fieldTypeHumanName = map[RequestFieldType]string{
	FieldTypeText:      "Строка",
	FieldTypeParagraph: "Текст",
	FieldTypeNumber:    "Число",
	FieldTypeBoolean:   "Да/Нет",
	FieldTypeDate:      "Дата",
	FieldTypeSelect:    "Выбор из списка",
}

func (t RequestFieldType) ToHuman() string {
	if human, exist := fieldTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t RequestFieldType) IsValid() bool {
	_, ok := fieldTypeHumanName[t]
	return ok
}
