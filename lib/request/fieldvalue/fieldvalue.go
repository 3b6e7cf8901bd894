package fieldvalue

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"request-flow-backend/models"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindBoolean
	KindDate
	KindSelection
)

const dateOnlyLayout = "2006-01-02"

// допустимые форматы ввода даты, первый совпавший задаёт канонический вид
var dateLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{dateOnlyLayout, true},
	{"02.01.2006", true},
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
}

// Value типизированное значение поля заявки
type Value struct {
	Kind     Kind
	Text     string
	Number   float64
	Boolean  bool
	Date     time.Time
	DateOnly bool
	OptionID string
}

// FormatError строковое значение не соответствует типу поля
type FormatError struct {
	FieldType models.RequestFieldType
	Raw       string
	Reason    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("значение %q не соответствует типу поля %v: %v", e.Raw, e.FieldType.ToHuman(), e.Reason)
}

// Parse разбирает хранимую строку по типу поля. Пустая строка допустима для любого типа.
func Parse(fieldType models.RequestFieldType, raw string) (Value, error) {
	trimmed := strings.TrimSpace(raw)
	switch fieldType {
	case models.FieldTypeText, models.FieldTypeParagraph:
		if raw == "" {
			return Value{Kind: KindEmpty}, nil
		}
		return Value{Kind: KindText, Text: raw}, nil
	}
	if trimmed == "" {
		return Value{Kind: KindEmpty}, nil
	}
	switch fieldType {
	case models.FieldTypeNumber:
		number, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
			return Value{}, &FormatError{FieldType: fieldType, Raw: raw, Reason: "ожидается число"}
		}
		return Value{Kind: KindNumber, Number: number}, nil
	case models.FieldTypeBoolean:
		switch strings.ToLower(trimmed) {
		case "1", "true":
			return Value{Kind: KindBoolean, Boolean: true}, nil
		case "0", "false":
			return Value{Kind: KindBoolean, Boolean: false}, nil
		}
		return Value{}, &FormatError{FieldType: fieldType, Raw: raw, Reason: "ожидается 1 или 0"}
	case models.FieldTypeDate:
		for _, item := range dateLayouts {
			date, err := time.Parse(item.layout, trimmed)
			if err == nil {
				return Value{Kind: KindDate, Date: date, DateOnly: item.dateOnly}, nil
			}
		}
		return Value{}, &FormatError{FieldType: fieldType, Raw: raw, Reason: "ожидается дата в формате ГГГГ-ММ-ДД"}
	case models.FieldTypeSelect:
		return Value{Kind: KindSelection, OptionID: trimmed}, nil
	}
	return Value{}, &FormatError{FieldType: fieldType, Raw: raw, Reason: "неизвестный тип поля"}
}

// ParseField разбирает значение с учётом вариантов выбора поля
func ParseField(fieldType models.RequestFieldType, optionIDs []string, raw string) (Value, error) {
	value, err := Parse(fieldType, raw)
	if err != nil {
		return Value{}, err
	}
	if value.Kind == KindSelection && len(optionIDs) != 0 && !slices.Contains(optionIDs, value.OptionID) {
		return Value{}, &FormatError{FieldType: fieldType, Raw: raw, Reason: "вариант не найден"}
	}
	return value, nil
}

// String канонический вид для хранения, повторный Parse возвращает то же значение
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBoolean:
		if v.Boolean {
			return "1"
		}
		return "0"
	case KindDate:
		if v.DateOnly {
			return v.Date.Format(dateOnlyLayout)
		}
		return v.Date.UTC().Format(time.RFC3339Nano)
	case KindSelection:
		return v.OptionID
	}
	return ""
}

// Interface значение для выдачи в api
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Number
	case KindBoolean:
		return v.Boolean
	case KindDate:
		if v.DateOnly {
			return v.Date.Format(dateOnlyLayout)
		}
		return v.Date.UTC()
	case KindSelection:
		return v.OptionID
	}
	return nil
}

// Canonicalize проверяет ввод и возвращает строку для хранения
func Canonicalize(fieldType models.RequestFieldType, optionIDs []string, raw string) (string, error) {
	value, err := ParseField(fieldType, optionIDs, raw)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}
