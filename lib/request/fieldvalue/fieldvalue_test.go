package fieldvalue

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
)

func TestParse(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		value, err := Parse(models.FieldTypeNumber, "10")
		require.NoError(t, err)
		require.Equal(t, KindNumber, value.Kind)
		require.Equal(t, float64(10), value.Number)
		require.Equal(t, "10", value.String())

		value, err = Parse(models.FieldTypeNumber, " 1.50 ")
		require.NoError(t, err)
		require.Equal(t, "1.5", value.String())
	})
	t.Run("invalid number is an explicit error", func(t *testing.T) {
		for _, raw := range []string{"abc", "NaN", "Inf", "1,5"} {
			_, err := Parse(models.FieldTypeNumber, raw)
			require.Error(t, err, raw)
			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			require.Equal(t, raw, formatErr.Raw)
		}
	})
	t.Run("date", func(t *testing.T) {
		value, err := Parse(models.FieldTypeDate, "2024-03-01")
		require.NoError(t, err)
		require.Equal(t, KindDate, value.Kind)
		require.True(t, value.DateOnly)
		require.Equal(t, "2024-03-01", value.String())

		value, err = Parse(models.FieldTypeDate, "01.03.2024")
		require.NoError(t, err)
		require.Equal(t, "2024-03-01", value.String())

		value, err = Parse(models.FieldTypeDate, "2024-03-01T10:00:00+03:00")
		require.NoError(t, err)
		require.False(t, value.DateOnly)
		require.Equal(t, "2024-03-01T07:00:00Z", value.String())

		_, err = Parse(models.FieldTypeDate, "завтра")
		require.Error(t, err)
	})
	t.Run("boolean", func(t *testing.T) {
		value, err := Parse(models.FieldTypeBoolean, "1")
		require.NoError(t, err)
		require.True(t, value.Boolean)
		require.Equal(t, "1", value.String())

		value, err = Parse(models.FieldTypeBoolean, "false")
		require.NoError(t, err)
		require.False(t, value.Boolean)
		require.Equal(t, "0", value.String())

		_, err = Parse(models.FieldTypeBoolean, "да")
		require.Error(t, err)
	})
	t.Run("text passes through", func(t *testing.T) {
		value, err := Parse(models.FieldTypeParagraph, "  как есть ")
		require.NoError(t, err)
		require.Equal(t, "  как есть ", value.String())
		require.Equal(t, "  как есть ", value.Interface())
	})
	t.Run("empty is allowed for every type", func(t *testing.T) {
		for _, fieldType := range []models.RequestFieldType{models.FieldTypeText, models.FieldTypeNumber,
			models.FieldTypeDate, models.FieldTypeBoolean, models.FieldTypeSelect} {
			value, err := Parse(fieldType, "")
			require.NoError(t, err)
			require.Equal(t, KindEmpty, value.Kind)
			require.Equal(t, "", value.String())
			require.Nil(t, value.Interface())
		}
	})
	t.Run("unknown type", func(t *testing.T) {
		_, err := Parse(models.RequestFieldType("FILE"), "x")
		require.Error(t, err)
	})
}

func TestCanonicalRoundTrip(t *testing.T) {
	cases := []struct {
		fieldType models.RequestFieldType
		raw       string
	}{
		{models.FieldTypeNumber, "1e3"},
		{models.FieldTypeNumber, "-0.25"},
		{models.FieldTypeDate, "2023-12-31"},
		{models.FieldTypeDate, "2023-12-31T23:59:59.5Z"},
		{models.FieldTypeBoolean, "TRUE"},
		{models.FieldTypeSelect, "opt-1"},
	}
	for _, item := range cases {
		canonical, err := Canonicalize(item.fieldType, nil, item.raw)
		require.NoError(t, err, item.raw)
		again, err := Canonicalize(item.fieldType, nil, canonical)
		require.NoError(t, err)
		require.Equal(t, canonical, again, item.raw)
	}
}

func TestParseFieldOptions(t *testing.T) {
	options := []string{"opt-1", "opt-2"}
	value, err := ParseField(models.FieldTypeSelect, options, "opt-2")
	require.NoError(t, err)
	require.Equal(t, "opt-2", value.OptionID)

	_, err = ParseField(models.FieldTypeSelect, options, "opt-3")
	require.Error(t, err)
}
