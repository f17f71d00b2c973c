package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

func validInput() engine.BirthInput {
	return engine.BirthInput{
		Name:      "홍길동",
		Gender:    engine.Male,
		Calendar:  engine.Solar,
		BirthDate: "1990-05-15",
		BirthTime: "오시",
	}
}

func TestValidate_OK(t *testing.T) {
	m, err := validInput().Validate()
	require.NoError(t, err)

	assert.Equal(t, engine.Date{Year: 1990, Month: 5, Day: 15}, m.Date)
	assert.Equal(t, engine.Solar, m.Calendar)
	assert.True(t, m.HourKnown)
	assert.Equal(t, engine.BranchO, m.Hour)
	assert.Equal(t, "solar|1990-05-15|leap=false|hour=午", m.Key())
}

func TestValidate_Defaults(t *testing.T) {
	in := validInput()
	in.Calendar = ""
	in.BirthTime = " "

	m, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, engine.Solar, m.Calendar)
	assert.False(t, m.HourKnown)
	assert.Equal(t, "solar|1990-05-15|leap=false|hour=?", m.Key())
}

func TestValidate_Lunar(t *testing.T) {
	in := validInput()
	in.Calendar = engine.Lunar
	in.LeapMonth = true
	in.BirthDate = "2023-02-30"

	m, err := in.Validate()
	require.NoError(t, err, "lunar months may have 30 days")
	assert.True(t, m.LeapMonth)
	assert.Equal(t, engine.Lunar, m.Calendar)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*engine.BirthInput)
		field  string
		reason string
	}{
		{"empty name", func(in *engine.BirthInput) { in.Name = "  " }, config.FieldName, config.ReasonRequired},
		{"long name", func(in *engine.BirthInput) { in.Name = strings.Repeat("가", 65) }, config.FieldName, config.ReasonTooLong},
		{"missing gender", func(in *engine.BirthInput) { in.Gender = "" }, config.FieldGender, config.ReasonRequired},
		{"unknown gender", func(in *engine.BirthInput) { in.Gender = "other" }, config.FieldGender, config.ReasonUnknown},
		{"unknown calendar", func(in *engine.BirthInput) { in.Calendar = "julian" }, config.FieldCalendar, config.ReasonUnknown},
		{"leap on solar", func(in *engine.BirthInput) { in.LeapMonth = true }, config.FieldLeapMonth, config.ReasonLeapSolar},
		{"missing date", func(in *engine.BirthInput) { in.BirthDate = "" }, config.FieldBirthDate, config.ReasonRequired},
		{"slashes", func(in *engine.BirthInput) { in.BirthDate = "1990/05/15" }, config.FieldBirthDate, config.ReasonBadFormat},
		{"short fields", func(in *engine.BirthInput) { in.BirthDate = "1990-5-15" }, config.FieldBirthDate, config.ReasonBadFormat},
		{"trailing text", func(in *engine.BirthInput) { in.BirthDate = "1990-05-15x" }, config.FieldBirthDate, config.ReasonBadFormat},
		{"too old", func(in *engine.BirthInput) { in.BirthDate = "1899-12-31" }, config.FieldBirthDate, config.ReasonYearRange},
		{"too far", func(in *engine.BirthInput) { in.BirthDate = "2101-01-01" }, config.FieldBirthDate, config.ReasonYearRange},
		{"february 30", func(in *engine.BirthInput) { in.BirthDate = "2023-02-30" }, config.FieldBirthDate, config.ReasonNoSuchDay},
		{"not a leap year", func(in *engine.BirthInput) { in.BirthDate = "1900-02-29" }, config.FieldBirthDate, config.ReasonNoSuchDay},
		{"month 13", func(in *engine.BirthInput) { in.BirthDate = "1990-13-01" }, config.FieldBirthDate, config.ReasonNoSuchDay},
		{"lunar day 31", func(in *engine.BirthInput) {
			in.Calendar = engine.Lunar
			in.BirthDate = "1990-01-31"
		}, config.FieldBirthDate, config.ReasonNoSuchDay},
		{"unknown slot", func(in *engine.BirthInput) { in.BirthTime = "13:00" }, config.FieldBirthTime, config.ReasonUnknown},
		{"long place", func(in *engine.BirthInput) { in.BirthPlace = strings.Repeat("x", 65) }, config.FieldPlace, config.ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)

			var verr *engine.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestValidate_LeapDay(t *testing.T) {
	in := validInput()
	in.BirthDate = "2000-02-29"
	_, err := in.Validate()
	assert.NoError(t, err)
}
