package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/go-saju/internal/config"
)

// Gender selects the daeun start age.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// CalendarSystem tells the converter how to read the birth date.
type CalendarSystem string

const (
	Solar CalendarSystem = "solar"
	Lunar CalendarSystem = "lunar"
)

// BirthInput is the caller-facing request. Field names follow the web form.
type BirthInput struct {
	Name       string         `json:"name"`
	Gender     Gender         `json:"gender"`
	Calendar   CalendarSystem `json:"calendarType"`
	LeapMonth  bool           `json:"isLeapMonth"`
	BirthDate  string         `json:"birthDate"`
	BirthTime  string         `json:"birthTime"`
	BirthPlace string         `json:"birthPlace"`
}

// Date is a calendar-relative day. Whether it is solar or lunar depends on the
// accompanying CalendarSystem.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf(config.FormatDate, d.Year, d.Month, d.Day)
}

// Moment is a validated BirthInput reduced to what the converter needs.
type Moment struct {
	Date      Date
	Calendar  CalendarSystem
	LeapMonth bool
	Hour      Branch
	HourKnown bool
}

// Key identifies the moment for caching. Equal moments resolve identically.
func (m Moment) Key() string {
	hour := config.UnknownPillarPart
	if m.HourKnown {
		hour = m.Hour.String()
	}
	return fmt.Sprintf(config.FormatCacheKey, m.Calendar, m.Date.Year, m.Date.Month, m.Date.Day, m.LeapMonth, hour)
}

// Validate checks every field and returns the normalized moment.
// Failures are *ValidationError values naming the field.
func (in BirthInput) Validate() (Moment, error) {
	var m Moment

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return m, invalid(config.FieldName, config.ReasonRequired)
	}
	if utf8.RuneCountInString(name) > config.MaxNameLength {
		return m, invalid(config.FieldName, config.ReasonTooLong)
	}

	switch in.Gender {
	case Male, Female:
	case "":
		return m, invalid(config.FieldGender, config.ReasonRequired)
	default:
		return m, invalid(config.FieldGender, config.ReasonUnknown)
	}

	switch in.Calendar {
	case Solar, Lunar:
		m.Calendar = in.Calendar
	case "":
		m.Calendar = Solar
	default:
		return m, invalid(config.FieldCalendar, config.ReasonUnknown)
	}
	if in.LeapMonth && m.Calendar != Lunar {
		return m, invalid(config.FieldLeapMonth, config.ReasonLeapSolar)
	}
	m.LeapMonth = in.LeapMonth

	d, err := parseDate(strings.TrimSpace(in.BirthDate), m.Calendar)
	if err != nil {
		return m, err
	}
	m.Date = d

	if slot := strings.TrimSpace(in.BirthTime); slot != "" {
		b, ok := ParseSlot(slot)
		if !ok {
			return m, invalid(config.FieldBirthTime, config.ReasonUnknown)
		}
		m.Hour, m.HourKnown = b, true
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.BirthPlace)) > config.MaxPlaceLength {
		return m, invalid(config.FieldPlace, config.ReasonTooLong)
	}

	return m, nil
}

func parseDate(value string, cal CalendarSystem) (Date, error) {
	if value == "" {
		return Date{}, invalid(config.FieldBirthDate, config.ReasonRequired)
	}
	var d Date
	// %d also accepts signs and short fields, so round-trip the canonical form.
	if _, err := fmt.Sscanf(value, "%d-%d-%d", &d.Year, &d.Month, &d.Day); err != nil || d.String() != value {
		return Date{}, invalid(config.FieldBirthDate, config.ReasonBadFormat)
	}
	if d.Year < config.MinBirthYear || d.Year > config.MaxBirthYear {
		return Date{}, invalid(config.FieldBirthDate, config.ReasonYearRange)
	}

	if cal == Lunar {
		if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > config.MaxLunarDay {
			return Date{}, invalid(config.FieldBirthDate, config.ReasonNoSuchDay)
		}
		return d, nil
	}

	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return Date{}, invalid(config.FieldBirthDate, config.ReasonNoSuchDay)
	}
	return d, nil
}
