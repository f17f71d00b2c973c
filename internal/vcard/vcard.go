// Package vcard turns address book exports into birth inputs.
package vcard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// maxConsecutiveFailures stops decoding a stream that keeps failing.
const maxConsecutiveFailures = 16

// Options tune the import.
type Options struct {
	// DefaultGender applies to cards without a GENDER property. Empty skips them.
	DefaultGender engine.Gender
}

// Decode reads every card of r. Cards that cannot yield a full birth date, a
// name or a gender are skipped with a log entry.
func Decode(r io.Reader, opts Options) ([]engine.BirthInput, error) {
	log := slog.With(config.LogKeyComponent, config.CompImport)
	decoder := vcard.NewDecoder(r)

	var (
		inputs   []engine.BirthInput
		failures int
	)
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			failures++
			if failures > maxConsecutiveFailures {
				return inputs, fmt.Errorf("%s: %w", config.ErrVCardRead, err)
			}
			// Log error but continue to next card to maximize data recovery
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		failures = 0

		in, ok := toInput(card, opts, log)
		if ok {
			inputs = append(inputs, in)
		}
	}
	return inputs, nil
}

func toInput(card vcard.Card, opts Options, log *slog.Logger) (engine.BirthInput, bool) {
	name := cardName(card)

	bday := card.Value(vcard.FieldBirthday)
	date, yearKnown, err := parseDate(bday)
	if err != nil || !yearKnown {
		log.Debug(config.MsgSkippedDate, config.LogKeyName, name, config.LogKeyDOB, bday)
		return engine.BirthInput{}, false
	}

	gender := opts.DefaultGender
	switch sex, _ := card.Gender(); sex {
	case vcard.SexMale:
		gender = engine.Male
	case vcard.SexFemale:
		gender = engine.Female
	}
	if gender == "" {
		log.Warn(config.MsgSkippedGender, config.LogKeyName, name)
		return engine.BirthInput{}, false
	}

	cal := engine.Solar
	if strings.EqualFold(strings.TrimSpace(card.Value(config.VCardXCalendar)), string(engine.Lunar)) {
		cal = engine.Lunar
	}

	return engine.BirthInput{
		Name:       name,
		Gender:     gender,
		Calendar:   cal,
		BirthDate:  date.Format(config.DateFormatFullDash),
		BirthPlace: cardPlace(card),
	}, true
}

// cardName prefers FN, then the structured N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		parts := make([]string, 0, 2)
		for _, p := range []string{n.GivenName, n.FamilyName} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// cardPlace checks BIRTHPLACE (RFC 6474), X-BIRTHPLACE, then the address locality.
func cardPlace(card vcard.Card) string {
	for _, field := range []string{config.VCardBirthplace, config.VCardXBirthplace} {
		if v := strings.TrimSpace(card.Value(field)); v != "" {
			return v
		}
	}
	if addr := card.Address(); addr != nil {
		return strings.TrimSpace(addr.Locality)
	}
	return ""
}

// parseDate handles the vCard date forms. Year-less dates parse with
// yearKnown false.
func parseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
