package engine

import (
	"context"
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
)

// Converter is the boundary to the Calendar Conversion Service.
// Implementations return errors wrapping ErrConversion for dates that have no
// resolution (e.g. a leap month that does not exist that year).
type Converter interface {
	Convert(ctx context.Context, m Moment) (Resolution, error)
}

// Resolution is the converter output, consumed verbatim.
// Hour is empty when the moment carries no birth time.
type Resolution struct {
	SolarDate string `json:"solarDate"`
	LunarDate string `json:"lunarDate"`
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Hour      string `json:"hour,omitempty"`
}

// Pillars parses the four canonical strings. The hour pillar stays unknown
// unless the moment had a birth time.
func (r Resolution) Pillars(hourKnown bool) (Pillars, error) {
	var p Pillars
	var err error
	if p.Year, err = ParsePillar(r.Year); err != nil {
		return Pillars{}, fmt.Errorf("year: %w", err)
	}
	if p.Month, err = ParsePillar(r.Month); err != nil {
		return Pillars{}, fmt.Errorf("month: %w", err)
	}
	if p.Day, err = ParsePillar(r.Day); err != nil {
		return Pillars{}, fmt.Errorf("day: %w", err)
	}
	if !hourKnown {
		p.Hour = UnknownPillar
		return p, nil
	}
	if p.Hour, err = ParsePillar(r.Hour); err != nil {
		return Pillars{}, fmt.Errorf("%s: %w", config.FieldBirthTime, err)
	}
	return p, nil
}
