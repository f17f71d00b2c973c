// Package calendar holds the engine.Converter implementations.
package calendar

import (
	"context"
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// termStartDays is the approximate Gregorian day on which each month's solar
// term (절기) begins, January first. From that day the month branch advances.
var termStartDays = [12]int{6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

const (
	// 입춘 is taken as February 4.
	newYearMonth = 2
	newYearDay   = 4
	// 1984 was a 甲子 year.
	cycleEpochYear = 4
	// Offset from the Julian day number to the sexagenary day index.
	dayCycleOffset = 49
)

// FixedTermConverter resolves solar dates locally with fixed solar term
// boundaries. Dates within a day of a term boundary may land in the
// neighbouring month. Lunar input is rejected.
type FixedTermConverter struct{}

var _ engine.Converter = FixedTermConverter{}

// Convert implements engine.Converter.
func (FixedTermConverter) Convert(ctx context.Context, m engine.Moment) (engine.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return engine.Resolution{}, err
	}
	if m.Calendar != engine.Solar {
		return engine.Resolution{}, fmt.Errorf("%s: %w", config.ErrLunarUnsupported, engine.ErrConversion)
	}

	d := m.Date
	year := yearPillar(d)
	month := monthPillar(d, year.Stem)
	day := cyclePillar(julianDayNumber(d.Year, d.Month, d.Day) + dayCycleOffset)

	res := engine.Resolution{
		SolarDate: d.String(),
		Year:      year.Text(),
		Month:     month.Text(),
		Day:       day.Text(),
	}
	if m.HourKnown {
		res.Hour = hourPillar(day.Stem, m.Hour).Text()
	}
	return res, nil
}

// julianDayNumber is the Fliegel-Van Flandern conversion for Gregorian dates.
func julianDayNumber(y, m, d int) int {
	a := (14 - m) / 12
	y2 := y + 4800 - a
	m2 := m + 12*a - 3
	return d + (153*m2+2)/5 + 365*y2 + y2/4 - y2/100 + y2/400 - 32045
}

// cyclePillar maps a sexagenary index (any integer) onto its pillar.
func cyclePillar(i int) engine.Pillar {
	i = ((i % 60) + 60) % 60
	return engine.NewPillar(engine.Stem(i%10), engine.Branch(i%12))
}

// solarYear is the year in effect on d, switching at 입춘.
func solarYear(d engine.Date) int {
	if d.Month < newYearMonth || (d.Month == newYearMonth && d.Day < newYearDay) {
		return d.Year - 1
	}
	return d.Year
}

func yearPillar(d engine.Date) engine.Pillar {
	return cyclePillar(solarYear(d) - cycleEpochYear)
}

// monthPillar derives the branch from the term table and the stem with the
// 五虎遁 rule: 甲/己 years open on 丙寅, 乙/庚 on 戊寅, and so on.
func monthPillar(d engine.Date, yearStem engine.Stem) engine.Pillar {
	branch := (d.Month - 1) % 12
	if d.Day >= termStartDays[d.Month-1] {
		branch = d.Month % 12
	}
	offset := (branch - int(engine.BranchIn) + 12) % 12
	first := (int(yearStem)%5)*2 + 2
	return engine.NewPillar(engine.Stem((first+offset)%10), engine.Branch(branch))
}

// hourPillar applies the 五鼠遁 rule: 甲/己 days open on 甲子, 乙/庚 on 丙子, and so on.
func hourPillar(dayStem engine.Stem, hour engine.Branch) engine.Pillar {
	first := (int(dayStem) % 5) * 2
	return engine.NewPillar(engine.Stem((first+int(hour))%10), hour)
}
