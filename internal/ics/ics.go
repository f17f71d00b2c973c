// Package ics exports the time-bound parts of a profile (daeun periods and the
// lucky months of the seun year) as an iCalendar feed.
package ics

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// Options tune the export.
type Options struct {
	// Now stamps every event (DTSTAMP).
	Now time.Time
	// ReminderTrigger is an ISO 8601 duration such as "-P1D". Empty disables
	// the alarms on lucky months.
	ReminderTrigger string
}

// Encode renders the profile as a VCALENDAR.
func Encode(p *engine.Profile, text engine.Narrative, opts Options) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, text.Text(config.TKeyICalName, map[string]any{"Name": p.UserInfo.Name}))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(opts.Now.UTC())

	for i, d := range p.Daeun {
		event := newEvent(p, config.EventKindDaeun, i)
		event.Props.SetText(config.PropSummary, text.Text(config.TKeyICalDaeun, map[string]any{
			"Ganji":    d.Ganji,
			"AgeRange": d.AgeRange,
		}))
		event.Props.SetText(config.PropDescription, d.Feature.Text)
		setDates(event,
			time.Date(d.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(d.EndYear+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	for _, month := range p.Seun.LuckyMonths {
		mf := p.Seun.MonthlyFortune[month-1]
		event := newEvent(p, config.EventKindMonth, month)
		summary := text.Text(config.TKeyICalMonth, map[string]any{
			"Year":   p.Seun.Year,
			"Month":  month,
			"Rating": mf.Rating,
		})
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropDescription, text.Text(config.TKeyICalMonthDesc, map[string]any{"Text": mf.Description}))
		start := time.Date(p.Seun.Year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		setDates(event, start, start.AddDate(0, 0, 1))
		event.Props.Set(dtStampProp)

		if opts.ReminderTrigger != "" {
			addAlarm(event, opts.ReminderTrigger, summary)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// newEvent creates an event whose UID depends only on the person, the event
// kind and its index, so re-exports update instead of duplicating.
func newEvent(p *engine.Profile, kind string, index int) *ical.Event {
	input := fmt.Sprintf(config.FormatHashInput, p.UserInfo.Name, p.UserInfo.BirthDate, kind, index, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, index, config.ICalDomain))
	event.Props.SetText(config.PropCategories, kind)
	return event
}

// setDates marks the event as all-day; end is exclusive.
func setDates(event *ical.Event, start, end time.Time) {
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(start)
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDate(end)
	event.Props.Set(dtEndProp)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
