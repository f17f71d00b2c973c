package ics_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/ics"
	"github.com/tartampluch/go-saju/internal/narrative"
)

func testProfile(t *testing.T, text engine.Narrative) *engine.Profile {
	t.Helper()
	strategy := engine.TableStrategy{}
	return &engine.Profile{
		UserInfo: engine.UserInfo{Name: "홍길동", BirthDate: "1990-05-15"},
		Daeun:    engine.GenerateDaeun(1990, engine.Male, 2024, strategy, text),
		Seun:     engine.GenerateSeun(2024, strategy, text),
	}
}

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "output must be valid iCalendar")
	return cal
}

func TestEncode_Events(t *testing.T) {
	catalog, err := narrative.New("")
	require.NoError(t, err)
	text := catalog.Localize("ko")
	p := testProfile(t, text)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	data, err := ics.Encode(p, text, ics.Options{Now: now})
	require.NoError(t, err)

	cal := decode(t, data)
	name, err := cal.Props.Text(config.PropXWRCalName)
	require.NoError(t, err)
	assert.Equal(t, "홍길동님의 사주 운세", name)

	events := cal.Events()
	require.Len(t, events, config.DaeunPeriods+len(p.Seun.LuckyMonths))

	// First daeun period: ages 8-17, 1998 through 2007.
	first := events[0]
	summary, err := first.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "대운 甲戌 (8-17세)", summary)

	start, err := first.Props.DateTime(config.PropDTStart, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC), start)
	end, err := first.Props.DateTime(config.PropDTEnd, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC), end)

	// Lucky months follow the daeun periods.
	month := events[config.DaeunPeriods]
	start, err = month.Props.DateTime(config.PropDTStart, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Empty(t, month.Children, "no alarm without a trigger")
}

func TestEncode_DeterministicUIDs(t *testing.T) {
	catalog, err := narrative.New("")
	require.NoError(t, err)
	text := catalog.Localize("en")
	p := testProfile(t, text)

	a, err := ics.Encode(p, text, ics.Options{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	b, err := ics.Encode(p, text, ics.Options{Now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	uids := func(data []byte) []string {
		var out []string
		for _, e := range decode(t, data).Events() {
			uid, err := e.Props.Text(config.PropUID)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(uid, "@"+config.ICalDomain))
			out = append(out, uid)
		}
		return out
	}

	first, second := uids(a), uids(b)
	assert.Equal(t, first, second, "UIDs must not depend on the export time")

	seen := map[string]bool{}
	for _, uid := range first {
		assert.False(t, seen[uid], "duplicate UID %s", uid)
		seen[uid] = true
	}
}

func TestEncode_Alarm(t *testing.T) {
	catalog, err := narrative.New("")
	require.NoError(t, err)
	text := catalog.Localize("en")
	p := testProfile(t, text)

	data, err := ics.Encode(p, text, ics.Options{Now: time.Now(), ReminderTrigger: "-P1D"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "TRIGGER:-P1D")
	assert.NotContains(t, string(data), "TRIGGER;VALUE=TEXT")

	events := decode(t, data).Events()
	require.Len(t, events[config.DaeunPeriods].Children, 1)
	assert.Equal(t, config.ICalComponent, events[config.DaeunPeriods].Children[0].Name)
	assert.Empty(t, events[0].Children, "daeun periods carry no alarm")
}
