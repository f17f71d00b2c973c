package engine

import (
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
)

// LuckStatus places a period relative to the subject's current age.
type LuckStatus string

const (
	StatusPast    LuckStatus = "past"
	StatusCurrent LuckStatus = "current"
	StatusFuture  LuckStatus = "future"
)

// Feature is the qualitative tag of a daeun period.
type Feature struct {
	Kind FeatureKind `json:"type"`
	Text string      `json:"text"`
}

// DaeunPeriod is one ten-year luck cycle.
type DaeunPeriod struct {
	Period    string     `json:"period"`
	AgeRange  string     `json:"ageRange"`
	StartAge  int        `json:"startAge"`
	EndAge    int        `json:"endAge"`
	StartYear int        `json:"startYear"`
	EndYear   int        `json:"endYear"`
	Ganji     string     `json:"ganji"`
	Gan       string     `json:"gan"`
	Ji        string     `json:"ji"`
	Status    LuckStatus `json:"status"`
	Feature   Feature    `json:"feature"`
	Pillar    Pillar     `json:"-"`
}

// StartAge is fixed per gender.
func StartAge(g Gender) int {
	if g == Male {
		return config.DaeunStartAgeMale
	}
	return config.DaeunStartAgeFemale
}

// GenerateDaeun builds the eight periods starting at StartAge(g).
// Status compares asOfYear - birthYear against each period's age range.
func GenerateDaeun(birthYear int, g Gender, asOfYear int, strategy Strategy, text Narrative) []DaeunPeriod {
	age := asOfYear - birthYear
	base := StartAge(g)

	periods := make([]DaeunPeriod, 0, config.DaeunPeriods)
	for i := 0; i < config.DaeunPeriods; i++ {
		startAge := base + i*config.DaeunSpan
		endAge := startAge + config.DaeunSpan - 1
		pillar := NewPillar(
			daeunStems[mod(birthYear+i, len(daeunStems))],
			daeunBranches[mod(birthYear+i, len(daeunBranches))],
		)

		status := StatusFuture
		switch {
		case age >= startAge && age <= endAge:
			status = StatusCurrent
		case age > endAge:
			status = StatusPast
		}

		slot, kind := strategy.DaeunFeature(i, pillar)

		periods = append(periods, DaeunPeriod{
			Period:    fmt.Sprintf(config.FormatYearRange, birthYear+startAge, birthYear+endAge),
			AgeRange:  text.Text(config.TKeyDaeunAgeRange, map[string]any{"Start": startAge, "End": endAge}),
			StartAge:  startAge,
			EndAge:    endAge,
			StartYear: birthYear + startAge,
			EndYear:   birthYear + endAge,
			Ganji:     pillar.Text(),
			Gan:       pillar.Gan(),
			Ji:        pillar.Ji(),
			Status:    status,
			Feature: Feature{
				Kind: kind,
				Text: text.Text(fmt.Sprintf(config.TKeyDaeunFeature, slot), nil),
			},
			Pillar: pillar,
		})
	}
	return periods
}
