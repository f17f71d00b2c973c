package engine

import (
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
)

// MonthlyFortune rates one month of the seun year.
type MonthlyFortune struct {
	Month       int    `json:"month"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// Seun is the luck breakdown of a single calendar year.
type Seun struct {
	Year           int              `json:"year"`
	Ganji          string           `json:"ganji"`
	Gan            string           `json:"gan"`
	Ji             string           `json:"ji"`
	FirstHalf      string           `json:"firstHalf"`
	SecondHalf     string           `json:"secondHalf"`
	LuckyMonths    []int            `json:"luckyMonths"`
	MonthlyFortune []MonthlyFortune `json:"monthlyFortune"`
	Pillar         Pillar           `json:"-"`
}

// GenerateSeun describes asOfYear using the seun tables.
func GenerateSeun(asOfYear int, strategy Strategy, text Narrative) Seun {
	pillar := NewPillar(
		seunStems[mod(asOfYear, len(seunStems))],
		seunBranches[mod(asOfYear, len(seunBranches))],
	)

	months := make([]MonthlyFortune, 0, config.MonthsPerYear)
	lucky := make([]int, 0, config.MonthsPerYear)
	for m := 1; m <= config.MonthsPerYear; m++ {
		rating := strategy.MonthRating(asOfYear, m)
		months = append(months, MonthlyFortune{
			Month:       m,
			Rating:      rating,
			Description: text.Text(fmt.Sprintf(config.TKeySeunMonth, m), nil),
		})
		if rating >= config.LuckyMonthRating {
			lucky = append(lucky, m)
		}
	}

	return Seun{
		Year:           asOfYear,
		Ganji:          pillar.Text(),
		Gan:            pillar.Gan(),
		Ji:             pillar.Ji(),
		FirstHalf:      text.Text(config.TKeySeunFirst, nil),
		SecondHalf:     text.Text(config.TKeySeunSecond, nil),
		LuckyMonths:    lucky,
		MonthlyFortune: months,
		Pillar:         pillar,
	}
}
