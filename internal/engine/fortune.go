package engine

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-saju/internal/config"
)

// TenStar is the rendered strength of one star category.
type TenStar struct {
	Name        string   `json:"name"`
	Strength    Strength `json:"strength"`
	Description string   `json:"description"`
}

// TenStarProfile keys every category by its Korean label.
type TenStarProfile map[StarCategory]TenStar

func renderTenStars(s StarStrengths, text Narrative) TenStarProfile {
	out := make(TenStarProfile, len(StarCategories))
	for _, c := range StarCategories {
		out[c] = TenStar{
			Name:        text.Text(fmt.Sprintf(config.TKeyStarName, c.Code()), nil),
			Strength:    s[c],
			Description: text.Text(fmt.Sprintf(config.TKeyStarDesc, c.Code()), nil),
		}
	}
	return out
}

// FortuneCategory is a life area with a fixed rating.
type FortuneCategory string

const (
	FortuneWealth FortuneCategory = "wealth"
	FortuneCareer FortuneCategory = "career"
	FortuneLove   FortuneCategory = "love"
	FortuneHealth FortuneCategory = "health"
	FortuneFamily FortuneCategory = "family"
)

// FortuneCategories lists the areas in display order.
var FortuneCategories = [...]FortuneCategory{FortuneWealth, FortuneCareer, FortuneLove, FortuneHealth, FortuneFamily}

var fortuneRatings = map[FortuneCategory]int{
	FortuneWealth: 4,
	FortuneCareer: 4,
	FortuneLove:   3,
	FortuneHealth: 3,
	FortuneFamily: 4,
}

// CategoryFortune is the reading for one life area.
type CategoryFortune struct {
	Title   string   `json:"title"`
	Icon    string   `json:"icon"`
	Rating  int      `json:"rating"`
	Summary string   `json:"summary"`
	Details []string `json:"details"`
	Advice  string   `json:"advice"`
}

func categoryFortunes(text Narrative) map[FortuneCategory]CategoryFortune {
	out := make(map[FortuneCategory]CategoryFortune, len(FortuneCategories))
	for _, c := range FortuneCategories {
		code := string(c)
		details := make([]string, 0, config.FortuneDetails)
		for i := 1; i <= config.FortuneDetails; i++ {
			details = append(details, text.Text(fmt.Sprintf(config.TKeyFortuneDetail, code, i), nil))
		}
		out[c] = CategoryFortune{
			Title:   text.Text(fmt.Sprintf(config.TKeyFortuneTitle, code), nil),
			Icon:    text.Text(fmt.Sprintf(config.TKeyFortuneIcon, code), nil),
			Rating:  fortuneRatings[c],
			Summary: text.Text(fmt.Sprintf(config.TKeyFortuneSum, code), nil),
			Details: details,
			Advice:  text.Text(fmt.Sprintf(config.TKeyFortuneAdvice, code), nil),
		}
	}
	return out
}

// LuckyItems summarises the yongsin for everyday use.
type LuckyItems struct {
	LuckyDirections   []string `json:"luckyDirections"`
	UnluckyDirections []string `json:"unluckyDirections"`
	LuckyColors       []string `json:"luckyColors"`
	UnluckyColors     []string `json:"unluckyColors"`
	LuckyNumbers      []int    `json:"luckyNumbers"`
	LuckyDay          string   `json:"luckyDay"`
}

var luckyNumbers = [...]int{3, 8}

func luckyItems(y Yongsin, text Narrative) LuckyItems {
	return LuckyItems{
		LuckyDirections:   []string{y.LuckyDirection},
		UnluckyDirections: []string{y.UnluckyDirection},
		LuckyColors:       strings.Split(y.LuckyColor, config.ColorSeparator),
		UnluckyColors:     strings.Split(y.UnluckyColor, config.ColorSeparator),
		LuckyNumbers:      append([]int(nil), luckyNumbers[:]...),
		LuckyDay:          text.Text(config.TKeyLuckyDay, nil),
	}
}

// TipGroup is one category of improvement tips.
type TipGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

var tipGroups = [...]string{"daily", "fengshui", "mindset"}

// improvementTips renders the tip groups. Items may reference {{.Color}} and
// {{.Direction}} of the yongsin.
func improvementTips(y Yongsin, text Narrative) []TipGroup {
	data := map[string]any{
		"Color":     y.LuckyColor,
		"Direction": y.LuckyDirection,
	}
	out := make([]TipGroup, 0, len(tipGroups))
	for _, g := range tipGroups {
		items := make([]string, 0, config.TipItems)
		for i := 1; i <= config.TipItems; i++ {
			items = append(items, text.Text(fmt.Sprintf(config.TKeyTipItem, g, i), data))
		}
		out = append(out, TipGroup{
			Category: text.Text(fmt.Sprintf(config.TKeyTipCategory, g), nil),
			Items:    items,
		})
	}
	return out
}
