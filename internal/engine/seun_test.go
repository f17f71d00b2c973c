package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/engine"
)

func TestGenerateSeun(t *testing.T) {
	s := engine.GenerateSeun(2024, engine.TableStrategy{}, echoNarrative{})

	assert.Equal(t, 2024, s.Year)
	assert.Equal(t, "甲辰", s.Ganji)
	assert.Equal(t, "甲", s.Gan)
	assert.Equal(t, "辰", s.Ji)
	assert.Equal(t, "seun_first_half", s.FirstHalf)
	assert.Equal(t, "seun_second_half", s.SecondHalf)
	assert.Equal(t, []int{1, 3, 4, 6, 7, 9, 10, 12}, s.LuckyMonths)

	require.Len(t, s.MonthlyFortune, 12)
	ratings := make([]int, 0, 12)
	for i, m := range s.MonthlyFortune {
		assert.Equal(t, i+1, m.Month)
		assert.GreaterOrEqual(t, m.Rating, 1)
		assert.LessOrEqual(t, m.Rating, 5)
		ratings = append(ratings, m.Rating)
	}
	assert.Equal(t, []int{4, 3, 5, 4, 3, 4, 5, 3, 4, 5, 3, 4}, ratings)
	assert.Equal(t, "seun_month_3", s.MonthlyFortune[2].Description)
}

func TestGenerateSeun_Cycle(t *testing.T) {
	tests := map[int]string{
		1984: "甲子",
		2000: "庚辰",
		2023: "癸卯",
		2025: "乙巳",
		2044: "甲子",
	}
	for year, want := range tests {
		assert.Equal(t, want, engine.GenerateSeun(year, engine.TableStrategy{}, echoNarrative{}).Ganji, "year %d", year)
	}
}

// constantStrategy rates every month the same.
type constantStrategy struct {
	engine.TableStrategy
	rating int
}

func (s constantStrategy) MonthRating(int, int) int { return s.rating }

func TestGenerateSeun_NoLuckyMonths(t *testing.T) {
	s := engine.GenerateSeun(2024, constantStrategy{rating: 2}, echoNarrative{})
	assert.NotNil(t, s.LuckyMonths, "serializes as an empty list")
	assert.Empty(t, s.LuckyMonths)
}
