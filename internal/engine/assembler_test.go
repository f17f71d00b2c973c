package engine_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/engine"
)

var exampleResolution = engine.Resolution{
	SolarDate: "1990-05-15",
	LunarDate: "1990-04-21",
	Year:      "庚午",
	Month:     "辛巳",
	Day:       "庚辰",
	Hour:      "壬午",
}

func newTestAssembler(conv engine.Converter) *engine.Assembler {
	a := engine.NewAssembler(conv, echoContent{})
	a.Clock = engine.FixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	return a
}

func TestAssemble_Example(t *testing.T) {
	conv := new(MockConverter)
	conv.On("Convert", mock.Anything, mock.Anything).Return(exampleResolution, nil)

	p, err := newTestAssembler(conv).Assemble(context.Background(), validInput(), engine.Options{AsOfYear: 2024})
	require.NoError(t, err)

	assert.Equal(t, engine.UserInfo{
		Name:      "홍길동",
		Gender:    engine.Male,
		Calendar:  engine.Solar,
		BirthDate: "1990-05-15",
		BirthTime: "오시",
		SolarDate: "1990-05-15",
		LunarDate: "1990-04-21",
	}, p.UserInfo)
	assert.Equal(t, examplePillars(true), p.Pillars)
	assert.Equal(t, "庚", p.DayGan)
	assert.Equal(t, 8, p.ElementBalance.TotalCount())

	// Metal day: wealth strong, peers weak.
	assert.Equal(t, engine.Strong, p.TenStars[engine.StarWealth].Strength)
	assert.Equal(t, engine.Weak, p.TenStars[engine.StarPeer].Strength)
	assert.Equal(t, engine.Balanced, p.TenStars[engine.StarSupport].Strength)
	assert.Equal(t, "star_wealth_name", p.TenStars[engine.StarWealth].Name)

	assert.Equal(t, engine.Wood, p.Yongsin.Useful.Element)
	assert.Equal(t, engine.Water, p.Yongsin.Favorable.Element)
	assert.Equal(t, engine.Metal, p.Yongsin.Unfavorable.Element)

	current, ok := p.CurrentDaeun()
	require.True(t, ok)
	assert.Equal(t, "丙子", current.Ganji)
	assert.Equal(t, "甲辰", p.Seun.Ganji)

	assert.Len(t, p.CategoryFortune, 5)
	assert.Equal(t, 4, p.CategoryFortune[engine.FortuneWealth].Rating)
	assert.Equal(t, 3, p.CategoryFortune[engine.FortuneLove].Rating)
	assert.Equal(t, []string{"fortune_health_detail_1", "fortune_health_detail_2", "fortune_health_detail_3"},
		p.CategoryFortune[engine.FortuneHealth].Details)

	assert.Equal(t, engine.LuckyItems{
		LuckyDirections:   []string{"동쪽"},
		UnluckyDirections: []string{"서쪽"},
		LuckyColors:       []string{"초록색", "청색"},
		UnluckyColors:     []string{"흰색", "금색"},
		LuckyNumbers:      []int{3, 8},
		LuckyDay:          "lucky_day",
	}, p.LuckyItems)

	require.Len(t, p.ImprovementTips, 3)
	assert.Equal(t, "tip_daily_category", p.ImprovementTips[0].Category)
	assert.Equal(t, "tip_daily_item_1{Color=초록색/청색,Direction=동쪽}", p.ImprovementTips[0].Items[0])
	assert.Equal(t, "tip_mindset_item_3", p.ImprovementTips[2].Items[2])

	assert.Equal(t, engine.Meta{AsOfYear: 2024, Locale: "xx", ContentVersion: "test-1"}, p.Meta)
	conv.AssertExpectations(t)
}

func TestAssemble_PassesMomentToConverter(t *testing.T) {
	conv := new(MockConverter)
	in := validInput()
	in.BirthTime = ""
	want := engine.Moment{Date: engine.Date{Year: 1990, Month: 5, Day: 15}, Calendar: engine.Solar}
	conv.On("Convert", mock.Anything, want).Return(exampleResolution, nil)

	p, err := newTestAssembler(conv).Assemble(context.Background(), in, engine.Options{})
	require.NoError(t, err)

	assert.Equal(t, engine.UnknownPillar, p.Pillars.Hour, "converter hour is ignored without a birth time")
	assert.Equal(t, 6, p.ElementBalance.TotalCount())
	assert.Equal(t, 2024, p.Meta.AsOfYear, "reference year comes from the clock")
	conv.AssertExpectations(t)
}

func TestAssemble_InvalidInputSkipsConverter(t *testing.T) {
	conv := new(MockConverter)
	in := validInput()
	in.Gender = ""

	_, err := newTestAssembler(conv).Assemble(context.Background(), in, engine.Options{})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	conv.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)

	_, err = newTestAssembler(conv).Assemble(context.Background(), validInput(), engine.Options{AsOfYear: -1})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestAssemble_ConverterErrorsPassThrough(t *testing.T) {
	convErr := fmt.Errorf("leap month does not exist: %w", engine.ErrConversion)
	conv := new(MockConverter)
	conv.On("Convert", mock.Anything, mock.Anything).Return(engine.Resolution{}, convErr)

	_, err := newTestAssembler(conv).Assemble(context.Background(), validInput(), engine.Options{})
	assert.Same(t, convErr, err)
	assert.ErrorIs(t, err, engine.ErrConversion)
}

func TestAssemble_InvariantViolation(t *testing.T) {
	bad := exampleResolution
	bad.Month = "甲丑"
	conv := new(MockConverter)
	conv.On("Convert", mock.Anything, mock.Anything).Return(bad, nil)

	_, err := newTestAssembler(conv).Assemble(context.Background(), validInput(), engine.Options{})
	assert.ErrorIs(t, err, engine.ErrInvariant)
}

func TestAssemble_Deterministic(t *testing.T) {
	conv := new(MockConverter)
	conv.On("Convert", mock.Anything, mock.Anything).Return(exampleResolution, nil)
	a := newTestAssembler(conv)
	opts := engine.Options{AsOfYear: 2024}

	first, err := a.Assemble(context.Background(), validInput(), opts)
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), validInput(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("profiles differ (-first +second):\n%s", diff)
	}

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2), "byte-identical output")

	// Decoding and re-encoding keeps the bytes.
	var decoded engine.Profile
	require.NoError(t, json.Unmarshal(b1, &decoded))
	b3, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b3))
}

func TestAssembleBatch(t *testing.T) {
	conv := new(MockConverter)
	conv.On("Convert", mock.Anything, mock.Anything).Return(exampleResolution, nil)
	a := newTestAssembler(conv)

	inputs := []engine.BirthInput{validInput(), validInput(), validInput()}
	inputs[1].Name = ""
	inputs[2].Name = "김영희"

	results, err := a.AssembleBatch(context.Background(), inputs, engine.Options{AsOfYear: 2024}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "홍길동", results[0].Profile.UserInfo.Name)
	assert.ErrorIs(t, results[1].Err, engine.ErrInvalidInput)
	assert.Nil(t, results[1].Profile)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "김영희", results[2].Profile.UserInfo.Name, "results keep input order")
}

func TestAssembleBatch_Errors(t *testing.T) {
	a := newTestAssembler(new(MockConverter))

	_, err := a.AssembleBatch(context.Background(), []engine.BirthInput{validInput()}, engine.Options{}, 0)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.AssembleBatch(ctx, []engine.BirthInput{validInput()}, engine.Options{}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}
