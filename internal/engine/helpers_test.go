package engine_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/tartampluch/go-saju/internal/engine"
)

// echoNarrative renders keys verbatim, followed by sorted template data.
type echoNarrative struct{}

func (echoNarrative) Text(key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	parts := make([]string, 0, len(data))
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return key + "{" + strings.Join(parts, ",") + "}"
}

func (echoNarrative) Locale() string  { return "xx" }
func (echoNarrative) Version() string { return "test-1" }

type echoContent struct{}

func (echoContent) Localize(...string) engine.Narrative { return echoNarrative{} }

// MockConverter is a mock implementation of engine.Converter.
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, moment engine.Moment) (engine.Resolution, error) {
	args := m.Called(ctx, moment)
	return args.Get(0).(engine.Resolution), args.Error(1)
}

func mustPillar(text string) engine.Pillar {
	p, err := engine.ParsePillar(text)
	if err != nil {
		panic(err)
	}
	return p
}

// examplePillars is 庚午 辛巳 庚辰 with an optional 壬午 hour.
func examplePillars(withHour bool) engine.Pillars {
	p := engine.Pillars{
		Year:  mustPillar("庚午"),
		Month: mustPillar("辛巳"),
		Day:   mustPillar("庚辰"),
		Hour:  engine.UnknownPillar,
	}
	if withHour {
		p.Hour = mustPillar("壬午")
	}
	return p
}
