package engine_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-saju/internal/engine"
)

func TestElementCycles(t *testing.T) {
	for _, e := range engine.Elements {
		assert.Equal(t, e, e.Generates().Generator(), "generator inverts generates for %s", e)
		assert.Equal(t, e, e.Controls().Controller(), "controller inverts controls for %s", e)

		g, c := e, e
		for i := 0; i < 5; i++ {
			g = g.Generates()
			c = c.Controls()
		}
		assert.Equal(t, e, g, "generating cycle has period 5")
		assert.Equal(t, e, c, "controlling cycle has period 5")
	}

	// Spot checks of the classical relations.
	assert.Equal(t, engine.Fire, engine.Wood.Generates())
	assert.Equal(t, engine.Water, engine.Wood.Generator())
	assert.Equal(t, engine.Earth, engine.Wood.Controls())
	assert.Equal(t, engine.Metal, engine.Wood.Controller())
	assert.Equal(t, engine.Fire, engine.Metal.Controller())
}

func TestElementBijections(t *testing.T) {
	seen := map[engine.Element]bool{}
	for _, e := range engine.Elements {
		seen[e.Generates()] = true
	}
	assert.Len(t, seen, 5, "generates is a bijection")

	seen = map[engine.Element]bool{}
	for _, e := range engine.Elements {
		seen[e.Controls()] = true
	}
	assert.Len(t, seen, 5, "controls is a bijection")
}

func TestElementAttributes(t *testing.T) {
	tests := []struct {
		e                       engine.Element
		name, hanja, dir, color string
	}{
		{engine.Wood, "목", "木", "동쪽", "초록색/청색"},
		{engine.Fire, "화", "火", "남쪽", "빨간색/분홍색"},
		{engine.Earth, "토", "土", "중앙", "노란색/황토색"},
		{engine.Metal, "금", "金", "서쪽", "흰색/금색"},
		{engine.Water, "수", "水", "북쪽", "검정색/파란색"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.e.String())
		assert.Equal(t, tt.hanja, tt.e.Hanja())
		assert.Equal(t, tt.dir, tt.e.Direction())
		assert.Equal(t, tt.color, tt.e.Color())
	}
}

func TestElementText(t *testing.T) {
	b, err := json.Marshal(map[engine.Element]int{engine.Wood: 1, engine.Water: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"목":1,"수":2}`, string(b))

	var e engine.Element
	require.NoError(t, e.UnmarshalText([]byte("火")))
	assert.Equal(t, engine.Fire, e)
	assert.ErrorIs(t, e.UnmarshalText([]byte("x")), engine.ErrInvariant)
}

func TestStemsAndBranches(t *testing.T) {
	elements := map[string]engine.Element{
		"甲": engine.Wood, "乙": engine.Wood, "丙": engine.Fire, "丁": engine.Fire, "戊": engine.Earth,
		"己": engine.Earth, "庚": engine.Metal, "辛": engine.Metal, "壬": engine.Water, "癸": engine.Water,
	}
	for text, want := range elements {
		s, ok := engine.ParseStem(text)
		require.True(t, ok, text)
		assert.Equal(t, want, s.Element(), text)
		assert.Equal(t, text, s.String())
	}
	assert.Equal(t, engine.Yang, engine.StemGap.Polarity())
	assert.Equal(t, engine.Yin, engine.StemEul.Polarity())

	branchElements := map[string]engine.Element{
		"子": engine.Water, "丑": engine.Earth, "寅": engine.Wood, "卯": engine.Wood,
		"辰": engine.Earth, "巳": engine.Fire, "午": engine.Fire, "未": engine.Earth,
		"申": engine.Metal, "酉": engine.Metal, "戌": engine.Earth, "亥": engine.Water,
	}
	for text, want := range branchElements {
		b, ok := engine.ParseBranch(text)
		require.True(t, ok, text)
		assert.Equal(t, want, b.Element(), text)
	}

	_, ok := engine.ParseStem("子")
	assert.False(t, ok)
	_, ok = engine.ParseBranch("甲")
	assert.False(t, ok)
}

func TestParseSlot(t *testing.T) {
	for _, input := range []string{"오시", "午時", "午"} {
		b, ok := engine.ParseSlot(input)
		require.True(t, ok, input)
		assert.Equal(t, engine.BranchO, b)
	}
	b, ok := engine.ParseSlot("자시")
	require.True(t, ok)
	assert.Equal(t, engine.BranchJa, b)
	assert.Equal(t, "해시", engine.BranchHae.Slot())

	_, ok = engine.ParseSlot("12:00")
	assert.False(t, ok)
}

func TestElementText_InvalidWrapsInvariant(t *testing.T) {
	_, err := engine.Element(7).MarshalText()
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvariant))

	var e engine.Element
	err = e.UnmarshalText([]byte("plasma"))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvariant)
}
