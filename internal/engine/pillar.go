package engine

import (
	"encoding/json"
	"fmt"

	"github.com/tartampluch/go-saju/internal/config"
)

// Pillar is a stem-branch pair. The zero value is the unknown sentinel used for
// the hour pillar when no birth time was given.
type Pillar struct {
	Stem   Stem
	Branch Branch
	Known  bool
}

// UnknownPillar renders as "??".
var UnknownPillar = Pillar{}

// NewPillar builds a known pillar.
func NewPillar(s Stem, b Branch) Pillar {
	return Pillar{Stem: s, Branch: b, Known: true}
}

// Text is the two-character rendering, e.g. "甲子".
func (p Pillar) Text() string {
	if !p.Known {
		return config.UnknownPillarText
	}
	return p.Stem.String() + p.Branch.String()
}

// Gan returns the stem character or "?".
func (p Pillar) Gan() string {
	if !p.Known {
		return config.UnknownPillarPart
	}
	return p.Stem.String()
}

// Ji returns the branch character or "?".
func (p Pillar) Ji() string {
	if !p.Known {
		return config.UnknownPillarPart
	}
	return p.Branch.String()
}

type pillarJSON struct {
	Text string `json:"text"`
	Gan  string `json:"gan"`
	Ji   string `json:"ji"`
}

// MarshalJSON emits {text, gan, ji}.
func (p Pillar) MarshalJSON() ([]byte, error) {
	return json.Marshal(pillarJSON{Text: p.Text(), Gan: p.Gan(), Ji: p.Ji()})
}

// UnmarshalJSON accepts the form produced by MarshalJSON.
func (p *Pillar) UnmarshalJSON(b []byte) error {
	var raw pillarJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Text == config.UnknownPillarText || raw.Text == "" {
		*p = UnknownPillar
		return nil
	}
	parsed, err := ParsePillar(raw.Text)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePillar reads the canonical two-character text emitted by a calendar
// converter. Anything outside the 60 valid combinations is an invariant
// violation rather than bad user input.
func ParsePillar(text string) (Pillar, error) {
	runes := []rune(text)
	if len(runes) != 2 {
		return Pillar{}, fmt.Errorf("%s %q: %w", config.ErrPillarText, text, ErrInvariant)
	}
	s, ok := ParseStem(string(runes[0]))
	if !ok {
		return Pillar{}, fmt.Errorf("%s %q: %w", config.ErrPillarText, text, ErrInvariant)
	}
	b, ok := ParseBranch(string(runes[1]))
	if !ok {
		return Pillar{}, fmt.Errorf("%s %q: %w", config.ErrPillarText, text, ErrInvariant)
	}
	// Only same-parity pairs occur in the sexagenary cycle.
	if int(s)%2 != int(b)%2 {
		return Pillar{}, fmt.Errorf("%s %q: %w", config.ErrPillarParity, text, ErrInvariant)
	}
	return NewPillar(s, b), nil
}

// Pillars holds the four pillars. The hour pillar serializes as "time" to match
// the profile consumers.
type Pillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"time"`
}

func (p Pillars) all() [4]Pillar {
	return [4]Pillar{p.Year, p.Month, p.Day, p.Hour}
}
