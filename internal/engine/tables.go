package engine

import "fmt"

// Element is one of the five phases. Declaration order is the table order used
// by every scan (wood, fire, earth, metal, water).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five elements in table order.
var Elements = [...]Element{Wood, Fire, Earth, Metal, Water}

var (
	elementNames      = [...]string{"목", "화", "토", "금", "수"}
	elementHanja      = [...]string{"木", "火", "土", "金", "水"}
	elementDirections = [...]string{"동쪽", "남쪽", "중앙", "서쪽", "북쪽"}
	elementColors     = [...]string{"초록색/청색", "빨간색/분홍색", "노란색/황토색", "흰색/금색", "검정색/파란색"}
)

// String returns the Korean element name used as the wire vocabulary.
func (e Element) String() string { return elementNames[e] }

// Hanja returns the element's Chinese character.
func (e Element) Hanja() string { return elementHanja[e] }

// Direction returns the cardinal direction associated with the element.
func (e Element) Direction() string { return elementDirections[e] }

// Color returns the slash-delimited color descriptor of the element.
func (e Element) Color() string { return elementColors[e] }

// Generates returns the element e produces (wood→fire→earth→metal→water→wood).
func (e Element) Generates() Element { return (e + 1) % 5 }

// Generator returns the element that produces e.
func (e Element) Generator() Element { return (e + 4) % 5 }

// Controls returns the element e suppresses (wood→earth→water→fire→metal→wood).
func (e Element) Controls() Element { return (e + 2) % 5 }

// Controller returns the element that suppresses e.
func (e Element) Controller() Element { return (e + 3) % 5 }

func (e Element) valid() bool { return e >= Wood && e <= Water }

// MarshalText renders the Korean element name so elements can key JSON objects.
func (e Element) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("element %d: %w", int(e), ErrInvariant)
	}
	return []byte(e.String()), nil
}

// UnmarshalText accepts the Korean name or the hanja.
func (e *Element) UnmarshalText(b []byte) error {
	s := string(b)
	for _, el := range Elements {
		if s == el.String() || s == el.Hanja() {
			*e = el
			return nil
		}
	}
	return fmt.Errorf("element %q: %w", s, ErrInvariant)
}

// Polarity is the yin/yang attribute of a stem.
type Polarity string

const (
	Yang Polarity = "yang"
	Yin  Polarity = "yin"
)

// Stem is a heavenly stem, cyclic index 0–9.
type Stem int

const (
	StemGap Stem = iota
	StemEul
	StemByeong
	StemJeong
	StemMu
	StemGi
	StemGyeong
	StemSin
	StemIm
	StemGye
)

var stemHanja = [...]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

func (s Stem) String() string { return stemHanja[s] }

// Element pairs stems two by two: 甲乙 wood, 丙丁 fire, 戊己 earth, 庚辛 metal, 壬癸 water.
func (s Stem) Element() Element { return Element(s / 2) }

// Polarity is yang for even indices.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// ParseStem resolves a stem from its hanja.
func ParseStem(text string) (Stem, bool) {
	for i, h := range stemHanja {
		if h == text {
			return Stem(i), true
		}
	}
	return 0, false
}

// Branch is an earthly branch, cyclic index 0–11.
type Branch int

const (
	BranchJa Branch = iota
	BranchChuk
	BranchIn
	BranchMyo
	BranchJin
	BranchSa
	BranchO
	BranchMi
	BranchSin
	BranchYu
	BranchSul
	BranchHae
)

var (
	branchHanja    = [...]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchElements = [...]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}
	// Two-hour birth time slots, indexed like the branches.
	branchSlots = [...]string{"자시", "축시", "인시", "묘시", "진시", "사시", "오시", "미시", "신시", "유시", "술시", "해시"}
)

func (b Branch) String() string { return branchHanja[b] }

// Element returns the branch's element.
func (b Branch) Element() Element { return branchElements[b] }

// Slot returns the Korean name of the two-hour birth time slot ruled by b.
func (b Branch) Slot() string { return branchSlots[b] }

// ParseBranch resolves a branch from its hanja.
func ParseBranch(text string) (Branch, bool) {
	for i, h := range branchHanja {
		if h == text {
			return Branch(i), true
		}
	}
	return 0, false
}

// ParseSlot resolves a birth time slot from its Korean name ("자시"), its hanja
// form ("子時") or the bare branch ("子").
func ParseSlot(text string) (Branch, bool) {
	for i := range branchSlots {
		b := Branch(i)
		if text == b.Slot() || text == b.String()+"時" || text == b.String() {
			return b, true
		}
	}
	return 0, false
}

// Daeun tables index by (birthYear + i) mod n and start at 甲 and 子.
var (
	daeunStems = [10]Stem{
		StemGap, StemEul, StemByeong, StemJeong, StemMu,
		StemGi, StemGyeong, StemSin, StemIm, StemGye,
	}
	daeunBranches = [12]Branch{
		BranchJa, BranchChuk, BranchIn, BranchMyo, BranchJin, BranchSa,
		BranchO, BranchMi, BranchSin, BranchYu, BranchSul, BranchHae,
	}
)

// Seun tables index by year mod n. Their offsets (庚 and 申 at index 0) are
// calibrated independently of the daeun tables; keep them separate.
var (
	seunStems = [10]Stem{
		StemGyeong, StemSin, StemIm, StemGye, StemGap,
		StemEul, StemByeong, StemJeong, StemMu, StemGi,
	}
	seunBranches = [12]Branch{
		BranchSin, BranchYu, BranchSul, BranchHae, BranchJa, BranchChuk,
		BranchIn, BranchMyo, BranchJin, BranchSa, BranchO, BranchMi,
	}
)

// mod is the non-negative remainder.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
