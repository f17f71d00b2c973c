package engine

// StarCategory is one of the five relational groups of the ten stars.
type StarCategory string

const (
	StarPeer      StarCategory = "비겁"
	StarOutput    StarCategory = "식상"
	StarWealth    StarCategory = "재성"
	StarAuthority StarCategory = "관성"
	StarSupport   StarCategory = "인성"
)

// StarCategories lists the groups in display order.
var StarCategories = [...]StarCategory{StarPeer, StarOutput, StarWealth, StarAuthority, StarSupport}

var starCodes = map[StarCategory]string{
	StarPeer:      "peer",
	StarOutput:    "output",
	StarWealth:    "wealth",
	StarAuthority: "authority",
	StarSupport:   "support",
}

// Code is the ASCII identifier used in narrative keys.
func (c StarCategory) Code() string { return starCodes[c] }

// Strength of a star category.
type Strength string

const (
	Strong   Strength = "strong"
	Weak     Strength = "weak"
	Balanced Strength = "normal"
)

// StarStrengths maps every category to its strength.
type StarStrengths map[StarCategory]Strength

// FeatureKind tags a daeun period.
type FeatureKind string

const (
	FeatureGood    FeatureKind = "good"
	FeatureCaution FeatureKind = "caution"
)

// Strategy holds the heuristic classifications. The default implementation is a
// set of fixed tables; a chart-aware model can replace it without touching the
// Assembler.
type Strategy interface {
	// TenStars classifies the star groups for a chart.
	TenStars(dayStem Stem, pillars Pillars) StarStrengths
	// DaeunFeature picks the feature slot (0..7) and kind for period index i.
	DaeunFeature(i int, period Pillar) (slot int, kind FeatureKind)
	// MonthRating rates month 1..12 of the given year from 1 to 5.
	MonthRating(year, month int) int
}

// TableStrategy is the single-factor classification keyed on the day element.
type TableStrategy struct{}

var _ Strategy = TableStrategy{}

// starTable maps the day element to its (strong, weak) pair.
var starTable = [...][2]StarCategory{
	Wood:  {StarOutput, StarWealth},
	Fire:  {StarPeer, StarSupport},
	Earth: {StarAuthority, StarOutput},
	Metal: {StarWealth, StarPeer},
	Water: {StarSupport, StarAuthority},
}

var featureKinds = [...]FeatureKind{
	FeatureGood, FeatureGood, FeatureCaution, FeatureGood,
	FeatureCaution, FeatureGood, FeatureGood, FeatureCaution,
}

var monthRatings = [...]int{4, 3, 5, 4, 3, 4, 5, 3, 4, 5, 3, 4}

// TenStars looks at the day stem's element only.
func (TableStrategy) TenStars(dayStem Stem, _ Pillars) StarStrengths {
	out := make(StarStrengths, len(StarCategories))
	for _, c := range StarCategories {
		out[c] = Balanced
	}
	pair := starTable[dayStem.Element()]
	out[pair[0]] = Strong
	out[pair[1]] = Weak
	return out
}

// DaeunFeature hands out features by period index, ignoring the pillar.
func (TableStrategy) DaeunFeature(i int, _ Pillar) (int, FeatureKind) {
	slot := mod(i, len(featureKinds))
	return slot, featureKinds[slot]
}

// MonthRating returns the same twelve ratings every year.
func (TableStrategy) MonthRating(_ int, month int) int {
	return monthRatings[mod(month-1, len(monthRatings))]
}
