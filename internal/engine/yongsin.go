package engine

// ElementRef names an element with its hanja label.
type ElementRef struct {
	Element Element `json:"element"`
	Hanja   string  `json:"hanja"`
}

func refOf(e Element) ElementRef {
	return ElementRef{Element: e, Hanja: e.Hanja()}
}

// Yongsin is the useful / favorable / unfavorable triad.
type Yongsin struct {
	Useful           ElementRef `json:"yongsin"`
	Favorable        ElementRef `json:"heesin"`
	Unfavorable      ElementRef `json:"keesin"`
	LuckyDirection   string     `json:"luckyDirection"`
	LuckyColor       string     `json:"luckyColor"`
	UnluckyDirection string     `json:"unluckyDirection"`
	UnluckyColor     string     `json:"unluckyColor"`
}

// SelectYongsin picks the weakest element as useful. Ties go to the first
// element in table order. Favorable is the element generating the useful one,
// unfavorable the element controlling it.
func SelectYongsin(dist ElementDistribution) Yongsin {
	useful := Fire
	minPct := 100
	for _, e := range Elements {
		if share := dist[e]; share.Percentage < minPct {
			minPct = share.Percentage
			useful = e
		}
	}

	favorable := useful.Generator()
	unfavorable := useful.Controller()

	return Yongsin{
		Useful:           refOf(useful),
		Favorable:        refOf(favorable),
		Unfavorable:      refOf(unfavorable),
		LuckyDirection:   useful.Direction(),
		LuckyColor:       useful.Color(),
		UnluckyDirection: unfavorable.Direction(),
		UnluckyColor:     unfavorable.Color(),
	}
}
