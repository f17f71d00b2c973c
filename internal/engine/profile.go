package engine

// UserInfo echoes the request with the converter's canonical dates.
type UserInfo struct {
	Name       string         `json:"name"`
	Gender     Gender         `json:"gender"`
	Calendar   CalendarSystem `json:"calendarType"`
	LeapMonth  bool           `json:"isLeapMonth"`
	BirthDate  string         `json:"birthDate"`
	BirthTime  string         `json:"birthTime"`
	BirthPlace string         `json:"birthPlace"`
	SolarDate  string         `json:"solarDate"`
	LunarDate  string         `json:"lunarDate"`
}

// Meta records how the profile was produced.
type Meta struct {
	AsOfYear       int    `json:"asOfYear"`
	Locale         string `json:"locale"`
	ContentVersion string `json:"contentVersion"`
}

// Profile is the complete reading. It is built once per request and never
// mutated afterwards.
type Profile struct {
	UserInfo        UserInfo                            `json:"userInfo"`
	Pillars         Pillars                             `json:"pillars"`
	DayGan          string                              `json:"dayGan"`
	ElementBalance  ElementDistribution                 `json:"elementBalance"`
	TenStars        TenStarProfile                      `json:"tenStars"`
	Yongsin         Yongsin                             `json:"yongsin"`
	Daeun           []DaeunPeriod                       `json:"daeun"`
	Seun            Seun                                `json:"seun"`
	CategoryFortune map[FortuneCategory]CategoryFortune `json:"categoryFortune"`
	LuckyItems      LuckyItems                          `json:"luckyItems"`
	ImprovementTips []TipGroup                          `json:"improvementTips"`
	Meta            Meta                                `json:"meta"`
}

// CurrentDaeun returns the period containing the reference year, if any.
func (p *Profile) CurrentDaeun() (DaeunPeriod, bool) {
	for _, d := range p.Daeun {
		if d.Status == StatusCurrent {
			return d, true
		}
	}
	return DaeunPeriod{}, false
}
