package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tartampluch/go-saju/internal/config"
)

// Options tune a single assembly.
type Options struct {
	// AsOfYear is the reference year for daeun status and seun. Zero means the
	// current year of the Assembler's clock.
	AsOfYear int
	// Languages are narrative language preferences, best first.
	Languages []string
}

// Assembler composes a Profile from a BirthInput.
type Assembler struct {
	Converter Converter
	Strategy  Strategy
	Content   Content
	Clock     Clock
}

// NewAssembler wires the default table strategy and the real clock.
func NewAssembler(conv Converter, content Content) *Assembler {
	return &Assembler{
		Converter: conv,
		Strategy:  TableStrategy{},
		Content:   content,
		Clock:     RealClock{},
	}
}

// Assemble validates the input, resolves the pillars and runs every analyzer.
// Converter errors are returned unchanged.
func (a *Assembler) Assemble(ctx context.Context, in BirthInput, opts Options) (*Profile, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	// 1. Validate
	moment, err := in.Validate()
	if err != nil {
		return nil, err
	}
	asOf, err := a.asOfYear(opts.AsOfYear)
	if err != nil {
		return nil, err
	}

	// 2. Resolve pillars
	log.DebugContext(ctx, config.MsgConverting,
		config.LogKeyCalendar, string(moment.Calendar),
		config.LogKeyDOB, moment.Date.String(),
	)
	res, err := a.Converter.Convert(ctx, moment)
	if err != nil {
		return nil, err
	}
	pillars, err := res.Pillars(moment.HourKnown)
	if err != nil {
		return nil, err
	}

	// 3. Compose
	text := a.Content.Localize(opts.Languages...)
	p := a.compose(in, moment, res, pillars, asOf, text)

	log.DebugContext(ctx, config.MsgProfileBuilt,
		config.LogKeyDayStem, p.DayGan,
		config.LogKeyUseful, p.Yongsin.Useful.Element.String(),
		config.LogKeyLang, p.Meta.Locale,
		config.LogKeyAsOf, asOf,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return p, nil
}

func (a *Assembler) asOfYear(requested int) (int, error) {
	switch {
	case requested > 0:
		return requested, nil
	case requested < 0:
		return 0, invalid(config.FieldAsOfYear, config.ReasonNonPositive)
	}
	clock := a.Clock
	if clock == nil {
		clock = RealClock{}
	}
	return clock.Now().Year(), nil
}

func (a *Assembler) strategy() Strategy {
	if a.Strategy == nil {
		return TableStrategy{}
	}
	return a.Strategy
}

func (a *Assembler) compose(in BirthInput, m Moment, res Resolution, pillars Pillars, asOf int, text Narrative) *Profile {
	strategy := a.strategy()
	dist := AnalyzeElements(pillars)
	yongsin := SelectYongsin(dist)

	birthTime := ""
	if m.HourKnown {
		birthTime = m.Hour.Slot()
	}

	return &Profile{
		UserInfo: UserInfo{
			Name:       strings.TrimSpace(in.Name),
			Gender:     in.Gender,
			Calendar:   m.Calendar,
			LeapMonth:  m.LeapMonth,
			BirthDate:  m.Date.String(),
			BirthTime:  birthTime,
			BirthPlace: strings.TrimSpace(in.BirthPlace),
			SolarDate:  res.SolarDate,
			LunarDate:  res.LunarDate,
		},
		Pillars:         pillars,
		DayGan:          pillars.Day.Gan(),
		ElementBalance:  dist,
		TenStars:        renderTenStars(strategy.TenStars(pillars.Day.Stem, pillars), text),
		Yongsin:         yongsin,
		Daeun:           GenerateDaeun(m.Date.Year, in.Gender, asOf, strategy, text),
		Seun:            GenerateSeun(asOf, strategy, text),
		CategoryFortune: categoryFortunes(text),
		LuckyItems:      luckyItems(yongsin, text),
		ImprovementTips: improvementTips(yongsin, text),
		Meta: Meta{
			AsOfYear:       asOf,
			Locale:         text.Locale(),
			ContentVersion: text.Version(),
		},
	}
}

// BatchResult pairs an input with its profile or failure.
type BatchResult struct {
	Input   BirthInput
	Profile *Profile
	Err     error
}

// AssembleBatch computes profiles with at most workers in flight. Results keep
// input order. A failing item does not stop the batch; only context
// cancellation does.
func (a *Assembler) AssembleBatch(ctx context.Context, inputs []BirthInput, opts Options, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		return nil, errors.New(config.ErrWorkers)
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := a.Assemble(gctx, in, opts)
			results[i] = BatchResult{Input: in, Profile: p, Err: err}
			if err != nil {
				slog.Warn(config.MsgProfileFailed,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, in.Name,
					config.LogKeyError, err,
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBatch, err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	slog.Info(config.MsgBatchDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(results),
		config.LogKeyFailed, failed,
	)
	return results, nil
}
