package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/report"
)

type computeOptions struct {
	input    engine.BirthInput
	calendar string
	gender   string
	asOf     int
	lang     string
	format   string
}

func newComputeCmd(a *app) *cobra.Command {
	var opts computeOptions

	cmd := &cobra.Command{
		Use:   config.CmdCompute,
		Short: config.CmdDescCompute,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.input.Name, config.FlagName, "", config.FlagDescName)
	flags.StringVar(&opts.gender, config.FlagGender, "", config.FlagDescGender)
	flags.StringVar(&opts.input.BirthDate, config.FlagDate, "", config.FlagDescDate)
	flags.StringVar(&opts.calendar, config.FlagCalendar, string(engine.Solar), config.FlagDescCalendar)
	flags.BoolVar(&opts.input.LeapMonth, config.FlagLeap, false, config.FlagDescLeap)
	flags.StringVar(&opts.input.BirthTime, config.FlagTime, "", config.FlagDescTime)
	flags.StringVar(&opts.input.BirthPlace, config.FlagPlace, "", config.FlagDescPlace)
	flags.IntVar(&opts.asOf, config.FlagAsOf, 0, config.FlagDescAsOf)
	flags.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	flags.StringVar(&opts.format, config.FlagFormat, config.FormatJSON, config.FlagDescFormat)

	return cmd
}

func runCompute(cmd *cobra.Command, a *app, opts computeOptions) error {
	// 1. Validate output format before doing any work.
	if err := checkFormat(opts.format); err != nil {
		return err
	}

	// 2. Wire dependencies
	asm, catalog, closer, err := a.newAssembler("")
	if err != nil {
		return err
	}
	defer closeQuietly(closer)
	checkLanguage(catalog, opts.lang)

	// 3. Compute
	in := opts.input
	in.Gender = engine.Gender(opts.gender)
	in.Calendar = engine.CalendarSystem(opts.calendar)
	langs := a.languages(opts.lang)

	p, err := asm.Assemble(cmd.Context(), in, engine.Options{AsOfYear: opts.asOf, Languages: langs})
	if err != nil {
		return err
	}

	// 4. Render
	out := cmd.OutOrStdout()
	if opts.format == config.FormatText {
		_, err = io.WriteString(out, report.Render(p, catalog.Localize(langs...)))
		return err
	}
	return writeJSON(out, p)
}

func checkFormat(format string) error {
	switch format {
	case config.FormatJSON, config.FormatText:
		return nil
	default:
		return fmt.Errorf("%s: %q", config.ErrFormatUnsupport, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", config.JSONIndent)
	return enc.Encode(v)
}
