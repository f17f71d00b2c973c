package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/report"
	"github.com/tartampluch/go-saju/internal/vcard"
)

type importOptions struct {
	defaultGender string
	asOf          int
	lang          string
	format        string
}

// importResult is one contact of the JSON output, in input order.
type importResult struct {
	Name    string          `json:"name"`
	Profile *engine.Profile `json:"profile,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   config.CmdImport,
		Short: config.CmdDescImport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.defaultGender, config.FlagDefaultGender, "", config.FlagDescDefaultGender)
	flags.Int(config.FlagWorkers, config.DefaultWorkers, config.FlagDescWorkers)
	flags.IntVar(&opts.asOf, config.FlagAsOf, 0, config.FlagDescAsOf)
	flags.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	flags.StringVar(&opts.format, config.FlagFormat, config.FormatJSON, config.FlagDescFormat)

	return cmd
}

func runImport(cmd *cobra.Command, a *app, path string, opts importOptions) error {
	// 1. Validate
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	overrideInt(cmd, config.FlagWorkers, &a.settings.Workers)

	// 2. Read contacts
	r, closeInput, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	inputs, err := vcard.Decode(r, vcard.Options{DefaultGender: engine.Gender(opts.defaultGender)})
	closeInput()
	if err != nil {
		return err
	}

	// 3. Compute in parallel
	asm, catalog, closer, err := a.newAssembler("")
	if err != nil {
		return err
	}
	defer closeQuietly(closer)
	checkLanguage(catalog, opts.lang)

	langs := a.languages(opts.lang)
	results, err := asm.AssembleBatch(cmd.Context(), inputs, engine.Options{AsOfYear: opts.asOf, Languages: langs}, a.settings.Workers)
	if err != nil {
		return err
	}

	// 4. Render
	out := cmd.OutOrStdout()
	if opts.format == config.FormatText {
		text := catalog.Localize(langs...)
		for _, res := range results {
			if res.Err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), config.MsgImportFailed, res.Input.Name, res.Err)
				continue
			}
			if _, err := io.WriteString(out, report.Render(res.Profile, text)); err != nil {
				return err
			}
		}
		return nil
	}

	rows := make([]importResult, len(results))
	for i, res := range results {
		rows[i] = importResult{Name: res.Input.Name, Profile: res.Profile}
		if res.Err != nil {
			rows[i].Error = res.Err.Error()
		}
	}
	return writeJSON(out, rows)
}

// openInput opens path, or the command's stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == config.ArgStdin {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrOpenInput, err)
	}
	return f, func() { _ = f.Close() }, nil
}
