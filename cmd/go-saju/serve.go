package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/narrative"
	"github.com/tartampluch/go-saju/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, a)
		},
	}

	cmd.Flags().String(config.FlagPort, config.DefaultPort, config.FlagDescPort)
	cmd.Flags().String(config.FlagContentDir, "", config.FlagDescContentDir)
	cmd.Flags().String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)

	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	overrideString(cmd, config.FlagPort, &a.settings.Port)
	overrideString(cmd, config.FlagContentDir, &a.settings.ContentDir)
	overrideString(cmd, config.FlagLang, &a.settings.Language)

	logStartupInfo()

	asm, catalog, closer, err := a.newAssembler(a.settings.ContentDir)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	checkLanguage(catalog, a.settings.Language)
	slog.Info(config.MsgCatalogReload,
		config.LogKeyComponent, config.CompI18n,
		config.LogKeyDir, a.settings.ContentDir,
		config.LogKeyLangs, catalog.Languages(),
	)

	ctx := cmd.Context()
	go watchReload(ctx, catalog, a.settings.ContentDir)

	srv := server.NewProfileServer(a.settings.Port, asm, catalog)
	srv.Language = a.settings.Language
	srv.ReminderTrigger = a.settings.ReminderTrigger

	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// watchReload re-reads the narrative content directory on SIGHUP until ctx ends.
func watchReload(ctx context.Context, catalog *narrative.Catalog, dir string) {
	hup := make(chan os.Signal, config.ChannelBufferSize)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := catalog.Reload(dir); err != nil {
				slog.Error(config.MsgCatalogFailed,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyDir, dir,
					config.LogKeyError, err,
				)
				continue
			}
			slog.Info(config.MsgCatalogReload,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyDir, dir,
				config.LogKeyLangs, catalog.Languages(),
			)
		}
	}
}
