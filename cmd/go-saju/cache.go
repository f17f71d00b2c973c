package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/store"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdCache,
		Short: config.CmdDescCache,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   config.CmdCacheStats,
		Short: config.CmdDescCacheStats,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store.Open(a.settings.CachePath)
			if err != nil {
				return err
			}
			defer closeQuietly(st)

			n, err := st.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgCacheStats, n, a.settings.CachePath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   config.CmdCacheClear,
		Short: config.CmdDescCacheClear,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store.Open(a.settings.CachePath)
			if err != nil {
				return err
			}
			defer closeQuietly(st)

			n, err := st.Purge(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgCacheCleared, n)
			return nil
		},
	})

	return cmd
}
