package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tartampluch/go-saju/internal/config"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdToken,
		Short: config.CmdDescToken,
	}
	cmd.PersistentFlags().String(config.FlagAccount, config.DefaultAccount, config.FlagDescAccount)

	cmd.AddCommand(&cobra.Command{
		Use:   config.CmdTokenSet,
		Short: config.CmdDescTokenSet,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrideString(cmd, config.FlagAccount, &a.settings.Account)
			token, err := readToken(cmd)
			if err != nil {
				return err
			}
			if err := config.SaveToken(a.settings.Account, token); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.MsgTokenSaved)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   config.CmdTokenClear,
		Short: config.CmdDescTokenClear,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrideString(cmd, config.FlagAccount, &a.settings.Account)
			if err := config.DeleteToken(a.settings.Account); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), config.MsgTokenCleared)
			return nil
		},
	})

	return cmd
}

// readToken prompts without echo on a terminal and reads one line otherwise.
func readToken(cmd *cobra.Command) (string, error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), config.MsgTokenPrompt)
		raw, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrReadToken, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%s: %w", config.ErrReadToken, err)
	}
	return strings.TrimSpace(line), nil
}
