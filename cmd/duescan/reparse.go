package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duescan/duescan/internal/quickfix"
)

func reparseCmd() *cobra.Command {
	var (
		locale   string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "reparse RAW_DATE",
		Short: "Resolve a raw date token under a locale without touching any row",
		Long: `Resolves a raw date token (e.g. "01/02/2026") under the given locale and
prints the ISO date. Ambiguous numeric tokens flip between month-first (US)
and day-first (EU); impossible dates fail instead of being guessed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			target, err := configuredLocale(locale)
			if err != nil {
				return err
			}
			resolved, err := quickfix.ReparseDate(args[0], configuredTimezone(timezone), target)
			if err != nil {
				return err
			}
			fmt.Println(resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "target locale (US or EU)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone (default UTC)")

	return cmd
}
