package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duescan/duescan/internal/cli"
	"github.com/duescan/duescan/internal/common"
	"github.com/duescan/duescan/internal/extract"
	"github.com/duescan/duescan/internal/registry"
)

func extractCmd() *cobra.Command {
	var (
		timezone    string
		locale      string
		session     string
		bypassCache bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract BNPL installments from pasted email text",
		Long: `Reads email text from a file or stdin, splits it into segments, and
extracts one installment row (or one issue) per segment. The result is
stored as the named session for later fix/undo commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return common.ErrEmptyInput
			}

			dateLocale, err := configuredLocale(locale)
			if err != nil {
				return err
			}
			tz := configuredTimezone(timezone)

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			svc := extract.NewService(extract.NewExtractor(registry.New()), store)
			result, err := svc.ExtractItemsFromEmails(ctx, text, tz, extract.Options{
				DateLocale:  dateLocale,
				BypassCache: bypassCache,
			})
			if err != nil {
				return err
			}

			if err := store.SaveResult(ctx, session, result); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Print(cli.RenderItems(result.Items))
			fmt.Print(cli.RenderIssues(result.Issues))
			stats, err := svc.CacheStats(ctx)
			if err != nil {
				return err
			}
			fmt.Print(cli.RenderStats(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for date resolution (default UTC)")
	cmd.Flags().StringVar(&locale, "locale", "", "date locale for ambiguous numeric dates (US or EU)")
	cmd.Flags().StringVar(&session, "session", defaultSession, "session name to store the result under")
	cmd.Flags().BoolVar(&bypassCache, "bypass-cache", false, "skip the extraction cache read and write")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw extraction result as JSON")

	return cmd
}
