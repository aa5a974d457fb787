package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duescan/duescan/internal/cli"
)

func rowsCmd() *cobra.Command {
	var (
		session string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Show the current rows of a session, including applied fixes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			rows, err := store.LoadRows(ctx, session)
			if err != nil {
				return err
			}
			issues, err := store.LoadIssues(ctx, session)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"items": rows, "issues": issues})
			}

			fmt.Print(cli.RenderItems(rows))
			fmt.Print(cli.RenderIssues(issues))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", defaultSession, "session name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit rows as JSON")

	return cmd
}
