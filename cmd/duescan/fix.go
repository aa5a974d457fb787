package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duescan/duescan/internal/cli"
	"github.com/duescan/duescan/internal/quickfix"
)

func fixCmd() *cobra.Command {
	var (
		session  string
		date     string
		locale   string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "fix ROWID",
		Short: "Correct one row's due date, manually or by re-parsing its locale",
		Long: `Applies a quick fix to one row and recomputes its confidence.

With --date the given ISO date is set directly (it must fall inside the
supported range). With --locale the row's original raw date token is
re-parsed under the other locale. One level of undo is kept per row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (date == "") == (locale == "") {
				return fmt.Errorf("exactly one of --date or --locale is required")
			}
			rowID := args[0]

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
			snapshots, err := store.LoadSnapshots(ctx, session)
			if err != nil {
				return err
			}

			engine := quickfix.NewEngine()
			engine.Restore(rows, snapshots)

			patch := quickfix.Patch{DueDate: date}
			if locale != "" {
				target, err := configuredLocale(locale)
				if err != nil {
					return err
				}
				raw := ""
				for _, row := range rows {
					if row.ID == rowID {
						raw = row.RawDueDate
						break
					}
				}
				if raw == "" {
					fmt.Println(cli.SubtleStyle.Render("Row has no raw date token to re-parse; nothing to do."))
					return nil
				}
				resolved, err := quickfix.ReparseDate(raw, configuredTimezone(timezone), target)
				if err != nil {
					return err
				}
				patch.DueDate = resolved
			}

			if err := engine.ApplyRowFix(rowID, patch); err != nil {
				return err
			}

			if err := store.SaveRows(ctx, session, engine.Rows()); err != nil {
				return err
			}
			if err := store.SaveSnapshots(ctx, session, engine.Snapshots()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("row %s fixed to %s", rowID, patch.DueDate)))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", defaultSession, "session name")
	cmd.Flags().StringVar(&date, "date", "", "manual ISO due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&locale, "locale", "", "re-parse the raw date under this locale (US or EU)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for re-parsing (default UTC)")

	return cmd
}

func undoCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "undo ROWID",
		Short: "Undo the last fix applied to a row (one level)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID := args[0]

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
			snapshots, err := store.LoadSnapshots(ctx, session)
			if err != nil {
				return err
			}
			if _, ok := snapshots[rowID]; !ok {
				fmt.Println(cli.SubtleStyle.Render("No pending fix to undo for that row."))
				return nil
			}

			engine := quickfix.NewEngine()
			engine.Restore(rows, snapshots)
			engine.UndoRowFix(rowID)

			if err := store.SaveRows(ctx, session, engine.Rows()); err != nil {
				return err
			}
			if err := store.SaveSnapshots(ctx, session, engine.Snapshots()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("row %s restored", rowID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", defaultSession, "session name")

	return cmd
}

func clearCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard a session's rows, issues, and pending undo snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearSession(cmd.Context(), session); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("session %q cleared", session)))
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", defaultSession, "session name")

	return cmd
}
