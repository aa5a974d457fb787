package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duescan/duescan/internal/cli"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the extraction cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache hit/miss counters",
		RunE: func(c *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Stats(c.Context())
			if err != nil {
				return err
			}
			fmt.Print(cli.RenderStats(stats))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached extraction result",
		RunE: func(c *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Clear(c.Context()); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("extraction cache cleared"))
			return nil
		},
	})

	return cmd
}
