package main

import (
	"fmt"

	"github.com/marune/backoffice/internal/cli"
	"github.com/spf13/cobra"
)

func sidebarCmd() *cobra.Command {
	var (
		kindFlag  string
		todayFlag string
		label     string
	)

	cmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Render the call-queue sidebar for one entity kind",
		Long: `Classifies every stored record of the given kind against its rule
table and renders the category counts the way the sidebar shows them:
declared category order with descending-count subgroups.

The reference day defaults to today in the business timezone; pass
--today to classify as of another day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := parseKindArg(kindFlag)
			if err != nil {
				return err
			}
			env, err := resolveEnv(todayFlag)
			if err != nil {
				return err
			}

			tables, err := loadTables()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := loadSnapshots(ctx, store, tables, kind)
			if err != nil {
				return err
			}

			groups, err := newClassifier(tables).Aggregate(env, kind, snaps)
			if err != nil {
				return err
			}

			if label != "" {
				for _, g := range groups {
					if g.Label == label {
						fmt.Print(cli.RenderMembers(g))
						return nil
					}
				}
				return fmt.Errorf("no category %q in the %s queue", label, kind)
			}

			fmt.Print(cli.RenderSidebar(kind, groups))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "seller", "entity kind (seller, buyer, task)")
	cmd.Flags().StringVar(&todayFlag, "today", "", "reference day (YYYY/MM/DD), defaults to today")
	cmd.Flags().StringVar(&label, "category", "", "show one category's member ids instead of the full sidebar")

	return cmd
}
