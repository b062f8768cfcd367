package main

import (
	"errors"
	"fmt"

	"github.com/marune/backoffice/internal/cli"
	"github.com/marune/backoffice/internal/common"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	var (
		kindFlag  string
		todayFlag string
	)

	cmd := &cobra.Command{
		Use:   "classify <id>",
		Short: "Classify a single stored record",
		Long: `Runs one record through its kind's rule table and prints the
category it lands in, or "no category" when nothing matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

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
			table, err := tables.ForKind(kind)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.GetRecord(ctx, kind, id)
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(
					fmt.Sprintf("no stored %s with id %q; run 'backoffice sync' first", kind, id), err)
			}
			if err != nil {
				return fmt.Errorf("failed to load %s %q: %w", kind, id, err)
			}

			result, err := newClassifier(tables).Classify(env, record.Snapshot(table.Schema))
			if err != nil {
				return err
			}

			if !result.Matched {
				fmt.Printf("%s %s: %s\n", kind, id, cli.WarningStyle.Render("no category"))
				return nil
			}

			fmt.Printf("%s %s: %s\n", kind, id, cli.CategoryStyle(result.Color).Render(result.Label))
			if result.SubgroupKey != "" {
				fmt.Printf("  subgroup: %s\n", result.SubgroupKey)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "seller", "entity kind (seller, buyer, task)")
	cmd.Flags().StringVar(&todayFlag, "today", "", "reference day (YYYY/MM/DD), defaults to today")

	return cmd
}
