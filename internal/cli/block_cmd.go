package cli

import (
	"fmt"

	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage blocked weekly times (work shifts, commutes)",
	}

	cmd.AddCommand(
		newBlockAddCmd(app),
		newBlockListCmd(app),
		newBlockRemoveCmd(app),
	)

	return cmd
}

func newBlockAddCmd(app *App) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:     "add <slot>",
		Short:   "Block a weekly time window",
		Example: `  tably block add "TUE 17:00-21:00" --label "shift"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Blocks.Add(cmd.Context(), label, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blocked %s (%s) %s\n", b.Slot, b.Label, formatter.TruncID(b.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Label shown in listings")
	return cmd
}

func newBlockListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blocked times",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Blocks.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlockList(items))
			return nil
		},
	}
}

func newBlockRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a blocked time by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Blocks.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed blocked time %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
