package cli

import (
	"fmt"

	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/alexanderramin/tably/internal/service"
	"github.com/spf13/cobra"
)

func newCommitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Manage fixed commitments (courses you are already taking)",
	}

	cmd.AddCommand(
		newCommitAddCmd(app),
		newCommitListCmd(app),
		newCommitRemoveCmd(app),
	)

	return cmd
}

func newCommitAddCmd(app *App) *cobra.Command {
	var in service.CommitmentInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Lock in a course or an ad-hoc weekly commitment",
		Example: `  tably commit add --course CS101
  tably commit add --title "Orchestra" --credits 1 --meet "TUE 18:00-20:00"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			term, err := resolveTerm(ctx, app, in.Term)
			if err != nil {
				return err
			}
			in.Term = term
			c, err := app.Commitments.Add(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added commitment %s (%s) %s\n",
				c.Title, formatter.FormatCredits(c.Credits), formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Term, "term", "", "Term (defaults to the configured or profile term)")
	cmd.Flags().StringVar(&in.CourseID, "course", "", "Catalog course to lock in")
	cmd.Flags().StringVar(&in.Title, "title", "", "Title of an ad-hoc commitment")
	cmd.Flags().IntVar(&in.Credits, "credits", 0, "Credits of an ad-hoc commitment")
	cmd.Flags().StringArrayVar(&in.Meetings, "meet", nil, `Weekly meeting, e.g. "TUE 18:00-20:00" (repeatable)`)
	cmd.MarkFlagsMutuallyExclusive("course", "title")
	cmd.MarkFlagsOneRequired("course", "title")
	return cmd
}

func newCommitListCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixed commitments of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolved, err := resolveTerm(ctx, app, term)
			if err != nil {
				return err
			}
			items, err := app.Commitments.List(ctx, resolved)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCommitmentList(resolved, items))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term (defaults to the configured or profile term)")
	return cmd
}

func newCommitRemoveCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a fixed commitment by ID or ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolved, err := resolveTerm(ctx, app, term)
			if err != nil {
				return err
			}
			id, err := resolveCommitmentID(ctx, app, resolved, args[0])
			if err != nil {
				return err
			}
			if err := app.Commitments.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed commitment %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term (defaults to the configured or profile term)")
	return cmd
}
