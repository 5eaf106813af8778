package cli

import (
	"fmt"

	"github.com/alexanderramin/tably/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage the course catalog",
	}

	cmd.AddCommand(
		newCourseImportCmd(app),
		newCourseListCmd(app),
		newCourseShowCmd(app),
		newCourseTermsCmd(app),
		newCourseRemoveCmd(app),
		newCourseClearCmd(app),
	)

	return cmd
}

func newCourseImportCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a catalog from a JSON or CSV file",
		Long: `Import a course catalog. JSON files carry a "term" and a "courses" array;
CSV files have one row per course with meetings separated by ";"
(for example "MON 09:00-10:15;WED 09:00-10:15"). --term overrides the
term stored in the file and is required for CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Courses.ImportCatalog(cmd.Context(), args[0], term)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to import into (overrides the file)")
	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the courses of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolved, err := resolveTerm(ctx, app, term)
			if err != nil {
				return err
			}
			if resolved == "" {
				terms, err := app.Courses.Terms(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTermList(terms))
				return nil
			}
			courses, err := app.Courses.List(ctx, resolved)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(resolved, courses))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term (defaults to the configured or profile term)")
	return cmd
}

func newCourseShowCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolved, err := resolveTerm(ctx, app, term)
			if err != nil {
				return err
			}
			c, err := app.Courses.Get(ctx, resolved, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseDetail(c))
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term (defaults to the configured or profile term)")
	return cmd
}

func newCourseTermsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "terms",
		Short: "List imported terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := app.Courses.Terms(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTermList(terms))
			return nil
		},
	}
}

func newCourseRemoveCmd(app *App) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "remove <course-id>",
		Short: "Remove a course from a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolved, err := resolveTerm(ctx, app, term)
			if err != nil {
				return err
			}
			if err := app.Courses.Delete(ctx, resolved, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed course %s from %s\n", args[0], resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term (defaults to the configured or profile term)")
	return cmd
}

func newCourseClearCmd(app *App) *cobra.Command {
	var (
		term string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every course of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				msg := fmt.Sprintf("Remove every course in %s? [y/N] ", term)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), msg) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			n, err := app.Courses.DeleteTerm(cmd.Context(), term)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d course(s) from %s\n", n, term)
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Term to clear")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("term")
	return cmd
}
