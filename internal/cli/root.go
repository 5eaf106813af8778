package cli

import (
	"github.com/alexanderramin/tably/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Courses     service.CourseService
	Commitments service.CommitmentService
	Blocks      service.BlockService
	Profile     service.ProfileService
	Recommend   service.RecommendService

	// DefaultTerm is the configured term used when --term is omitted.
	DefaultTerm string

	// IsInteractive reports whether stdin and stdout are terminals.
	// Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tably" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "tably",
		Short:        "Timetable builder and course combination ranker",
		SilenceUsage: true,
	}

	root.AddCommand(
		newCourseCmd(app),
		newCommitCmd(app),
		newBlockCmd(app),
		newProfileCmd(app),
		newRecommendCmd(app),
	)

	return root
}
