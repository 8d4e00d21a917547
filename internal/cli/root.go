// Package cli holds the studylog admin commands.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

// App holds what the commands need. Storage is opened lazily so the offline
// commands (normalize, summary) work without a database.
type App struct {
	Migrate func(ctx context.Context) error
	Entries func(ctx context.Context) (domain.LogEntryRepository, error)
	Now     func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "studylog" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studylog",
		Short:         "Study log administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(app),
		newNormalizeCmd(),
		newSummaryCmd(),
		newExportCmd(app),
	)

	return root
}
