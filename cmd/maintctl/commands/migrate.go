package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/haussearch/maintctl/cmd/maintctl/opts"
	"github.com/haussearch/maintctl/pkg/migrate"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		target   string
		excludes []string
	)

	cmd := &cobra.Command{
		Use:   "migrate <file> [<file>...]",
		Short: "Rewrite console.* calls to the structured logger",
		Long: `Migrate replaces console.log/error/warn/info/debug calls in the given
files with logger.* calls and inserts the logger import when a file was
rewritten and does not import it yet. Files are processed in the given
order; a failure on one file never stops the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var rules migrate.RuleSet
			switch target {
			case "client":
				rules = migrate.ClientRules()
			case "server":
				rules = migrate.ServerRules()
			default:
				return errors.Errorf("unknown target %q (expected client or server)", target)
			}
			rules.ExcludeGlobs = append(rules.ExcludeGlobs, excludes...)

			migrator, err := migrate.New(rules, opts.Logger)
			if err != nil {
				return errors.Errorf("creating migrator: %w", err)
			}

			opts.Logger.Header(fmt.Sprintf("migrating %d files (%s rules)", len(args), rules.Name))
			summary := migrator.MigrateBatch(ctx, args)
			opts.Logger.Successf("Migrated %d files", summary.Migrated)

			// Per-file failures are reported above but never change the exit code
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "server", "rule table to apply (client or server)")
	cmd.Flags().StringArrayVarP(&excludes, "exclude", "e", nil, "glob patterns for files to skip")

	return cmd
}
