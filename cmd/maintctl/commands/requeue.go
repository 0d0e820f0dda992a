package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/haussearch/maintctl/cmd/maintctl/opts"
	"github.com/haussearch/maintctl/pkg/requeue"
)

// baseURLEnv overrides the default job service address
const baseURLEnv = "MAINTCTL_API_BASE"

// NewRequeueCmd creates a new requeue command
func NewRequeueCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		baseURL string
		limit   int
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "requeue",
		Short: "Re-queue failed scrape jobs",
		Long: `Requeue fetches recent job history from the property API, collects the
distinct search terms of failed jobs, and submits one scrape request per
term with a fixed delay between submissions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := requeue.NewRunner(requeue.Options{
				Client: requeue.NewClient(baseURL),
				Logger: opts.UserLogger,
				Limit:  limit,
				Delay:  delay,
			})
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			summary, err := runner.Run(ctx)
			if err != nil {
				return errors.Errorf("requeueing failed jobs: %w", err)
			}

			opts.UserLogger.LogValidation(true, fmt.Sprintf("Successfully queued: %d", summary.Queued), nil)
			if summary.Failed > 0 {
				opts.UserLogger.LogValidation(false, fmt.Sprintf("Failed to queue: %d", summary.Failed), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", defaultBaseURL(), "job service base URL")
	cmd.Flags().IntVar(&limit, "limit", requeue.DefaultLimit, "history records to inspect")
	cmd.Flags().DurationVar(&delay, "delay", requeue.DefaultDelay, "pause between submissions")

	return cmd
}

// defaultBaseURL resolves the job service address from the environment,
// loading .env when present
func defaultBaseURL() string {
	_ = godotenv.Load()
	if base := os.Getenv(baseURLEnv); base != "" {
		return base
	}
	return "http://localhost:3002"
}
