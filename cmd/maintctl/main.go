// Copyright 2026 haussearch LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/haussearch/maintctl/cmd/maintctl/commands"
	"github.com/haussearch/maintctl/cmd/maintctl/opts"
	"github.com/haussearch/maintctl/pkg/log"
)

func main() {
	// Structured logs go to stderr; user-facing output goes to stdout
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := zlog.WithContext(context.Background())

	// Create root options shared by all commands
	o := &opts.RootOpts{
		Logger:     log.New(os.Stdout, zerolog.InfoLevel),
		UserLogger: log.NewUserLogger(ctx),
	}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "maintctl",
		Short: "Maintenance tools for the haussearch codebase",
		Long: `maintctl bundles small one-shot maintenance operations:
rewriting console.* calls into structured logger calls across source files,
and re-queueing failed scrape jobs against the property API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewMigrateCmd(o),
		commands.NewRequeueCmd(o),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		o.UserLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
