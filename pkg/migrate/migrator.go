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

// Package migrate rewrites console-logging calls in client/server sources
// into structured-logger calls, inserting the logger import where needed.
package migrate

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/haussearch/maintctl/pkg/log"
)

// 📊 Outcome classifies the result of migrating one file
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeModified          // File was rewritten on disk
	OutcomeUnchanged         // No pattern matched, disk untouched
	OutcomeNotFound          // Path does not exist
	OutcomeSkipped           // Path matched an exclusion rule
	OutcomeFailed            // Read or write failed
)

// String returns the console marker for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeModified:
		return "migrated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileOutcome is the per-file result of a batch run
type FileOutcome struct {
	Path         string
	Outcome      Outcome
	Replacements int
	Err          error
}

// 📈 Summary aggregates a batch run
type Summary struct {
	// Migrated is the count of OutcomeModified results
	Migrated int

	// Outcomes holds the per-file results in input order
	Outcomes []FileOutcome
}

// 🔧 Migrator rewrites files according to one RuleSet
type Migrator struct {
	rules    RuleSet
	replacer Replacer
	logger   *log.Logger
}

// 🏭 New creates a migrator for the given rule set
func New(rules RuleSet, logger *log.Logger) (*Migrator, error) {
	if logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	replacer := NewWordBoundaryReplacer()
	if err := replacer.ValidateRules(rules.Replacements); err != nil {
		return nil, errors.Errorf("validating replacements: %w", err)
	}
	return &Migrator{
		rules:    rules,
		replacer: replacer,
		logger:   logger,
	}, nil
}

// 📝 MigrateFile rewrites a single file in place. The file is written back
// only when at least one replacement matched; the write replaces the whole
// file atomically (temp file + rename).
func (m *Migrator) MigrateFile(ctx context.Context, path string) (Outcome, int, error) {
	zlog := zerolog.Ctx(ctx)

	original, err := os.ReadFile(path)
	if err != nil {
		return OutcomeFailed, 0, errors.Errorf("reading file: %w", err)
	}

	result, err := m.replacer.Replace(ctx, bytes.NewReader(original), m.rules.Replacements)
	if err != nil {
		return OutcomeFailed, 0, errors.Errorf("applying replacements: %w", err)
	}

	if !result.WasModified {
		zlog.Debug().Str("path", path).Msg("no logging calls found")
		return OutcomeUnchanged, 0, nil
	}

	content := string(result.ModifiedContent)

	// Insert the logger import unless one is already present. Replacements
	// never produce the marker text, so checking the rewritten content is
	// equivalent to checking the original.
	if !strings.Contains(content, m.rules.ImportMarker) {
		statement := m.rules.importStatementFor(path)
		lines := strings.Split(content, "\n")
		idx := insertionIndex(lines, lastImportIndex(lines))
		lines = insertLine(lines, idx, statement)
		content = strings.Join(lines, "\n")

		zlog.Debug().
			Str("path", path).
			Str("import", statement).
			Int("line", idx).
			Msg("inserted logger import")
	}

	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return OutcomeFailed, 0, errors.Errorf("writing file: %w", err)
	}

	zlog.Debug().
		Str("path", path).
		Int("replacements", result.ReplacementCount).
		Msg("file rewritten")
	return OutcomeModified, result.ReplacementCount, nil
}

// 📋 MigrateBatch processes paths in input order, fully sequential. A failure
// on one path never aborts the rest of the batch.
func (m *Migrator) MigrateBatch(ctx context.Context, paths []string) *Summary {
	summary := &Summary{}

	for _, path := range paths {
		fo := FileOutcome{Path: path}

		switch {
		case !fileExists(path):
			fo.Outcome = OutcomeNotFound
		case m.rules.excluded(path):
			fo.Outcome = OutcomeSkipped
		default:
			outcome, replacements, err := m.MigrateFile(ctx, path)
			fo.Outcome = outcome
			fo.Replacements = replacements
			fo.Err = err
		}

		if fo.Outcome == OutcomeModified {
			summary.Migrated++
		}
		summary.Outcomes = append(summary.Outcomes, fo)

		m.logger.LogFileOperation(ctx, log.FileOperation{
			Path:         path,
			Outcome:      fo.Outcome.String(),
			Replacements: fo.Replacements,
			Err:          fo.Err,
		})
	}

	return summary
}

// fileExists reports whether path names an existing file
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic overwrites path in full via a temp file and rename,
// preserving the original file mode
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
