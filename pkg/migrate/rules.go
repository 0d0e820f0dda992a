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

package migrate

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔄 ReplacementRule defines a single word-bounded identifier replacement
type ReplacementRule struct {
	// From is the identifier to replace (matched on word boundaries)
	From string

	// To is the replacement identifier
	To string
}

// 📦 ImportRule maps a path substring to the import statement for that location
type ImportRule struct {
	// PathContains is the substring tested against the file path
	PathContains string

	// Statement is the full import declaration to insert
	Statement string
}

// 🔧 RuleSet parameterizes one migration context (client or server sources)
type RuleSet struct {
	// Name identifies the rule set in logs
	Name string

	// Replacements are applied across the whole file text
	Replacements []ReplacementRule

	// ImportRules are evaluated in order; the first path match wins
	ImportRules []ImportRule

	// DefaultImport is used when no ImportRule matches
	DefaultImport string

	// ImportMarker is the substring whose presence means the logger
	// is already imported
	ImportMarker string

	// ExcludeGlobs are doublestar patterns for paths to skip entirely
	ExcludeGlobs []string
}

// loggerImportMarker is the prefix of every logger import declaration
const loggerImportMarker = "import logger from"

// consoleReplacements is the fixed console-to-logger identifier table
func consoleReplacements() []ReplacementRule {
	return []ReplacementRule{
		{From: "console.log", To: "logger.info"},
		{From: "console.error", To: "logger.error"},
		{From: "console.warn", To: "logger.warn"},
		{From: "console.info", To: "logger.info"},
		{From: "console.debug", To: "logger.debug"},
	}
}

// 🏭 ClientRules returns the rule set for client-side sources
func ClientRules() RuleSet {
	return RuleSet{
		Name:         "client",
		Replacements: consoleReplacements(),
		ImportRules: []ImportRule{
			{PathContains: "/components/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/services/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/lib/", Statement: "import logger from './logger';"},
		},
		DefaultImport: "import logger from './lib/logger';",
		ImportMarker:  loggerImportMarker,
	}
}

// 🏭 ServerRules returns the rule set for server-side sources
func ServerRules() RuleSet {
	return RuleSet{
		Name:         "server",
		Replacements: consoleReplacements(),
		ImportRules: []ImportRule{
			{PathContains: "/lib/", Statement: "import logger from './logger';"},
			{PathContains: "/scripts/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/cli/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/services/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/middleware/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/routes/", Statement: "import logger from '../lib/logger';"},
			{PathContains: "/utils/", Statement: "import logger from '../lib/logger';"},
		},
		DefaultImport: "import logger from '../lib/logger';",
		ImportMarker:  loggerImportMarker,
		// The migration tooling itself must never be rewritten.
		ExcludeGlobs: []string{"**/migrate-to-logger.ts"},
	}
}

// 🔍 Validate checks that the rule set is usable
func (rs RuleSet) Validate() error {
	if len(rs.Replacements) == 0 {
		return errors.Errorf("rule set %q: at least one replacement is required", rs.Name)
	}
	for i, rule := range rs.Replacements {
		if rule.From == "" {
			return errors.Errorf("rule set %q: replacement %d: from is required", rs.Name, i)
		}
	}
	if rs.DefaultImport == "" {
		return errors.Errorf("rule set %q: default import is required", rs.Name)
	}
	if rs.ImportMarker == "" {
		return errors.Errorf("rule set %q: import marker is required", rs.Name)
	}
	for _, pattern := range rs.ExcludeGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("rule set %q: invalid exclude pattern %q", rs.Name, pattern)
		}
	}
	return nil
}

// importStatementFor selects the import declaration for a file path,
// first substring match wins
func (rs RuleSet) importStatementFor(path string) string {
	slashed := filepath.ToSlash(path)
	for _, rule := range rs.ImportRules {
		if rule.PathContains != "" && strings.Contains(slashed, rule.PathContains) {
			return rule.Statement
		}
	}
	return rs.DefaultImport
}

// excluded reports whether the path matches any exclusion glob
func (rs RuleSet) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range rs.ExcludeGlobs {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}
