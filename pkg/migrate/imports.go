package migrate

import "strings"

// Import insertion works on raw lines, never on a parsed syntax tree. The
// functions below are pure so placement rules stay directly unit-testable.

// shebangPrefix marks an interpreter-directive first line
const shebangPrefix = "#!"

// lastImportIndex returns the index of the last line that is an import
// declaration, excluding type-only imports, or -1 if there is none
func lastImportIndex(lines []string) int {
	last := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") && !strings.HasPrefix(trimmed, "import type") {
			last = i
		}
	}
	return last
}

// insertionIndex computes where a new import line belongs:
// immediately after the last import, else after a shebang first line
// (skipping one following blank line), else at the top of the file
func insertionIndex(lines []string, lastImport int) int {
	if lastImport >= 0 {
		return lastImport + 1
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], shebangPrefix) {
		if len(lines) > 1 && strings.TrimSpace(lines[1]) == "" {
			return 2
		}
		return 1
	}
	return 0
}

// insertLine returns lines with line inserted at idx, shifting every
// subsequent line down by one
func insertLine(lines []string, idx int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, line)
	return append(out, lines[idx:]...)
}
