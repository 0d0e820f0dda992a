package migrate

import (
	"context"
	"io"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ReplacementResult contains the results of a text replacement pass
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// Replacer defines the interface for text replacement operations
type Replacer interface {
	// Replace applies a set of replacement rules to the content
	Replace(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}

// WordBoundaryReplacer implements Replacer with word-boundary-safe matching,
// so a rule for console.log never fires inside console.logger
type WordBoundaryReplacer struct {
	patterns map[string]*regexp.Regexp
}

// NewWordBoundaryReplacer creates a new WordBoundaryReplacer
func NewWordBoundaryReplacer() *WordBoundaryReplacer {
	return &WordBoundaryReplacer{
		patterns: make(map[string]*regexp.Regexp),
	}
}

// pattern returns the compiled word-bounded pattern for an identifier
func (r *WordBoundaryReplacer) pattern(from string) (*regexp.Regexp, error) {
	if re, ok := r.patterns[from]; ok {
		return re, nil
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(from) + `\b`)
	if err != nil {
		return nil, errors.Errorf("compiling pattern for %q: %w", from, err)
	}
	r.patterns[from] = re
	return re, nil
}

// Replace implements Replacer.Replace
func (r *WordBoundaryReplacer) Replace(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	// Apply each rule across the whole text
	currentContent := string(originalContent)
	for _, rule := range rules {
		// Skip empty rules
		if rule.From == "" {
			continue
		}

		re, err := r.pattern(rule.From)
		if err != nil {
			return nil, err
		}

		matches := re.FindAllStringIndex(currentContent, -1)
		if len(matches) == 0 {
			continue
		}

		currentContent = re.ReplaceAllLiteralString(currentContent, rule.To)
		result.WasModified = true
		result.ReplacementCount += len(matches)
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements Replacer.ValidateRules
func (r *WordBoundaryReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.From == "" {
			return errors.Errorf("rule %d: from is required", i)
		}
		if strings.TrimSpace(rule.To) == "" {
			return errors.Errorf("rule %d: to is required", i)
		}
		if _, err := r.pattern(rule.From); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
