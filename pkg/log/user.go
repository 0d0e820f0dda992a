package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback for long-running operations
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 QueueResultType represents the outcome of a single requeue attempt
type QueueResultType int

const (
	QueueAccepted QueueResultType = iota
	QueueRejected
	QueueErrored
)

// 🖼️ QueueResult represents one requeue attempt for display
type QueueResult struct {
	Type       QueueResultType
	SearchTerm string
	Position   int // 1-based position in the run
	Total      int // total terms in the run
	StatusCode int // HTTP status, when the request completed
	Error      error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogQueueResult logs a single requeue attempt with appropriate formatting
func (u *UserLogger) LogQueueResult(res QueueResult) {
	progress := fmt.Sprintf("%d/%d", res.Position, res.Total)

	switch res.Type {
	case QueueAccepted:
		msg := fmt.Sprintf("%s Queued: %q", progress, res.SearchTerm)
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✓"}).Println(msg)
		u.log.Info().Str("search_term", res.SearchTerm).Msg(msg)
	case QueueRejected:
		msg := fmt.Sprintf("%s Failed: %q - HTTP %d", progress, res.SearchTerm, res.StatusCode)
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "✗"}).Println(msg)
		u.log.Warn().Str("search_term", res.SearchTerm).Int("status", res.StatusCode).Msg(msg)
	case QueueErrored:
		msg := fmt.Sprintf("%s Error: %q", progress, res.SearchTerm)
		pterm.Error.WithPrefix(pterm.Prefix{Text: "✗"}).Println(msg)
		if res.Error != nil {
			pterm.Error.Println(res.Error)
		}
		u.log.Error().Err(res.Error).Str("search_term", res.SearchTerm).Msg(msg)
	}
}

// 📊 LogRunStart logs the beginning of a requeue run
func (u *UserLogger) LogRunStart(terms int, delay string) {
	msg := fmt.Sprintf("Re-queueing %d unique failed search terms with %s delays", terms, delay)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Int("terms", terms).Msg(msg)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}
