package opts

import (
	"github.com/haussearch/maintctl/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Logger     *log.Logger
	UserLogger *log.UserLogger
}
