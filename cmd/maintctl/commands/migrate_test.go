package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haussearch/maintctl/cmd/maintctl/opts"
	"github.com/haussearch/maintctl/pkg/log"
)

// 🧪 newTestOpts creates root options that log to a buffer
func newTestOpts(t *testing.T) (*opts.RootOpts, *bytes.Buffer) {
	t.Helper()
	var console bytes.Buffer
	zlog := zerolog.Nop()
	ctx := zlog.WithContext(context.Background())
	return &opts.RootOpts{
		Logger:     log.New(&console, zerolog.Disabled),
		UserLogger: log.NewUserLogger(ctx),
	}, &console
}

func TestMigrateCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(path, []byte("console.log('hi');\n"), 0644))

	o, console := newTestOpts(t)
	cmd := NewMigrateCmd(o)
	cmd.SetArgs([]string{path})
	cmd.SetOut(console)
	cmd.SetErr(console)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "import logger from '../lib/logger';\nlogger.info('hi');\n", string(got))
	assert.Contains(t, console.String(), "Migrated 1 files")
}

func TestMigrateCmd_RequiresFiles(t *testing.T) {
	o, console := newTestOpts(t)
	cmd := NewMigrateCmd(o)
	cmd.SetArgs([]string{})
	cmd.SetOut(console)
	cmd.SetErr(console)

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestMigrateCmd_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(path, []byte("console.log('hi');\n"), 0644))

	o, console := newTestOpts(t)
	cmd := NewMigrateCmd(o)
	cmd.SetArgs([]string{"--target", "mobile", path})
	cmd.SetOut(console)
	cmd.SetErr(console)

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestMigrateCmd_ClientTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "components"), 0755))
	path := filepath.Join(dir, "components", "SearchBar.tsx")
	require.NoError(t, os.WriteFile(path, []byte("console.warn('w');\n"), 0644))

	o, console := newTestOpts(t)
	cmd := NewMigrateCmd(o)
	cmd.SetArgs([]string{"--target", "client", path})
	cmd.SetOut(console)
	cmd.SetErr(console)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "import logger from '../lib/logger';\nlogger.warn('w');\n", string(got))
}

func TestMigrateCmd_ExcludeFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.ts")
	require.NoError(t, os.WriteFile(path, []byte("console.log('x');\n"), 0644))

	o, console := newTestOpts(t)
	cmd := NewMigrateCmd(o)
	cmd.SetArgs([]string{"--exclude", "**/keep.ts", path})
	cmd.SetOut(console)
	cmd.SetErr(console)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "console.log('x');\n", string(got))
	assert.Contains(t, console.String(), "Migrated 0 files")
}
