package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driven/config/file"
)

// syncBuffer collects command output written from the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDictWatchCommand_NoDictionaryConfigured(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	prev := configStore
	configStore = store
	t.Cleanup(func() { configStore = prev })

	_, err = runCommand(t, "dict", "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dictionary.path")
}

func TestDictWatchCommand_ReportsReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.csv")
	require.NoError(t, os.WriteFile(path, []byte(`id,key,short_key
CR.1.cp,CR.PT.L1._T,cr-1
`), 0600))

	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"dict", "watch", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// cobra only propagates the context from ExecuteContext to a subcommand
	// whose cached context is nil; an earlier test that executed "dict watch"
	// leaves a stale context behind, so set ours on the subcommand directly.
	dictWatchCmd.SetContext(ctx)
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	// Give the watcher a moment to register before touching the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`id,key,short_key
CR.1.cp,CR.PT.L1._T,cr-1
ROFST.1.cp,ROFST.PT.L1._T,rofst-1
`), 0600))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Dictionary reloaded: 2 indicator(s)")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
