package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitbreaker/internal/backup"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/registry"
	"github.com/julianstephens/habitbreaker/internal/storage"
	"github.com/julianstephens/habitbreaker/internal/storage/sqlite"
	"github.com/julianstephens/habitbreaker/internal/tracker"
)

type Context struct {
	Store    storage.Provider
	Registry *registry.Registry
	Tracker  *tracker.Tracker
	Out      io.Writer
}

// NewContext wires the registry and tracker to store and prints to stdout.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:    store,
		Registry: registry.New(store),
		Tracker:  tracker.New(store),
		Out:      os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// IsSQLite reports whether the store is a local SQLite file, which is what
// backups operate on.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates a backup and logs instead of failing.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
