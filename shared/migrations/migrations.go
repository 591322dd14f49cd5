// Package migrations runs the embedded goose migrations of a service.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// Dir is the directory inside each service's embedded filesystem
const Dir = "migrations"

// Commands accepted by Run
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// goose keeps its base filesystem and dialect in package state
var mu sync.Mutex

// Run executes command against db using the migrations in fsys
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, command string) error {
	switch command {
	case CommandUp, CommandDown, CommandStatus, CommandVersion:
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, Dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, Dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, Dir)
	case CommandVersion:
		err = goose.VersionContext(ctx, db, Dir)
	}

	return errors.Wrapf(err, "failed to run migrations %s", command)
}

// Up applies every pending migration
func Up(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	return Run(ctx, db, fsys, CommandUp)
}

// NewCommand builds the migrate subcommand of a service binary. open
// returns the database to migrate and a func that releases it.
func NewCommand(fsys fs.FS, open func() (*sql.DB, func(), error)) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Apply or inspect the service schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{CommandUp, CommandDown, CommandStatus, CommandVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := CommandUp
			if len(args) == 1 {
				command = args[0]
			}

			db, release, err := open()
			if err != nil {
				return err
			}
			defer release()

			return Run(cmd.Context(), db, fsys, command)
		},
	}
}
