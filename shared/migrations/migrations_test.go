package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_UnknownCommand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Run(context.Background(), db, fstest.MapFS{}, "sideways")
	assert.EqualError(t, err, `unknown migrate command "sideways"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewCommand_RejectsUnknownArgument(t *testing.T) {
	opened := false
	cmd := NewCommand(fstest.MapFS{}, func() (*sql.DB, func(), error) {
		opened = true
		return nil, func() {}, nil
	})
	cmd.SetArgs([]string{"sideways"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	assert.Error(t, err)
	assert.False(t, opened)
}

func TestNewCommand_OpenFailure(t *testing.T) {
	cmd := NewCommand(fstest.MapFS{}, func() (*sql.DB, func(), error) {
		return nil, nil, errors.New("connection refused")
	})
	cmd.SetArgs([]string{CommandStatus})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.EqualError(t, cmd.Execute(), "connection refused")
}
