package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// nopConnector backs a *sql.DB that never talks to a server. Combined with
// gorm's DryRun mode it lets tests inspect the SQL a repository builds.
type nopConnector struct{}

func (nopConnector) Connect(context.Context) (driver.Conn, error) { return nopConn{}, nil }
func (nopConnector) Driver() driver.Driver                        { return nopDriver{} }

type nopDriver struct{}

func (nopDriver) Open(string) (driver.Conn, error) { return nopConn{}, nil }

type nopConn struct{}

func (nopConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (nopConn) Close() error                        { return nil }
func (nopConn) Begin() (driver.Tx, error)           { return nopTx{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sql.OpenDB(nopConnector{}),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestSlotTakenWithTx_LocksSlotRange(t *testing.T) {
	db := dryRunDB(t)

	var built string
	err := db.Callback().Query().After("gorm:query").Register("capture_sql", func(d *gorm.DB) {
		built = d.Statement.SQL.String()
	})
	require.NoError(t, err)

	repo := NewAppointmentRepo(db, nil)
	taken, err := repo.SlotTakenWithTx(context.Background(), db, "2030-06-03", "09:00")
	require.NoError(t, err)
	assert.False(t, taken)

	// Two concurrent bookers must not both read "free" for one slot: the
	// check has to lock the slot's index range, not take a snapshot count.
	assert.Contains(t, built, "FOR UPDATE")
	assert.Contains(t, built, "date = ? AND time = ? AND status <> ?")
}
