package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// commitConflictDriver имитирует pq 40001 на каждом commit
type commitConflictDriver struct {
	begins atomic.Int64
}

func (d *commitConflictDriver) Open(name string) (driver.Conn, error) {
	return &commitConflictConn{d: d}, nil
}

type commitConflictConn struct {
	d *commitConflictDriver
}

func (c *commitConflictConn) Prepare(query string) (driver.Stmt, error) {
	return nil, driver.ErrSkip
}

func (c *commitConflictConn) Close() error { return nil }

func (c *commitConflictConn) Begin() (driver.Tx, error) {
	c.d.begins.Add(1)
	return &commitConflictTx{}, nil
}

func (c *commitConflictConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

type commitConflictTx struct{}

func (t *commitConflictTx) Commit() error {
	return &pq.Error{Code: "40001"}
}

func (t *commitConflictTx) Rollback() error { return nil }

// okDriver всегда успешно коммитит
type okDriver struct{}

func (d *okDriver) Open(name string) (driver.Conn, error) {
	return &okConn{}, nil
}

type okConn struct{}

func (c *okConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *okConn) Close() error                              { return nil }
func (c *okConn) Begin() (driver.Tx, error)                 { return &okTx{}, nil }

func (c *okConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

type okTx struct{}

func (t *okTx) Commit() error   { return nil }
func (t *okTx) Rollback() error { return nil }

func TestDoSerializable_CommitConflictMapsToSentinel(t *testing.T) {
	drv := &commitConflictDriver{}
	sql.Register("simpletxmanager-commit-conflict", drv)

	db, err := sql.Open("simpletxmanager-commit-conflict", "")
	require.NoError(t, err)
	defer db.Close()

	m := NewTransactionManager(db)

	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	// Тот же sentinel, что и у txmanager: обработчики отдают 409, а не 500
	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
	assert.Equal(t, int64(3), drv.begins.Load(), "conflict should be retried before giving up")
}

func TestDoSerializable_FnErrorNotRetried(t *testing.T) {
	sql.Register("simpletxmanager-ok", &okDriver{})

	db, err := sql.Open("simpletxmanager-ok", "")
	require.NoError(t, err)
	defer db.Close()

	m := NewTransactionManager(db)

	calls := 0
	wantErr := errors.New("validation failed")
	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_Success(t *testing.T) {
	sql.Register("simpletxmanager-ok-2", &okDriver{})

	db, err := sql.Open("simpletxmanager-ok-2", "")
	require.NoError(t, err)
	defer db.Close()

	m := NewTransactionManager(db)

	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}
