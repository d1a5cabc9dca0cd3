package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
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

func TestDoSerializable_CommitConflictMapsToSentinel(t *testing.T) {
	drv := &commitConflictDriver{}
	sql.Register("txmanager-commit-conflict", drv)

	db, err := sql.Open("txmanager-commit-conflict", "")
	require.NoError(t, err)
	defer db.Close()

	m := NewTransactionManager(dbmetrics.Wrap(db, metrics.New("txmanager-test")))

	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, int64(3), drv.begins.Load(), "conflict should be retried before giving up")
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(context.Canceled))
}
