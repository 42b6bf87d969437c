package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/domain/repository"
)

// fakeTx solo implementa Commit/Rollback; el resto del pgx.Tx embebido queda nil.
type fakeTx struct {
	pgx.Tx
	commitErr error
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	beginErr   error
	commitErrs []error // por intento
	txs        []*fakeTx
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	if n := len(b.txs); n < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[n]
	}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func pgErr(code string) error { return &pgconn.PgError{Code: code} }

// failing devuelve errs[i] en el intento i y nil después.
func failing(errs ...error) (func(repository.MaterialRepository, repository.WarehouseEntryRepository) error, *int) {
	calls := 0
	return func(repository.MaterialRepository, repository.WarehouseEntryRepository) error {
		calls++
		if calls <= len(errs) {
			return errs[calls-1]
		}
		return nil
	}, &calls
}

func TestTxRunner_ReintentaDeadlockYSerializacion(t *testing.T) {
	b := &fakeBeginner{}
	r := &TxRunner{pool: b}
	fn, calls := failing(pgErr(codeSerializationFailure), pgErr(codeDeadlockDetected))

	require.NoError(t, r.Run(context.Background(), fn))
	assert.Equal(t, 3, *calls)
	require.Len(t, b.txs, 3)
	assert.Zero(t, b.txs[0].commits)
	assert.Zero(t, b.txs[1].commits)
	assert.Equal(t, 1, b.txs[2].commits)
	for _, tx := range b.txs {
		assert.Equal(t, 1, tx.rollbacks)
	}
}

func TestTxRunner_AgotaIntentos(t *testing.T) {
	b := &fakeBeginner{}
	r := &TxRunner{pool: b}
	fn, calls := failing(pgErr(codeDeadlockDetected), pgErr(codeDeadlockDetected), pgErr(codeDeadlockDetected), pgErr(codeDeadlockDetected))

	err := r.Run(context.Background(), fn)
	assert.Equal(t, codeDeadlockDetected, pgCode(err))
	assert.Equal(t, maxTxAttempts, *calls)
	assert.Len(t, b.txs, maxTxAttempts)
}

func TestTxRunner_ErrorNoReintentableSeDevuelve(t *testing.T) {
	b := &fakeBeginner{}
	r := &TxRunner{pool: b}
	boom := errors.New("materiales insuficientes")
	fn, calls := failing(boom)

	err := r.Run(context.Background(), fn)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, *calls)
	require.Len(t, b.txs, 1)
	assert.Zero(t, b.txs[0].commits)
	assert.Equal(t, 1, b.txs[0].rollbacks)
}

func TestTxRunner_ContextoCanceladoNoReintenta(t *testing.T) {
	b := &fakeBeginner{}
	r := &TxRunner{pool: b}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := r.Run(ctx, func(repository.MaterialRepository, repository.WarehouseEntryRepository) error {
		calls++
		cancel()
		return pgErr(codeSerializationFailure)
	})

	assert.Equal(t, codeSerializationFailure, pgCode(err))
	assert.Equal(t, 1, calls)
}

func TestTxRunner_CommitFallidoSeReintenta(t *testing.T) {
	b := &fakeBeginner{commitErrs: []error{pgErr(codeSerializationFailure)}}
	r := &TxRunner{pool: b}
	fn, calls := failing()

	require.NoError(t, r.Run(context.Background(), fn))
	assert.Equal(t, 2, *calls)
	require.Len(t, b.txs, 2)
	assert.Equal(t, 1, b.txs[1].commits)
}

func TestTxRunner_CommitFallidoNoReintentable(t *testing.T) {
	closed := errors.New("conn closed")
	b := &fakeBeginner{commitErrs: []error{closed}}
	r := &TxRunner{pool: b}
	fn, calls := failing()

	err := r.Run(context.Background(), fn)
	assert.ErrorIs(t, err, closed)
	assert.Contains(t, err.Error(), "commit transaction")
	assert.Equal(t, 1, *calls)
}

func TestTxRunner_BeginFallido(t *testing.T) {
	down := errors.New("pool cerrado")
	r := &TxRunner{pool: &fakeBeginner{beginErr: down}}
	fn, calls := failing()

	err := r.Run(context.Background(), fn)
	assert.ErrorIs(t, err, down)
	assert.Zero(t, *calls)
}

func TestTxRunner_ReposAtadosALaTransaccion(t *testing.T) {
	b := &fakeBeginner{}
	r := &TxRunner{pool: b}
	var gotMaterials, gotEntries Querier
	err := r.Run(context.Background(), func(m repository.MaterialRepository, e repository.WarehouseEntryRepository) error {
		gotMaterials = m.(*MaterialRepo).q
		gotEntries = e.(*WarehouseEntryRepo).q
		return nil
	})
	require.NoError(t, err)
	require.Len(t, b.txs, 1)
	assert.Same(t, b.txs[0], gotMaterials)
	assert.Same(t, b.txs[0], gotEntries)
}
