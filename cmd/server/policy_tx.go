package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
	txcontext "insurecar/pkg/platform/tx"
)

const defaultPolicyTxTimeout = 5 * time.Second

// policyPostgresTx runs each policy mutation in one database transaction. Stores
// join it through the context; the policy row is locked by FindByIDForUpdate.
type policyPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newPolicyPostgresTx(db *sql.DB, timeout time.Duration) *policyPostgresTx {
	return &policyPostgresTx{db: db, timeout: timeout}
}

func (t *policyPostgresTx) RunInTx(ctx context.Context, policyID id.PolicyID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultPolicyTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(fmt.Errorf("commit policy %s: %w", policyID, err), dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
