//go:build integration

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurecar/internal/policy/models"
	"insurecar/internal/policy/store/postgres"
	id "insurecar/pkg/domain"
	"insurecar/pkg/platform/sentinel"
	"insurecar/pkg/testutil/containers"
)

func TestPolicyPostgresTx(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, pg.DB))

	customers := postgres.NewCustomerStore(pg.DB)
	tx := newPolicyPostgresTx(pg.DB, time.Second)

	t.Run("commit persists", func(t *testing.T) {
		customer := &models.Customer{ID: id.NewCustomerID(), FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"}
		err := tx.RunInTx(ctx, id.NewPolicyID(), func(ctx context.Context) error {
			return customers.Save(ctx, customer)
		})
		require.NoError(t, err)

		_, err = customers.FindByID(ctx, customer.ID)
		assert.NoError(t, err)
	})

	t.Run("error rolls back", func(t *testing.T) {
		customer := &models.Customer{ID: id.NewCustomerID(), FirstName: "Luis", LastName: "Diaz", Email: "luis@example.com"}
		boom := errors.New("boom")
		err := tx.RunInTx(ctx, id.NewPolicyID(), func(ctx context.Context) error {
			if err := customers.Save(ctx, customer); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = customers.FindByID(ctx, customer.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
