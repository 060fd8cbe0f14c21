package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	txcontext "insurecar/pkg/platform/tx"
)

type PaymentStore struct {
	db *sql.DB
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) Save(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (id, policy_id, amount, payment_date, method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			payment_date = EXCLUDED.payment_date,
			method = EXCLUDED.method,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		p.ID.String(), p.PolicyID.String(), p.Amount, nullTime(p.PaymentDate),
		p.Method.String(), p.Status.String(), p.CreatedAt, p.UpdatedAt,
	)
	return translate(err, "save payment")
}

// ListByPolicy returns payments in insertion order.
func (s *PaymentStore) ListByPolicy(ctx context.Context, policyID id.PolicyID) ([]*models.Payment, error) {
	query := `
		SELECT id, policy_id, amount, payment_date, method, status, created_at, updated_at
		FROM payments WHERE policy_id = $1 ORDER BY created_at, id
	`
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query, policyID.String())
	if err != nil {
		return nil, translate(err, "list payments")
	}
	defer rows.Close()

	out := []*models.Payment{}
	for rows.Next() {
		var (
			p              models.Payment
			paymentID, pid uuid.UUID
			paidAt         sql.NullTime
			method, status string
		)
		if err := rows.Scan(&paymentID, &pid, &p.Amount, &paidAt, &method, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, translate(err, "scan payment")
		}
		parsed, err := models.ParsePaymentStatus(status)
		if err != nil {
			return nil, err
		}
		p.ID = id.PaymentID(paymentID)
		p.PolicyID = id.PolicyID(pid)
		p.PaymentDate = timeOrZero(paidAt)
		p.Method = models.PaymentMethod(method)
		p.Status = parsed
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list payments")
	}
	return out, nil
}
