package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	txcontext "insurecar/pkg/platform/tx"
)

// PolicyStore persists policy rows. References and payments live in their own
// tables and are resolved by the caller.
type PolicyStore struct {
	db *sql.DB
}

func NewPolicyStore(db *sql.DB) *PolicyStore {
	return &PolicyStore{db: db}
}

const policyColumns = `id, policy_number, customer_id, vehicle_id, coverage_id, start_date, end_date,
	premium, status, created_at, updated_at`

// Save upserts the policy. A policy number held by another policy surfaces as
// sentinel.ErrConflict.
func (s *PolicyStore) Save(ctx context.Context, p *models.Policy) error {
	query := `
		INSERT INTO policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			policy_number = EXCLUDED.policy_number,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			premium = EXCLUDED.premium,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		p.ID.String(), p.Number.String(), p.CustomerID.String(), p.VehicleID.String(), p.CoverageID.String(),
		nullTime(p.StartDate), nullTime(p.EndDate), p.Premium, p.Status.String(), p.CreatedAt, p.UpdatedAt,
	)
	return translate(err, "save policy")
}

func (s *PolicyStore) FindByID(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	return s.findOne(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1`, policyID.String())
}

// FindByIDForUpdate locks the policy row until the surrounding transaction ends.
// Outside a transaction the lock is released immediately.
func (s *PolicyStore) FindByIDForUpdate(ctx context.Context, policyID id.PolicyID) (*models.Policy, error) {
	return s.findOne(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1 FOR UPDATE`, policyID.String())
}

func (s *PolicyStore) FindByNumber(ctx context.Context, number id.PolicyNumber) (*models.Policy, error) {
	return s.findOne(ctx, `SELECT `+policyColumns+` FROM policies WHERE policy_number = $1`, number.String())
}

func (s *PolicyStore) ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]*models.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE customer_id = $1 ORDER BY start_date, created_at`
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query, customerID.String())
	if err != nil {
		return nil, translate(err, "list policies")
	}
	defer rows.Close()

	out := []*models.Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, translate(err, "scan policy")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list policies")
	}
	return out, nil
}

func (s *PolicyStore) findOne(ctx context.Context, query string, arg any) (*models.Policy, error) {
	p, err := scanPolicy(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, translate(err, "find policy")
	}
	return p, nil
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	var (
		p                               models.Policy
		pid, customerID, vehicleID, cid uuid.UUID
		number, status                  string
		start, end                      sql.NullTime
	)
	if err := row.Scan(&pid, &number, &customerID, &vehicleID, &cid, &start, &end,
		&p.Premium, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := models.ParsePolicyStatus(status)
	if err != nil {
		return nil, err
	}
	p.ID = id.PolicyID(pid)
	p.Number = id.PolicyNumber(number)
	p.CustomerID = id.CustomerID(customerID)
	p.VehicleID = id.VehicleID(vehicleID)
	p.CoverageID = id.CoverageID(cid)
	p.StartDate = timeOrZero(start)
	p.EndDate = timeOrZero(end)
	p.Status = parsed
	return &p, nil
}
