package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	txcontext "insurecar/pkg/platform/tx"
)

type CoverageStore struct {
	db *sql.DB
}

func NewCoverageStore(db *sql.DB) *CoverageStore {
	return &CoverageStore{db: db}
}

const coverageColumns = `id, name, description, base_premium, active, created_at, updated_at`

func (s *CoverageStore) Save(ctx context.Context, c *models.Coverage) error {
	query := `
		INSERT INTO coverages (` + coverageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			base_premium = EXCLUDED.base_premium,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		c.ID.String(), c.Name, c.Description, c.BasePremium, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	return translate(err, "save coverage")
}

func (s *CoverageStore) FindByID(ctx context.Context, coverageID id.CoverageID) (*models.Coverage, error) {
	query := `SELECT ` + coverageColumns + ` FROM coverages WHERE id = $1`
	c, err := scanCoverage(txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, coverageID.String()))
	if err != nil {
		return nil, translate(err, "find coverage")
	}
	return c, nil
}

// List returns coverages ordered by name.
func (s *CoverageStore) List(ctx context.Context) ([]*models.Coverage, error) {
	query := `SELECT ` + coverageColumns + ` FROM coverages ORDER BY name`
	rows, err := txcontext.QuerierFrom(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err, "list coverages")
	}
	defer rows.Close()

	out := []*models.Coverage{}
	for rows.Next() {
		c, err := scanCoverage(rows)
		if err != nil {
			return nil, translate(err, "scan coverage")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list coverages")
	}
	return out, nil
}

func scanCoverage(row rowScanner) (*models.Coverage, error) {
	var (
		c   models.Coverage
		cid uuid.UUID
	)
	if err := row.Scan(&cid, &c.Name, &c.Description, &c.BasePremium, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = id.CoverageID(cid)
	return &c, nil
}
