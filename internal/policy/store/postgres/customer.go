package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	txcontext "insurecar/pkg/platform/tx"
)

type CustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Save(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, date_of_birth,
			address, city, state, zip_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		c.ID.String(), c.FirstName, c.LastName, c.Email, c.Phone, nullTime(c.DateOfBirth),
		c.Address, c.City, c.State, c.ZipCode, c.CreatedAt, c.UpdatedAt,
	)
	return translate(err, "save customer")
}

func (s *CustomerStore) FindByID(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, date_of_birth,
			address, city, state, zip_code, created_at, updated_at
		FROM customers WHERE id = $1
	`
	row := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, customerID.String())
	c, err := scanCustomer(row)
	if err != nil {
		return nil, translate(err, "find customer")
	}
	return c, nil
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var (
		c   models.Customer
		cid uuid.UUID
		dob sql.NullTime
	)
	if err := row.Scan(&cid, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &dob,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = id.CustomerID(cid)
	c.DateOfBirth = timeOrZero(dob)
	return &c, nil
}
