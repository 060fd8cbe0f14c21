package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"insurecar/internal/policy/models"
	id "insurecar/pkg/domain"
	txcontext "insurecar/pkg/platform/tx"
)

type VehicleStore struct {
	db *sql.DB
}

func NewVehicleStore(db *sql.DB) *VehicleStore {
	return &VehicleStore{db: db}
}

func (s *VehicleStore) Save(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vin, make, model, year, license_plate, color, owner_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			vin = EXCLUDED.vin,
			make = EXCLUDED.make,
			model = EXCLUDED.model,
			year = EXCLUDED.year,
			license_plate = EXCLUDED.license_plate,
			color = EXCLUDED.color,
			owner_id = EXCLUDED.owner_id,
			updated_at = EXCLUDED.updated_at
	`
	_, err := txcontext.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		v.ID.String(), v.VIN, v.Make, v.Model, v.Year, v.LicensePlate, v.Color,
		nullUUID(uuid.UUID(v.OwnerID)), v.CreatedAt, v.UpdatedAt,
	)
	return translate(err, "save vehicle")
}

func (s *VehicleStore) FindByID(ctx context.Context, vehicleID id.VehicleID) (*models.Vehicle, error) {
	query := `
		SELECT id, vin, make, model, year, license_plate, color, owner_id, created_at, updated_at
		FROM vehicles WHERE id = $1
	`
	var (
		v     models.Vehicle
		vid   uuid.UUID
		owner uuid.NullUUID
	)
	err := txcontext.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, vehicleID.String()).Scan(
		&vid, &v.VIN, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Color, &owner,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, "find vehicle")
	}
	v.ID = id.VehicleID(vid)
	if owner.Valid {
		v.OwnerID = id.CustomerID(owner.UUID)
	}
	return &v, nil
}
