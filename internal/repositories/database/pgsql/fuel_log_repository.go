package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portsrepo "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/repositories"
	"github.com/FleetScanHQ/fuel_tax_app/internal/models"
	"github.com/FleetScanHQ/fuel_tax_app/internal/utils/mapping"
)

type PgxFuelLogRepository struct {
	db *pgxpool.Pool
}

func newPgxFuelLogRepository(db *pgxpool.Pool) portsrepo.FuelLogRepositoryFacade {
	return &PgxFuelLogRepository{db: db}
}

// Ensure PgxFuelLogRepository implements portsrepo.FuelLogRepositoryFacade
var _ portsrepo.FuelLogRepositoryFacade = (*PgxFuelLogRepository)(nil)

const fuelLogColumns = `id, truck_id, seller_name, seller_address, seller_city, seller_state,
		fuel_type, gallons, price_per_gallon, total_price, receipt_date, image_url, extracted_json, created_at`

func scanFuelLog(row pgx.Row) (models.FuelLog, error) {
	var m models.FuelLog
	err := row.Scan(
		&m.ID,
		&m.TruckID,
		&m.SellerName,
		&m.SellerAddress,
		&m.SellerCity,
		&m.SellerState,
		&m.FuelType,
		&m.Gallons,
		&m.PricePerGallon,
		&m.TotalPrice,
		&m.ReceiptDate,
		&m.ImageURL,
		&m.ExtractedJSON,
		&m.CreatedAt,
	)
	return m, err
}

// SaveFuelLog inserts a new provisional row. The database assigns the
// identity and creation timestamp; the returned record carries both.
func (r *PgxFuelLogRepository) SaveFuelLog(ctx context.Context, log domain.FuelLog) (*domain.FuelLog, error) {
	modelLog, err := mapping.ToModelFuelLog(log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	query := `
        INSERT INTO fuel_logs (truck_id, seller_name, seller_address, seller_city, seller_state,
            fuel_type, gallons, price_per_gallon, total_price, receipt_date, image_url, extracted_json)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + fuelLogColumns + `;
    `
	saved, err := scanFuelLog(r.db.QueryRow(ctx, query,
		modelLog.TruckID,
		modelLog.SellerName,
		modelLog.SellerAddress,
		modelLog.SellerCity,
		modelLog.SellerState,
		modelLog.FuelType,
		modelLog.Gallons,
		modelLog.PricePerGallon,
		modelLog.TotalPrice,
		modelLog.ReceiptDate,
		modelLog.ImageURL,
		modelLog.ExtractedJSON,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert fuel log: %s", apperrors.ErrPersistence, err.Error())
	}

	domainLog := mapping.ToDomainFuelLog(saved)
	return &domainLog, nil
}

// UpdateFuelLogByID overwrites all extracted fields plus the audit
// snapshot on the row identified by id. The WHERE clause matches the
// primary key alone; selecting "latest row for this truck" instead
// would corrupt rows under concurrent or retried scans.
func (r *PgxFuelLogRepository) UpdateFuelLogByID(ctx context.Context, id string, data domain.ExtractedReceiptData) (*domain.FuelLog, error) {
	receiptDate, err := time.Parse("2006-01-02", data.ReceiptDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid receipt_date %q", apperrors.ErrValidation, data.ReceiptDate)
	}
	snapshot, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode extracted snapshot: %s", apperrors.ErrValidation, err.Error())
	}

	query := `
        UPDATE fuel_logs SET
            truck_id = $2,
            seller_name = $3,
            seller_address = $4,
            seller_city = $5,
            seller_state = $6,
            fuel_type = $7,
            gallons = $8,
            price_per_gallon = $9,
            total_price = $10,
            receipt_date = $11,
            extracted_json = $12
        WHERE id = $1
        RETURNING ` + fuelLogColumns + `;
    `
	updated, err := scanFuelLog(r.db.QueryRow(ctx, query,
		id,
		data.TruckID,
		data.SellerName,
		data.SellerAddress,
		data.SellerCity,
		data.SellerState,
		string(data.FuelType),
		data.Gallons,
		data.PricePerGallon,
		data.TotalPrice,
		receiptDate,
		snapshot,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to update fuel log %s: %s", apperrors.ErrPersistence, id, err.Error())
	}

	domainLog := mapping.ToDomainFuelLog(updated)
	return &domainLog, nil
}

// FindFuelLogByID retrieves a single row by primary identity.
func (r *PgxFuelLogRepository) FindFuelLogByID(ctx context.Context, id string) (*domain.FuelLog, error) {
	query := `SELECT ` + fuelLogColumns + ` FROM fuel_logs WHERE id = $1;`
	m, err := scanFuelLog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to find fuel log %s: %s", apperrors.ErrPersistence, id, err.Error())
	}
	domainLog := mapping.ToDomainFuelLog(m)
	return &domainLog, nil
}

// FindFuelLogsByDateRange returns rows with receipt_date in
// [start, end], inclusive on both bounds, ordered ascending.
func (r *PgxFuelLogRepository) FindFuelLogsByDateRange(ctx context.Context, start, end time.Time) ([]domain.FuelLog, error) {
	query := `
        SELECT ` + fuelLogColumns + `
        FROM fuel_logs
        WHERE receipt_date >= $1 AND receipt_date <= $2
        ORDER BY receipt_date ASC;
    `
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query fuel logs: %s", apperrors.ErrPersistence, err.Error())
	}
	defer rows.Close()

	var modelLogs []models.FuelLog
	for rows.Next() {
		m, err := scanFuelLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan fuel log row: %s", apperrors.ErrPersistence, err.Error())
		}
		modelLogs = append(modelLogs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read fuel log rows: %s", apperrors.ErrPersistence, err.Error())
	}

	return mapping.ToDomainFuelLogSlice(modelLogs), nil
}

// DeleteFuelLogByID permanently removes the row. No soft delete.
func (r *PgxFuelLogRepository) DeleteFuelLogByID(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM fuel_logs WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete fuel log %s: %s", apperrors.ErrPersistence, id, err.Error())
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountFuelLogs returns the total row count, used by the health surface.
func (r *PgxFuelLogRepository) CountFuelLogs(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM fuel_logs;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count fuel logs: %s", apperrors.ErrPersistence, err.Error())
	}
	return count, nil
}
