package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// PostgresStore implements Store against PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore creates a postgres-backed store.
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// ListBusinessUnits returns all business units ordered by name.
func (s *PostgresStore) ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error) {
	query := `
		SELECT unit_id, unit_name, unit_type, logo_url, parent_unit_id
		FROM business_units
		ORDER BY unit_name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query business units: %w", err)
	}
	defer rows.Close()

	return scanBusinessUnits(rows)
}

// ListChildUnits returns the direct children of a unit, name ascending.
func (s *PostgresStore) ListChildUnits(ctx context.Context, parentUnitID string) ([]domain.BusinessUnit, error) {
	query := `
		SELECT unit_id, unit_name, unit_type, logo_url, parent_unit_id
		FROM business_units
		WHERE parent_unit_id = $1
		ORDER BY unit_name
	`

	rows, err := s.db.QueryContext(ctx, query, parentUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child units: %w", err)
	}
	defer rows.Close()

	return scanBusinessUnits(rows)
}

func scanBusinessUnits(rows *sql.Rows) ([]domain.BusinessUnit, error) {
	var units []domain.BusinessUnit
	for rows.Next() {
		var unit domain.BusinessUnit
		var logoURL, parentUnitID sql.NullString

		if err := rows.Scan(
			&unit.ID,
			&unit.Name,
			&unit.UnitType,
			&logoURL,
			&parentUnitID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business unit: %w", err)
		}

		if logoURL.Valid {
			unit.LogoURL = &logoURL.String
		}
		if parentUnitID.Valid {
			unit.ParentUnitID = &parentUnitID.String
		}

		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate business units: %w", err)
	}

	return units, nil
}
