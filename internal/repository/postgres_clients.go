package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// GetAccount returns a single account. Wraps ErrNotFound when the id does
// not exist.
func (s *PostgresStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, account_type, billing_line1, billing_line2,
		       billing_city, billing_postcode, payment_terms, credit_limit,
		       is_active, contact_id
		FROM accounts
		WHERE account_id = $1
	`

	var account domain.Account
	var billingLine2, contactID sql.NullString

	err := s.db.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.AccountType,
		&account.BillingLine1,
		&billingLine2,
		&account.BillingCity,
		&account.BillingPostcode,
		&account.PaymentTerms,
		&account.CreditLimit,
		&account.IsActive,
		&contactID,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	if billingLine2.Valid {
		account.BillingLine2 = &billingLine2.String
	}
	if contactID.Valid {
		account.ContactID = &contactID.String
	}

	return &account, nil
}

// GetContact returns a single contact. Wraps ErrNotFound when the id does
// not exist.
func (s *PostgresStore) GetContact(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `
		SELECT contact_id, first_name, last_name, email, phone, mobile
		FROM contacts
		WHERE contact_id = $1
	`

	var contact domain.Contact
	var email, phone, mobile sql.NullString

	err := s.db.QueryRowContext(ctx, query, contactID).Scan(
		&contact.ID,
		&contact.FirstName,
		&contact.LastName,
		&email,
		&phone,
		&mobile,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contact %s: %w", contactID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}

	if email.Valid {
		contact.Email = &email.String
	}
	if phone.Valid {
		contact.Phone = &phone.String
	}
	if mobile.Valid {
		contact.Mobile = &mobile.String
	}

	return &contact, nil
}

// ListActiveProperties returns the active properties of an account.
func (s *PostgresStore) ListActiveProperties(ctx context.Context, accountID string) ([]domain.Property, error) {
	query := `
		SELECT property_id, account_id, address_line1, address_line2,
		       city, postcode, property_type, access_notes, is_active
		FROM properties
		WHERE account_id = $1
		  AND is_active = TRUE
		ORDER BY address_line1
	`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var property domain.Property
		var addressLine2, accessNotes sql.NullString

		if err := rows.Scan(
			&property.ID,
			&property.AccountID,
			&property.AddressLine1,
			&addressLine2,
			&property.City,
			&property.Postcode,
			&property.PropertyType,
			&accessNotes,
			&property.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}

		if addressLine2.Valid {
			property.AddressLine2 = &addressLine2.String
		}
		if accessNotes.Valid {
			property.AccessNotes = &accessNotes.String
		}

		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

// ListActiveTanks returns active tanks across the given property set in one
// batched query.
func (s *PostgresStore) ListActiveTanks(ctx context.Context, propertyIDs []string) ([]domain.Tank, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT tank_id, property_id, tank_name, capacity_litres,
		       install_date, last_service_date, next_service_date, tank_type_id
		FROM tanks
		WHERE property_id = ANY($1)
		  AND is_active = TRUE
		ORDER BY tank_name
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(propertyIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query tanks: %w", err)
	}
	defer rows.Close()

	var tanks []domain.Tank
	for rows.Next() {
		var tank domain.Tank
		var installDate, lastService, nextService sql.NullTime
		var tankTypeID sql.NullString

		if err := rows.Scan(
			&tank.ID,
			&tank.PropertyID,
			&tank.Name,
			&tank.CapacityLitres,
			&installDate,
			&lastService,
			&nextService,
			&tankTypeID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tank: %w", err)
		}

		tank.InstallDate = nullTimePtr(installDate)
		tank.LastServiceDate = nullTimePtr(lastService)
		tank.NextServiceDate = nullTimePtr(nextService)
		if tankTypeID.Valid {
			tank.TankTypeID = &tankTypeID.String
		}

		tanks = append(tanks, tank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tanks: %w", err)
	}

	return tanks, nil
}

// ListTankTypes resolves tank type labels for the given id set in one
// batched query.
func (s *PostgresStore) ListTankTypes(ctx context.Context, typeIDs []string) ([]domain.TankType, error) {
	if len(typeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT tank_type_id, type_name
		FROM tank_types
		WHERE tank_type_id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(typeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query tank types: %w", err)
	}
	defer rows.Close()

	var types []domain.TankType
	for rows.Next() {
		var tankType domain.TankType
		if err := rows.Scan(&tankType.ID, &tankType.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tank type: %w", err)
		}
		types = append(types, tankType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tank types: %w", err)
	}

	return types, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
