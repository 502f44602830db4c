package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// ListActiveDepartments returns active departments for the given unit set in
// one batched query, keyed by unit id.
func (s *PostgresStore) ListActiveDepartments(ctx context.Context, unitIDs []string) (map[string][]domain.Department, error) {
	byUnit := make(map[string][]domain.Department)
	if len(unitIDs) == 0 {
		return byUnit, nil
	}

	query := `
		SELECT bud.unit_id, d.department_id, d.department_name, d.icon
		FROM business_unit_departments bud
		INNER JOIN departments d ON d.department_id = bud.department_id
		WHERE bud.unit_id = ANY($1)
		  AND bud.is_active = TRUE
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(unitIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var unitID string
		var dept domain.Department
		var icon sql.NullString

		if err := rows.Scan(&unitID, &dept.ID, &dept.Name, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}

		if icon.Valid {
			dept.Icon = &icon.String
		}

		byUnit[unitID] = append(byUnit[unitID], dept)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return byUnit, nil
}

// ListActivePages returns active pages for the given department set in one
// batched query. The inner join to pages drops activation rows whose page
// definition is missing.
func (s *PostgresStore) ListActivePages(ctx context.Context, departmentIDs []string) ([]domain.DepartmentPage, error) {
	if len(departmentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT dp.department_id, p.page_id, p.page_name, p.page_path, dp.sort_order
		FROM department_pages dp
		INNER JOIN pages p ON p.page_id = dp.page_id
		WHERE dp.department_id = ANY($1)
		  AND dp.is_active = TRUE
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(departmentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query department pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.DepartmentPage
	for rows.Next() {
		var page domain.DepartmentPage

		if err := rows.Scan(
			&page.DepartmentID,
			&page.ID,
			&page.Name,
			&page.Path,
			&page.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department page: %w", err)
		}

		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department pages: %w", err)
	}

	return pages, nil
}
