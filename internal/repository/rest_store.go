package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/config"
	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// RestStore implements Store against a PostgREST-style record API (the
// dialect the original console data source speaks). Filters use the
// `column=eq.value` / `column=in.(a,b)` query forms and related records are
// embedded through `select=`.
type RestStore struct {
	client *resty.Client
	logger *zap.Logger
}

// NewRestStore creates a REST-backed store.
func NewRestStore(cfg *config.RestStoreConfig, logger *zap.Logger) *RestStore {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey)
		client.SetAuthToken(cfg.APIKey)
	}

	return &RestStore{client: client, logger: logger}
}

func (s *RestStore) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)

	if err != nil {
		return fmt.Errorf("failed to call record store: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("record store error: status %d", resp.StatusCode())
	}
	return nil
}

func inFilter(ids []string) string {
	return "in.(" + strings.Join(ids, ",") + ")"
}

// --- Business units ---

type restBusinessUnit struct {
	UnitID       string  `json:"unit_id"`
	UnitName     string  `json:"unit_name"`
	UnitType     string  `json:"unit_type"`
	LogoURL      *string `json:"logo_url"`
	ParentUnitID *string `json:"parent_unit_id"`
}

func (r restBusinessUnit) toDomain() domain.BusinessUnit {
	return domain.BusinessUnit{
		ID:           r.UnitID,
		Name:         r.UnitName,
		UnitType:     r.UnitType,
		LogoURL:      r.LogoURL,
		ParentUnitID: r.ParentUnitID,
	}
}

func (s *RestStore) ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error) {
	var rows []restBusinessUnit
	err := s.get(ctx, "/business_units", map[string]string{
		"select": "unit_id,unit_name,unit_type,logo_url,parent_unit_id",
		"order":  "unit_name.asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	units := make([]domain.BusinessUnit, 0, len(rows))
	for _, row := range rows {
		units = append(units, row.toDomain())
	}
	return units, nil
}

func (s *RestStore) ListChildUnits(ctx context.Context, parentUnitID string) ([]domain.BusinessUnit, error) {
	var rows []restBusinessUnit
	err := s.get(ctx, "/business_units", map[string]string{
		"select":         "unit_id,unit_name,unit_type,logo_url,parent_unit_id",
		"parent_unit_id": "eq." + parentUnitID,
		"order":          "unit_name.asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	units := make([]domain.BusinessUnit, 0, len(rows))
	for _, row := range rows {
		units = append(units, row.toDomain())
	}
	return units, nil
}

// --- Hierarchy ---

type restDepartment struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Icon           *string `json:"icon"`
}

type restUnitDepartmentRow struct {
	UnitID     string          `json:"unit_id"`
	Department *restDepartment `json:"departments"`
}

func (s *RestStore) ListActiveDepartments(ctx context.Context, unitIDs []string) (map[string][]domain.Department, error) {
	byUnit := make(map[string][]domain.Department)
	if len(unitIDs) == 0 {
		return byUnit, nil
	}

	var rows []restUnitDepartmentRow
	err := s.get(ctx, "/business_unit_departments", map[string]string{
		"select":    "unit_id,departments(department_id,department_name,icon)",
		"unit_id":   inFilter(unitIDs),
		"is_active": "eq.true",
	}, &rows)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.Department == nil {
			// activation row pointing at a missing department definition
			continue
		}
		byUnit[row.UnitID] = append(byUnit[row.UnitID], domain.Department{
			ID:   row.Department.DepartmentID,
			Name: row.Department.DepartmentName,
			Icon: row.Department.Icon,
		})
	}
	return byUnit, nil
}

type restPage struct {
	PageID   string `json:"page_id"`
	PageName string `json:"page_name"`
	PagePath string `json:"page_path"`
}

type restDepartmentPageRow struct {
	DepartmentID string    `json:"department_id"`
	SortOrder    int       `json:"sort_order"`
	Page         *restPage `json:"pages"`
}

func (s *RestStore) ListActivePages(ctx context.Context, departmentIDs []string) ([]domain.DepartmentPage, error) {
	if len(departmentIDs) == 0 {
		return nil, nil
	}

	var rows []restDepartmentPageRow
	err := s.get(ctx, "/department_pages", map[string]string{
		"select":        "department_id,sort_order,pages(page_id,page_name,page_path)",
		"department_id": inFilter(departmentIDs),
		"is_active":     "eq.true",
	}, &rows)
	if err != nil {
		return nil, err
	}

	var pages []domain.DepartmentPage
	for _, row := range rows {
		if row.Page == nil {
			// activation row pointing at a missing page definition
			continue
		}
		pages = append(pages, domain.DepartmentPage{
			ID:           row.Page.PageID,
			DepartmentID: row.DepartmentID,
			Name:         row.Page.PageName,
			Path:         row.Page.PagePath,
			SortOrder:    row.SortOrder,
		})
	}
	return pages, nil
}

// --- Clients ---

type restAccount struct {
	AccountID       string  `json:"account_id"`
	AccountType     string  `json:"account_type"`
	BillingLine1    string  `json:"billing_line1"`
	BillingLine2    *string `json:"billing_line2"`
	BillingCity     string  `json:"billing_city"`
	BillingPostcode string  `json:"billing_postcode"`
	PaymentTerms    string  `json:"payment_terms"`
	CreditLimit     float64 `json:"credit_limit"`
	IsActive        bool    `json:"is_active"`
	ContactID       *string `json:"contact_id"`
}

func (s *RestStore) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	var rows []restAccount
	err := s.get(ctx, "/accounts", map[string]string{
		"select":     "account_id,account_type,billing_line1,billing_line2,billing_city,billing_postcode,payment_terms,credit_limit,is_active,contact_id",
		"account_id": "eq." + accountID,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}

	row := rows[0]
	return &domain.Account{
		ID:              row.AccountID,
		AccountType:     row.AccountType,
		BillingLine1:    row.BillingLine1,
		BillingLine2:    row.BillingLine2,
		BillingCity:     row.BillingCity,
		BillingPostcode: row.BillingPostcode,
		PaymentTerms:    row.PaymentTerms,
		CreditLimit:     row.CreditLimit,
		IsActive:        row.IsActive,
		ContactID:       row.ContactID,
	}, nil
}

type restContact struct {
	ContactID string  `json:"contact_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Mobile    *string `json:"mobile"`
}

func (s *RestStore) GetContact(ctx context.Context, contactID string) (*domain.Contact, error) {
	var rows []restContact
	err := s.get(ctx, "/contacts", map[string]string{
		"select":     "contact_id,first_name,last_name,email,phone,mobile",
		"contact_id": "eq." + contactID,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("contact %s: %w", contactID, ErrNotFound)
	}

	row := rows[0]
	return &domain.Contact{
		ID:        row.ContactID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Phone:     row.Phone,
		Mobile:    row.Mobile,
	}, nil
}

type restProperty struct {
	PropertyID   string  `json:"property_id"`
	AccountID    string  `json:"account_id"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	PropertyType string  `json:"property_type"`
	AccessNotes  *string `json:"access_notes"`
	IsActive     bool    `json:"is_active"`
}

func (s *RestStore) ListActiveProperties(ctx context.Context, accountID string) ([]domain.Property, error) {
	var rows []restProperty
	err := s.get(ctx, "/properties", map[string]string{
		"select":     "property_id,account_id,address_line1,address_line2,city,postcode,property_type,access_notes,is_active",
		"account_id": "eq." + accountID,
		"is_active":  "eq.true",
		"order":      "address_line1.asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	var properties []domain.Property
	for _, row := range rows {
		properties = append(properties, domain.Property{
			ID:           row.PropertyID,
			AccountID:    row.AccountID,
			AddressLine1: row.AddressLine1,
			AddressLine2: row.AddressLine2,
			City:         row.City,
			Postcode:     row.Postcode,
			PropertyType: row.PropertyType,
			AccessNotes:  row.AccessNotes,
			IsActive:     row.IsActive,
		})
	}
	return properties, nil
}

type restTank struct {
	TankID          string  `json:"tank_id"`
	PropertyID      string  `json:"property_id"`
	TankName        string  `json:"tank_name"`
	CapacityLitres  int     `json:"capacity_litres"`
	InstallDate     *string `json:"install_date"`
	LastServiceDate *string `json:"last_service_date"`
	NextServiceDate *string `json:"next_service_date"`
	TankTypeID      *string `json:"tank_type_id"`
}

func (s *RestStore) ListActiveTanks(ctx context.Context, propertyIDs []string) ([]domain.Tank, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	var rows []restTank
	err := s.get(ctx, "/tanks", map[string]string{
		"select":      "tank_id,property_id,tank_name,capacity_litres,install_date,last_service_date,next_service_date,tank_type_id",
		"property_id": inFilter(propertyIDs),
		"is_active":   "eq.true",
		"order":       "tank_name.asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	var tanks []domain.Tank
	for _, row := range rows {
		tanks = append(tanks, domain.Tank{
			ID:              row.TankID,
			PropertyID:      row.PropertyID,
			Name:            row.TankName,
			CapacityLitres:  row.CapacityLitres,
			InstallDate:     parseStoreDate(row.InstallDate),
			LastServiceDate: parseStoreDate(row.LastServiceDate),
			NextServiceDate: parseStoreDate(row.NextServiceDate),
			TankTypeID:      row.TankTypeID,
		})
	}
	return tanks, nil
}

type restTankType struct {
	TankTypeID string `json:"tank_type_id"`
	TypeName   string `json:"type_name"`
}

func (s *RestStore) ListTankTypes(ctx context.Context, typeIDs []string) ([]domain.TankType, error) {
	if len(typeIDs) == 0 {
		return nil, nil
	}

	var rows []restTankType
	err := s.get(ctx, "/tank_types", map[string]string{
		"select":       "tank_type_id,type_name",
		"tank_type_id": inFilter(typeIDs),
	}, &rows)
	if err != nil {
		return nil, err
	}

	var types []domain.TankType
	for _, row := range rows {
		types = append(types, domain.TankType{ID: row.TankTypeID, Name: row.TypeName})
	}
	return types, nil
}

// parseStoreDate accepts the date forms the store emits (date-only or full
// timestamp). Unparseable values degrade to nil.
func parseStoreDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t
		}
	}
	return nil
}
