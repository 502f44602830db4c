package aggregate

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/fallback"
	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

// ClientLoader composes the aggregate client view. The query plan is
// bounded at five round trips regardless of fan-out: one account, one
// contact, one property list, one tank batch keyed by the property-id set,
// one type batch keyed by the distinct type-id set.
type ClientLoader struct {
	store  repository.ClientsStore
	logger *zap.Logger
}

// NewClientLoader creates a loader.
func NewClientLoader(store repository.ClientsStore, logger *zap.Logger) *ClientLoader {
	return &ClientLoader{store: store, logger: logger}
}

// Load builds the view for one account.
//
// The account itself is the one hard dependency: a missing account aborts
// the load (repository.ErrNotFound). The contact degrades to nil and the
// tank-type labels degrade to nil on fetch failure; zero properties and
// zero tanks are normal outcomes.
func (l *ClientLoader) Load(ctx context.Context, accountID string) (*models.ClientView, error) {
	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	// contact and properties have no dependency on each other
	var (
		wg         sync.WaitGroup
		contact    *domain.Contact
		properties []domain.Property
		propsErr   error
	)

	if account.ContactID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := l.store.GetContact(ctx, *account.ContactID)
			contact = fallback.Value(l.logger, "load account contact", loaded, err,
				nil, zap.String("account_id", accountID))
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		properties, propsErr = l.store.ListActiveProperties(ctx, accountID)
	}()

	wg.Wait()
	if propsErr != nil {
		return nil, fmt.Errorf("failed to load properties: %w", propsErr)
	}

	var tanks []domain.Tank
	if len(properties) > 0 {
		propertyIDs := make([]string, 0, len(properties))
		for _, property := range properties {
			propertyIDs = append(propertyIDs, property.ID)
		}

		tanks, err = l.store.ListActiveTanks(ctx, propertyIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load tanks: %w", err)
		}
	}

	typeNames := l.resolveTankTypes(ctx, tanks)

	tanksByProperty := make(map[string][]models.TankView)
	for _, tank := range tanks {
		view := models.TankView{Tank: tank}
		if tank.TankTypeID != nil {
			if name, ok := typeNames[*tank.TankTypeID]; ok {
				view.TypeName = &name
			}
		}
		tanksByProperty[tank.PropertyID] = append(tanksByProperty[tank.PropertyID], view)
	}

	propertyViews := make([]models.PropertyView, 0, len(properties))
	for _, property := range properties {
		propertyTanks := tanksByProperty[property.ID]
		if propertyTanks == nil {
			propertyTanks = []models.TankView{}
		}
		propertyViews = append(propertyViews, models.PropertyView{
			Property: property,
			Tanks:    propertyTanks,
		})
	}

	return &models.ClientView{
		Account:       *account,
		Contact:       contact,
		Properties:    propertyViews,
		PropertyCount: len(propertyViews),
		TankCount:     len(tanks),
	}, nil
}

// resolveTankTypes fetches the distinct referenced type ids in one call.
// On failure every affected tank keeps a nil type label.
func (l *ClientLoader) resolveTankTypes(ctx context.Context, tanks []domain.Tank) map[string]string {
	seen := make(map[string]bool)
	var typeIDs []string
	for _, tank := range tanks {
		if tank.TankTypeID != nil && !seen[*tank.TankTypeID] {
			seen[*tank.TankTypeID] = true
			typeIDs = append(typeIDs, *tank.TankTypeID)
		}
	}
	if len(typeIDs) == 0 {
		return nil
	}

	types, err := l.store.ListTankTypes(ctx, typeIDs)
	types = fallback.Value(l.logger, "load tank types", types, err,
		nil, zap.Int("type_count", len(typeIDs)))

	names := make(map[string]string, len(types))
	for _, tankType := range types {
		names[tankType.ID] = tankType.Name
	}
	return names
}
