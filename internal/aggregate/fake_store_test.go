package aggregate_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

var errStoreDown = errors.New("store down")

// fakeClientsStore counts every call so tests can assert the query plan
// stays bounded.
type fakeClientsStore struct {
	mu    sync.Mutex
	calls map[string]int

	accounts  map[string]domain.Account
	contacts  map[string]domain.Contact
	props     map[string][]domain.Property
	tanks     []domain.Tank
	tankTypes map[string]domain.TankType

	contactErr error
	propsErr   error
	tanksErr   error
	typesErr   error
}

func newFakeClientsStore() *fakeClientsStore {
	return &fakeClientsStore{
		calls:     make(map[string]int),
		accounts:  make(map[string]domain.Account),
		contacts:  make(map[string]domain.Contact),
		props:     make(map[string][]domain.Property),
		tankTypes: make(map[string]domain.TankType),
	}
}

func (f *fakeClientsStore) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeClientsStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeClientsStore) GetAccount(_ context.Context, accountID string) (*domain.Account, error) {
	f.record("GetAccount")
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, repository.ErrNotFound)
	}
	return &account, nil
}

func (f *fakeClientsStore) GetContact(_ context.Context, contactID string) (*domain.Contact, error) {
	f.record("GetContact")
	if f.contactErr != nil {
		return nil, f.contactErr
	}
	contact, ok := f.contacts[contactID]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", contactID, repository.ErrNotFound)
	}
	return &contact, nil
}

func (f *fakeClientsStore) ListActiveProperties(_ context.Context, accountID string) ([]domain.Property, error) {
	f.record("ListActiveProperties")
	if f.propsErr != nil {
		return nil, f.propsErr
	}
	return f.props[accountID], nil
}

func (f *fakeClientsStore) ListActiveTanks(_ context.Context, propertyIDs []string) ([]domain.Tank, error) {
	f.record("ListActiveTanks")
	if f.tanksErr != nil {
		return nil, f.tanksErr
	}
	wanted := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = true
	}
	var out []domain.Tank
	for _, tank := range f.tanks {
		if wanted[tank.PropertyID] {
			out = append(out, tank)
		}
	}
	return out, nil
}

func (f *fakeClientsStore) ListTankTypes(_ context.Context, typeIDs []string) ([]domain.TankType, error) {
	f.record("ListTankTypes")
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	var out []domain.TankType
	for _, id := range typeIDs {
		if tankType, ok := f.tankTypes[id]; ok {
			out = append(out, tankType)
		}
	}
	return out, nil
}
