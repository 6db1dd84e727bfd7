package employee

import (
	"context"
	"errors"
	"sync"
)

// Cache is a read-through wrapper around a store, keyed by employee number.
// Every write path invalidates and the next read re-fetches; local state is
// never treated as authoritative after a mutation.
type Cache struct {
	inner StoreAPI

	mu      sync.RWMutex
	records map[string]*Record
}

func NewCache(inner StoreAPI) *Cache {
	return &Cache{inner: inner, records: make(map[string]*Record)}
}

func (c *Cache) GetByNumber(ctx context.Context, employeeNumber string) (*Record, error) {
	c.mu.RLock()
	cached, ok := c.records[employeeNumber]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rec, err := c.inner.GetByNumber(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.records[employeeNumber] = rec
	c.mu.Unlock()
	return rec, nil
}

// List is not cached; roster listings always hit the store.
func (c *Cache) List(ctx context.Context) ([]Record, error) {
	if l, ok := c.inner.(interface {
		List(ctx context.Context) ([]Record, error)
	}); ok {
		return l.List(ctx)
	}
	return nil, errors.New("roster listing unsupported by underlying store")
}

func (c *Cache) Invalidate(employeeNumber string) {
	c.mu.Lock()
	delete(c.records, employeeNumber)
	c.mu.Unlock()
}

func (c *Cache) Save(ctx context.Context, rec *Record) error {
	err := c.inner.Save(ctx, rec)
	c.Invalidate(rec.EmployeeNumber)
	return err
}

func (c *Cache) UpdateAddress(ctx context.Context, employeeNumber string, update AddressUpdate) error {
	err := c.inner.UpdateAddress(ctx, employeeNumber, update)
	c.Invalidate(employeeNumber)
	return err
}

func (c *Cache) UpdateName(ctx context.Context, employeeNumber string, update NameUpdate) error {
	err := c.inner.UpdateName(ctx, employeeNumber, update)
	c.Invalidate(employeeNumber)
	return err
}

func (c *Cache) UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error {
	err := c.inner.UpdateMyNumber(ctx, employeeNumber, myNumber)
	c.Invalidate(employeeNumber)
	return err
}

func (c *Cache) StampResignation(ctx context.Context, employeeNumber string, stamp ResignationStamp) error {
	err := c.inner.StampResignation(ctx, employeeNumber, stamp)
	c.Invalidate(employeeNumber)
	return err
}

func (c *Cache) ListDependents(ctx context.Context, employeeNumber string) ([]Dependent, error) {
	return c.inner.ListDependents(ctx, employeeNumber)
}

func (c *Cache) AddDependent(ctx context.Context, employeeNumber string, dep Dependent) (string, error) {
	id, err := c.inner.AddDependent(ctx, employeeNumber, dep)
	c.Invalidate(employeeNumber)
	return id, err
}

func (c *Cache) RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error {
	err := c.inner.RemoveDependentByID(ctx, employeeNumber, dependentID)
	c.Invalidate(employeeNumber)
	return err
}

func (c *Cache) RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error {
	err := c.inner.RemoveDependentByMatch(ctx, employeeNumber, name, relationship)
	c.Invalidate(employeeNumber)
	return err
}
