package employee

import (
	"context"
	"testing"
)

type fakeStore struct {
	gets    int
	record  *Record
	updates int
}

func (f *fakeStore) GetByNumber(ctx context.Context, employeeNumber string) (*Record, error) {
	f.gets++
	rec := *f.record
	return &rec, nil
}

func (f *fakeStore) Save(ctx context.Context, rec *Record) error { f.updates++; return nil }

func (f *fakeStore) UpdateAddress(ctx context.Context, employeeNumber string, update AddressUpdate) error {
	f.updates++
	f.record.Address = update.Address
	return nil
}

func (f *fakeStore) UpdateName(ctx context.Context, employeeNumber string, update NameUpdate) error {
	f.updates++
	return nil
}

func (f *fakeStore) UpdateMyNumber(ctx context.Context, employeeNumber, myNumber string) error {
	f.updates++
	return nil
}

func (f *fakeStore) StampResignation(ctx context.Context, employeeNumber string, stamp ResignationStamp) error {
	f.updates++
	return nil
}

func (f *fakeStore) ListDependents(ctx context.Context, employeeNumber string) ([]Dependent, error) {
	return nil, nil
}

func (f *fakeStore) AddDependent(ctx context.Context, employeeNumber string, dep Dependent) (string, error) {
	f.updates++
	return "dep-1", nil
}

func (f *fakeStore) RemoveDependentByID(ctx context.Context, employeeNumber, dependentID string) error {
	f.updates++
	return nil
}

func (f *fakeStore) RemoveDependentByMatch(ctx context.Context, employeeNumber, name, relationship string) error {
	f.updates++
	return nil
}

func TestCacheReadThrough(t *testing.T) {
	fake := &fakeStore{record: &Record{EmployeeNumber: "1001", Address: "Tokyo"}}
	cache := NewCache(fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cache.GetByNumber(ctx, "1001"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if fake.gets != 1 {
		t.Fatalf("expected one backing read, got %d", fake.gets)
	}
}

func TestCacheInvalidatesAfterWrite(t *testing.T) {
	fake := &fakeStore{record: &Record{EmployeeNumber: "1001", Address: "Tokyo"}}
	cache := NewCache(fake)
	ctx := context.Background()

	if _, err := cache.GetByNumber(ctx, "1001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.UpdateAddress(ctx, "1001", AddressUpdate{Address: "Osaka"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := cache.GetByNumber(ctx, "1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Address != "Osaka" {
		t.Fatalf("expected re-fetched record after invalidation, got %q", rec.Address)
	}
	if fake.gets != 2 {
		t.Fatalf("expected two backing reads, got %d", fake.gets)
	}
}
