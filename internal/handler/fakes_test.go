package handler_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/allergy-tracker/internal/model"
	"github.com/iliyamo/allergy-tracker/internal/repository"
)

// fakeUserStore is an in-memory credential store with the same error
// contract as repository.UserRepo.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) delete(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeExposureTypeStore is an in-memory exposure-type catalog.
type fakeExposureTypeStore struct {
	mu    sync.Mutex
	types []model.ExposureType
}

func (f *fakeExposureTypeStore) List(context.Context) ([]model.ExposureType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ExposureType{}, f.types...), nil
}

func (f *fakeExposureTypeStore) GetByID(_ context.Context, id uuid.UUID) (model.ExposureType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, et := range f.types {
		if et.ID == id {
			return et, nil
		}
	}
	return model.ExposureType{}, repository.ErrNotFound
}

func (f *fakeExposureTypeStore) GetByValue(_ context.Context, value string) (model.ExposureType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, et := range f.types {
		if et.Value == value {
			return et, nil
		}
	}
	return model.ExposureType{}, repository.ErrNotFound
}

func (f *fakeExposureTypeStore) Create(_ context.Context, et *model.ExposureType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.types {
		if existing.Value == et.Value {
			return repository.ErrValueExists
		}
	}
	f.types = append(f.types, *et)
	return nil
}

// fakeEntryStore keeps entries and their exposure links in memory,
// resolving link ids back to values through the catalog the way the SQL
// joins do.
type fakeEntryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]model.Entry
	links   map[uuid.UUID][]uuid.UUID
	catalog *fakeExposureTypeStore
}

func newFakeEntryStore(catalog *fakeExposureTypeStore) *fakeEntryStore {
	return &fakeEntryStore{
		entries: map[uuid.UUID]model.Entry{},
		links:   map[uuid.UUID][]uuid.UUID{},
		catalog: catalog,
	}
}

func (f *fakeEntryStore) valuesFor(ids []uuid.UUID) []string {
	values := []string{}
	for _, id := range ids {
		if et, err := f.catalog.GetByID(context.Background(), id); err == nil {
			values = append(values, et.Value)
		}
	}
	return values
}

func (f *fakeEntryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Entry{}
	for id, e := range f.entries {
		if e.UserID == userID {
			e.Exposures = f.valuesFor(f.links[id])
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) GetByIDAndUser(_ context.Context, id, userID uuid.UUID) (model.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return model.Entry{}, repository.ErrNotFound
	}
	e.Exposures = f.valuesFor(f.links[id])
	return e, nil
}

func (f *fakeEntryStore) Create(_ context.Context, e *model.Entry, exposureIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[e.ID] = *e
	f.links[e.ID] = exposureIDs
	return nil
}

func (f *fakeEntryStore) Update(_ context.Context, e *model.Entry, exposureIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.entries[e.ID]
	if !ok || existing.UserID != e.UserID {
		return repository.ErrNotFound
	}
	f.entries[e.ID] = *e
	f.links[e.ID] = exposureIDs
	return nil
}

func (f *fakeEntryStore) DeleteByIDAndUser(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.entries, id)
	delete(f.links, id)
	return nil
}
