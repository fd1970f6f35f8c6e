package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) LinkCompany(_ context.Context, id, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.CompanyID = &companyID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

type fakeCompanyRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[string]*domain.Company)}
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	company.ID = "company-" + strconv.Itoa(f.nextID)
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	clone := *company
	f.byID[company.ID] = &clone
	return nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, company *domain.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[company.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *company
	f.byID[company.ID] = &clone
	return nil
}

func (f *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	company, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *company
	return &clone, nil
}

func (f *fakeCompanyRepo) GetByContactEmail(_ context.Context, email string) (*domain.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, company := range f.byID {
		if company.ContactEmail == email {
			clone := *company
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCompanyRepo) List(_ context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var companies []domain.Company
	for _, company := range f.byID {
		if filter.IsActive != nil && company.IsActive != *filter.IsActive {
			continue
		}
		companies = append(companies, *company)
	}
	return companies, nil
}

// newTestSessionStore backs the session store with miniredis.
func newTestSessionStore(t testingT, ttl time.Duration) (*auth.SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewSessionStore(client, ttl), mr
}

// testingT is the subset of *testing.T the helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}
