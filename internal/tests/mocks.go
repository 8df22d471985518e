package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository. Update
// compare-and-swaps on the stored version under the lock, so concurrent
// read-modify-write races behave like they do against the real store.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	GetError    error
	UpdateError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide seeds a ride into the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = cloneRide(ride)
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRide(m.rides[id])
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = cloneRide(ride)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRide(ride), nil
}

func (m *MockRideRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Ride, error) {
	return m.filter(func(r *domain.Ride) bool { return r.CustomerID == customerID })
}

func (m *MockRideRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	return m.filter(func(r *domain.Ride) bool { return r.DriverID != nil && *r.DriverID == driverID })
}

func (m *MockRideRepository) GetByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	return m.filter(func(r *domain.Ride) bool { return r.Status == status })
}

func (m *MockRideRepository) GetWithFeedback(ctx context.Context) ([]*domain.Ride, error) {
	return m.filter(func(r *domain.Ride) bool { return r.Rating != nil })
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rides[ride.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Version != ride.Version {
		return repository.ErrConflict
	}
	updated := cloneRide(ride)
	updated.Version++
	m.rides[ride.ID] = updated
	ride.Version++
	return nil
}

func (m *MockRideRepository) filter(keep func(*domain.Ride) bool) ([]*domain.Ride, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if keep(r) {
			result = append(result, cloneRide(r))
		}
	}
	return result, nil
}

// cloneRide deep-copies a ride so callers never alias stored state.
func cloneRide(r *domain.Ride) *domain.Ride {
	if r == nil {
		return nil
	}
	c := *r
	if r.DriverID != nil {
		v := *r.DriverID
		c.DriverID = &v
	}
	if r.Rating != nil {
		v := *r.Rating
		c.Rating = &v
	}
	if r.Feedback != nil {
		v := *r.Feedback
		c.Feedback = &v
	}
	return &c
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateCallCount int32

	CreateError error
	GetError    error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser seeds a user into the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK REVOCATION STORE
// ──────────────────────────────────────────────

// MockRevocationStore is an in-memory revocation store.
type MockRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time

	RevokeError error
}

// NewMockRevocationStore creates a new mock revocation store.
func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{
		revoked: make(map[string]time.Time),
	}
}

func (m *MockRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if m.RevokeError != nil {
		return m.RevokeError
	}
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expiry, ok := m.revoked[token]
	return ok && time.Now().Before(expiry), nil
}
