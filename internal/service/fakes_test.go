package service

import (
	"context"
	"errors"
	"sync"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/internal/repository"
)

// Compile-time checks that the real repositories satisfy the service contracts
var (
	_ HospitalStore = (*repository.HospitalRepository)(nil)
	_ Auditor       = (*repository.AuditRepository)(nil)
	_ UserStore     = (*repository.UserRepository)(nil)
)

// memoryStore is an in-memory HospitalStore that keeps the same ownership
// rules as the gorm repository.
type memoryStore struct {
	mu         sync.Mutex
	hospitals  map[uint]models.Hospital
	medicines  map[uint]models.Medicine
	order      []uint
	nextID     uint
	writes     int
	failWrites error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		hospitals: map[uint]models.Hospital{},
		medicines: map[uint]models.Medicine{},
	}
}

func (s *memoryStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) GetAllHospitals(ctx context.Context) ([]models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Hospital{}
	for _, id := range s.order {
		h := s.hospitals[id]
		h.Medicine = s.medicines[h.MedicineID]
		out = append(out, h)
	}
	return out, nil
}

func (s *memoryStore) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hospitals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.Medicine = s.medicines[h.MedicineID]
	return &h, nil
}

func (s *memoryStore) CreateHospital(ctx context.Context, h *models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites != nil {
		return s.failWrites
	}
	s.writes++
	h.Medicine.ID = s.id()
	h.MedicineID = h.Medicine.ID
	h.ID = s.id()
	owner := h.ID
	h.Medicine.HospitalID = &owner
	s.medicines[h.Medicine.ID] = h.Medicine
	s.hospitals[h.ID] = *h
	s.order = append(s.order, h.ID)
	return nil
}

func (s *memoryStore) ReplaceHospital(ctx context.Context, h *models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites != nil {
		return s.failWrites
	}
	if _, ok := s.hospitals[h.ID]; !ok {
		return repository.ErrNotFound
	}
	s.writes++
	delete(s.medicines, h.MedicineID)
	h.Medicine.ID = s.id()
	h.MedicineID = h.Medicine.ID
	s.medicines[h.Medicine.ID] = h.Medicine
	s.hospitals[h.ID] = *h
	return nil
}

func (s *memoryStore) DeleteHospital(ctx context.Context, h *models.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites != nil {
		return s.failWrites
	}
	if _, ok := s.hospitals[h.ID]; !ok {
		return repository.ErrNotFound
	}
	s.writes++
	delete(s.hospitals, h.ID)
	delete(s.medicines, h.MedicineID)
	for i, id := range s.order {
		if id == h.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type auditEntry struct {
	actor, action, details string
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []auditEntry
	err     error
}

func (a *recordingAuditor) CreateAuditLog(ctx context.Context, actor, action, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, auditEntry{actor, action, details})
	return nil
}

// MockUserStore is a function-field UserStore
type MockUserStore struct {
	FindUserByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	CreateUserFunc         func(ctx context.Context, user *models.User) error
}

func (m *MockUserStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.FindUserByUsernameFunc != nil {
		return m.FindUserByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return errors.New("CreateUserFunc not implemented in mock")
}
