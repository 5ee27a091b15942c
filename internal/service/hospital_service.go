package service

import (
	"context"
	"errors"
	"fmt"

	"hospital-medicine-api/internal/models"
	"hospital-medicine-api/internal/repository"
	"hospital-medicine-api/internal/transform"
	"hospital-medicine-api/pkg/dto"

	"github.com/rs/zerolog/log"
)

// ErrHospitalNotFound is the only expected failure of HospitalService.
var ErrHospitalNotFound = errors.New("hospital not found")

// HospitalStore is the persistence gateway used by HospitalService.
// *repository.HospitalRepository implements it.
type HospitalStore interface {
	GetAllHospitals(ctx context.Context) ([]models.Hospital, error)
	GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error)
	CreateHospital(ctx context.Context, hospital *models.Hospital) error
	ReplaceHospital(ctx context.Context, hospital *models.Hospital) error
	DeleteHospital(ctx context.Context, hospital *models.Hospital) error
}

// Auditor records who changed what. *repository.AuditRepository implements it.
type Auditor interface {
	CreateAuditLog(ctx context.Context, actor, action, details string) error
}

type HospitalService struct {
	store   HospitalStore
	auditor Auditor
	mapper  *transform.Mapper
}

func NewHospitalService(store HospitalStore, auditor Auditor, mapper *transform.Mapper) *HospitalService {
	return &HospitalService{
		store:   store,
		auditor: auditor,
		mapper:  mapper,
	}
}

// Create stores a new hospital together with its medicine
func (s *HospitalService) Create(ctx context.Context, req dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := s.mapper.ToDomain(req)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateHospital(ctx, &hospital); err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	s.audit(ctx, "hospital_create", fmt.Sprintf("Created hospital: %s (ID: %d, medicine ID: %d)", hospital.Name, hospital.ID, hospital.MedicineID))

	resp := s.mapper.ToResponse(hospital)
	return &resp, nil
}

// Read returns every hospital in store order
func (s *HospitalService) Read(ctx context.Context) ([]dto.HospitalResponse, error) {
	hospitals, err := s.store.GetAllHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hospitals: %w", err)
	}
	return s.mapper.ToResponses(hospitals), nil
}

func (s *HospitalService) ReadByID(ctx context.Context, id uint) (*dto.HospitalResponse, error) {
	hospital, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.mapper.ToResponse(*hospital)
	return &resp, nil
}

// UpdateByID overwrites every hospital field and replaces its medicine
// with a new record built from the request. Nothing is merged.
func (s *HospitalService) UpdateByID(ctx context.Context, id uint, req dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := *hospital

	if err := s.mapper.ApplyRequest(hospital, req); err != nil {
		return nil, err
	}

	if err := s.store.ReplaceHospital(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrHospitalNotFound, id)
		}
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}

	details := fmt.Sprintf("Updated hospital: %s (ID: %d, medicine %d replaced by %d)", hospital.Name, hospital.ID, previous.MedicineID, hospital.MedicineID)
	if !previous.Equivalent(*hospital) {
		details += fmt.Sprintf(", previously %s", previous.Name)
	}
	if previous.Medicine.Equivalent(hospital.Medicine) {
		details += ", medicine unchanged by name and expiration"
	}
	s.audit(ctx, "hospital_update", details)

	resp := s.mapper.ToResponse(*hospital)
	return &resp, nil
}

// DeleteByID removes the hospital and its medicine and returns what was deleted
func (s *HospitalService) DeleteByID(ctx context.Context, id uint) (*dto.HospitalResponse, error) {
	hospital, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteHospital(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrHospitalNotFound, id)
		}
		return nil, fmt.Errorf("failed to delete hospital: %w", err)
	}

	s.audit(ctx, "hospital_delete", fmt.Sprintf("Deleted hospital: %s (ID: %d, medicine ID: %d)", hospital.Name, hospital.ID, hospital.MedicineID))

	resp := s.mapper.ToResponse(*hospital)
	return &resp, nil
}

func (s *HospitalService) find(ctx context.Context, id uint) (*models.Hospital, error) {
	hospital, err := s.store.GetHospitalByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrHospitalNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch hospital %d: %w", id, err)
	}
	return hospital, nil
}

func (s *HospitalService) audit(ctx context.Context, action, details string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.CreateAuditLog(ctx, ActorFromContext(ctx), action, details); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}
