package repository

import (
	"context"
	"errors"
	"fmt"

	"hospital-medicine-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("record not found")

// HospitalRepository persists hospitals together with the medicine each one
// owns. Ownership is handled here explicitly: associations are never saved
// implicitly, every write that touches both tables runs in one transaction,
// and deletes only ever travel from hospital to medicine.
type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves every hospital with its medicine in store order
func (r *HospitalRepository) GetAllHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.WithContext(ctx).Preload("Medicine").Find(&hospitals).Error
	return hospitals, err
}

// GetHospitalByID retrieves a hospital and its medicine by ID
func (r *HospitalRepository) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Preload("Medicine").First(&hospital, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// CreateHospital inserts the medicine, then the hospital referencing it,
// then points the medicine back at its new owner.
func (r *HospitalRepository) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		medicine := &hospital.Medicine
		medicine.ID = 0
		medicine.HospitalID = nil
		if err := tx.Create(medicine).Error; err != nil {
			return fmt.Errorf("insert medicine: %w", err)
		}

		hospital.MedicineID = medicine.ID
		if err := tx.Omit(clause.Associations).Create(hospital).Error; err != nil {
			return fmt.Errorf("insert hospital: %w", err)
		}

		return linkOwner(tx, medicine, hospital.ID)
	})
}

// ReplaceHospital saves the hospital's fields and swaps its medicine for
// hospital.Medicine, which must be unsaved. The previous medicine row is
// deleted. A hospital deleted in the meantime yields ErrNotFound and
// nothing is written.
func (r *HospitalRepository) ReplaceHospital(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldMedicineID := hospital.MedicineID

		ownerID := hospital.ID
		medicine := &hospital.Medicine
		medicine.ID = 0
		medicine.HospitalID = &ownerID
		if err := tx.Create(medicine).Error; err != nil {
			return fmt.Errorf("insert medicine: %w", err)
		}

		// medicine_id always changes, so an existing row always counts as affected
		hospital.MedicineID = medicine.ID
		res := tx.Model(hospital).Select("*").Omit(clause.Associations).Updates(hospital)
		if res.Error != nil {
			return fmt.Errorf("update hospital: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if oldMedicineID != 0 {
			if err := tx.Delete(&models.Medicine{}, oldMedicineID).Error; err != nil {
				return fmt.Errorf("delete replaced medicine: %w", err)
			}
		}
		return nil
	})
}

// DeleteHospital removes the hospital and then the medicine it owns
func (r *HospitalRepository) DeleteHospital(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Hospital{}, hospital.ID)
		if res.Error != nil {
			return fmt.Errorf("delete hospital: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if hospital.MedicineID != 0 {
			if err := tx.Delete(&models.Medicine{}, hospital.MedicineID).Error; err != nil {
				return fmt.Errorf("delete medicine: %w", err)
			}
		}
		return nil
	})
}

func linkOwner(tx *gorm.DB, medicine *models.Medicine, hospitalID uint) error {
	if err := tx.Model(medicine).Update("hospital_id", hospitalID).Error; err != nil {
		return fmt.Errorf("link medicine owner: %w", err)
	}
	medicine.HospitalID = &hospitalID
	return nil
}
