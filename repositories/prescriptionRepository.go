package repositories

import (
	"CarePoint/cache"
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PrescriptionCacheExpiry = 7 * 24 * time.Hour
)

type PrescriptionRepository struct {
	cache *cache.Cache
}

func NewPrescriptionRepository(cache *cache.Cache) *PrescriptionRepository {
	return &PrescriptionRepository{cache: cache}
}

// Create issues a prescription for a confirmed appointment of the given
// patient. At most one prescription may exist per appointment; the unique
// index on appointment_id backs the pre-check under concurrent requests.
func (r *PrescriptionRepository) Create(ctx context.Context, patientID string, prescription *models.Prescription) error {
	lockKey := fmt.Sprintf("prescription_lock:%d", prescription.AppointmentID)
	lockValue := uuid.New().String() // Generate a unique lock value
	// Retry logic for acquiring lock
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// The appointment must exist, belong to the patient, and be confirmed
	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", prescription.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to find appointment: %w", err)
	}
	if appointment.PatientID != patientID {
		return models.ErrNotFound
	}
	if appointment.Status != models.AppointmentStatusConfirmed {
		return fmt.Errorf("%w: prescriptions require a confirmed appointment", models.ErrInvalidInput)
	}

	// One prescription per appointment
	var count int64
	if err := database.DB.Model(&models.Prescription{}).Where("appointment_id = ?", prescription.AppointmentID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing prescription: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: appointment already has a prescription", models.ErrInvalidInput)
	}

	// Every prescribed medicine must exist
	medicineIDs := make([]string, 0, len(prescription.Items))
	for _, item := range prescription.Items {
		medicineIDs = append(medicineIDs, item.MedicineID)
	}
	var medicineCount int64
	if err := database.DB.Model(&models.Medicine{}).Where("id IN ?", medicineIDs).Count(&medicineCount).Error; err != nil {
		return fmt.Errorf("failed to resolve prescribed medicines: %w", err)
	}
	if medicineCount != int64(len(medicineIDs)) {
		return models.ErrNotFound
	}

	// Obtain the next sequence value outside the transaction
	var nextID string
	if err := database.DB.Raw("SELECT 'RX-' || LPAD(nextval('prescription_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next sequence value: %w", err)
	}

	// Set the obtained ID on the prescription and its items
	prescription.ID = nextID
	for i := range prescription.Items {
		prescription.Items[i].PrescriptionID = nextID
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// Create the prescription together with its items
		if err := tx.Create(prescription).Error; err != nil {
			// If the creation fails, rollback the sequence
			if rollbackErr := database.DB.Exec("SELECT setval('prescription_id_seq', (SELECT last_value FROM prescription_id_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create prescription: %w", err)
		}

		if err := r.cache.Delete(ctx, r.getPrescriptionCacheKey(prescription.ID)); err != nil {
			return fmt.Errorf("failed to delete prescription cache: %w", err)
		}
		return r.cache.DeleteAll(ctx, "prescriptions_cache")
	})
}

// GetOwned loads a prescription and verifies, through its appointment, that
// it belongs to the given patient. A prescription owned by another patient is
// reported as not-found, deliberately indistinguishable from absence.
func (r *PrescriptionRepository) GetOwned(ctx context.Context, id, patientID string) (*models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The cache key is scoped by patient, so a hit implies the ownership
	// check already passed when the entry was stored.
	cacheKey := r.getOwnedPrescriptionCacheKey(patientID, id)
	cachedPrescription, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var prescription models.Prescription
		if err := json.Unmarshal([]byte(cachedPrescription), &prescription); err == nil && prescription.ID != "" {
			return &prescription, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get prescription from cache: %v", err)
	}

	var prescription models.Prescription
	err = database.DB.
		Preload("Items").
		Preload("Appointment", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, patient_id, doctor_id, status")
		}).
		First(&prescription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	if prescription.Appointment.PatientID != patientID {
		return nil, models.ErrNotFound
	}

	// Prescriptions are immutable, so the document itself is safe to cache.
	// Balances never are.
	prescriptionJSON, err := json.Marshal(prescription)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prescription: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, prescriptionJSON, PrescriptionCacheExpiry); err != nil {
		log.Printf("Failed to set prescription in cache: %v", err)
	}

	return &prescription, nil
}

// GetAllByPatient lists the prescriptions issued to a patient, resolved
// through the owning appointments.
func (r *PrescriptionRepository) GetAllByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prescriptions []models.Prescription
	err := database.DB.
		Preload("Items").
		Joins("JOIN appointment ON appointment.id = prescription.appointment_id").
		Where("appointment.patient_id = ?", patientID).
		Order("prescription.created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prescriptions: %w", err)
	}
	return prescriptions, nil
}

// CalculateBalance computes the remaining allowance of a prescription for
// its owning patient. The result is derived fresh from the prescription and
// the qualifying orders on every call; it is never cached or persisted.
func (r *PrescriptionRepository) CalculateBalance(ctx context.Context, id, patientID string) (*models.PrescriptionBalance, error) {
	prescription, err := r.GetOwned(ctx, id, patientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if prescription.IsExpired(now) {
		// No order lookup needed; an expired prescription always reads as
		// fully consumed.
		return prescription.Balance(nil, now), nil
	}

	orders, err := ordersInWindow(database.DB, patientID, prescription.CreatedAt, prescription.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return prescription.Balance(orders, now), nil
}

// ordersInWindow loads the patient's non-cancelled orders created within
// [from, to]. Shared with the order-admission path, which runs it against the
// admission transaction.
func ordersInWindow(db *gorm.DB, patientID string, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Preload("Items").
		Where("patient_id = ? AND created_at >= ? AND created_at <= ? AND status <> ?",
			patientID, from, to, models.OrderStatusCancelled).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders in window: %w", err)
	}
	return orders, nil
}

// validPrescriptionsForMedicines loads every non-expired prescription of the
// patient that mentions at least one of the given medicines.
func validPrescriptionsForMedicines(db *gorm.DB, patientID string, medicineIDs []string, now time.Time) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := db.
		Preload("Items").
		Joins("JOIN appointment ON appointment.id = prescription.appointment_id").
		Where("appointment.patient_id = ?", patientID).
		Where("prescription.expiry_date >= ?", now).
		Where("prescription.id IN (SELECT prescription_id FROM prescription_item WHERE medicine_id IN ?)", medicineIDs).
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get valid prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) getPrescriptionCacheKey(id string) string {
	return fmt.Sprintf("prescription_cache:%s", id)
}

func (r *PrescriptionRepository) getOwnedPrescriptionCacheKey(patientID, id string) string {
	return fmt.Sprintf("prescription_cache:%s:%s", patientID, id)
}
