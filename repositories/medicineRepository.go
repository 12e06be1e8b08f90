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
	MedicineCacheExpiry = 7 * 24 * time.Hour
)

type MedicineRepository struct {
	cache *cache.Cache
}

func NewMedicineRepository(cache *cache.Cache) *MedicineRepository {
	return &MedicineRepository{cache: cache}
}

func validMedicineStatus(status string) bool {
	return status == models.MedicineStatusAvailable || status == models.MedicineStatusUnavailable
}

func (r *MedicineRepository) Create(ctx context.Context, medicine *models.Medicine) error {
	lockKey := fmt.Sprintf("medicine_lock:%s", medicine.Name)
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

	// Validate the Status field
	if !validMedicineStatus(medicine.Status) {
		return errors.New("invalid status value")
	}

	// Check if a medicine with the same name already exists
	var existing models.Medicine
	if err := database.DB.Where("name = ?", medicine.Name).First(&existing).Error; err == nil {
		return errors.New("medicine with the same name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing medicine: %w", err)
	}

	// Obtain the next sequence value outside the transaction
	var nextID string
	if err := database.DB.Raw("SELECT 'MD-' || LPAD(nextval('medicine_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
		return fmt.Errorf("failed to obtain next sequence value: %w", err)
	}

	// Set the obtained ID to the medicine
	medicine.ID = nextID

	return database.DB.Transaction(func(tx *gorm.DB) error {
		// Create the medicine record
		if err := tx.Create(medicine).Error; err != nil {
			// If the creation fails, rollback the sequence
			if rollbackErr := database.DB.Exec("SELECT setval('medicine_id_seq', (SELECT last_value FROM medicine_id_seq) - 1, false)").Error; rollbackErr != nil {
				return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to create medicine: %w", err)
		}

		if err := r.cache.Delete(ctx, r.getMedicineCacheKey(medicine.ID)); err != nil {
			return fmt.Errorf("failed to delete medicine cache: %w", err)
		}
		return r.cache.DeleteAll(ctx, "medicines_cache")
	})
}

func (r *MedicineRepository) GetByID(ctx context.Context, id string) (*models.Medicine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getMedicineCacheKey(id)
	cachedMedicine, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var medicine models.Medicine
		if err := json.Unmarshal([]byte(cachedMedicine), &medicine); err == nil {
			return &medicine, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get medicine from cache: %v", err)
	}

	var medicine models.Medicine
	err = database.DB.Select("id, name, price, requires_prescription, status, stock, created_at").
		First(&medicine, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}

	medicineJSON, err := json.Marshal(medicine)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medicine: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, medicineJSON, MedicineCacheExpiry); err != nil {
		log.Printf("Failed to set medicine in cache: %v", err)
	}

	return &medicine, nil
}

func (r *MedicineRepository) GetAll(ctx context.Context) ([]models.Medicine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "medicines_cache"
	cachedMedicines, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var medicines []models.Medicine
		if err := json.Unmarshal([]byte(cachedMedicines), &medicines); err == nil {
			return medicines, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get medicines from cache: %v", err)
	}

	var medicines []models.Medicine
	err = database.DB.Select("id, name, price, requires_prescription, status, stock, created_at").
		Order("name ASC").
		Find(&medicines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all medicines: %w", err)
	}

	medicinesJSON, err := json.Marshal(medicines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medicines: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, medicinesJSON, MedicineCacheExpiry); err != nil {
		log.Printf("Failed to set medicines in cache: %v", err)
	}

	return medicines, nil
}

func (r *MedicineRepository) Update(ctx context.Context, medicine *models.Medicine) error {
	lockKey := fmt.Sprintf("medicine_lock:%s", medicine.ID)
	lockValue := uuid.New().String() // Generate a unique lock value
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// Validate the Status field
	if !validMedicineStatus(medicine.Status) {
		return errors.New("invalid status value")
	}

	if err := database.DB.Save(medicine).Error; err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getMedicineCacheKey(medicine.ID)); err != nil {
		return fmt.Errorf("failed to delete medicine cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "medicines_cache")
}

func (r *MedicineRepository) Delete(ctx context.Context, id string) error {
	if err := database.DB.Delete(&models.Medicine{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getMedicineCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete medicine cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "medicines_cache")
}

func (r *MedicineRepository) getMedicineCacheKey(id string) string {
	return fmt.Sprintf("medicine_cache:%s", id)
}
