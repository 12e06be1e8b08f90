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
	TransactionCacheExpiry = 7 * 24 * time.Hour
)

type TransactionRepository struct {
	cache *cache.Cache
}

func NewTransactionRepository(cache *cache.Cache) *TransactionRepository {
	return &TransactionRepository{cache: cache}
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getTransactionCacheKey(id)
	cachedTransaction, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var transaction models.Transaction
		if err := json.Unmarshal([]byte(cachedTransaction), &transaction); err == nil && transaction.ID != "" {
			return &transaction, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get transaction from cache: %v", err)
	}

	var transaction models.Transaction
	err = database.DB.Select("id, order_id, patient_id, type, amount, status, created_at").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	transactionJSON, err := json.Marshal(transaction)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, transactionJSON, TransactionCacheExpiry); err != nil {
		log.Printf("Failed to set transaction in cache: %v", err)
	}

	return &transaction, nil
}

func (r *TransactionRepository) GetAllByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transactions []models.Transaction
	err := database.DB.Select("id, order_id, patient_id, type, amount, status, created_at").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// UpdateStatus settles or reopens a payment record (cash desk flow).
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if status != models.TransactionStatusUnpaid && status != models.TransactionStatusPaid {
		return fmt.Errorf("%w: invalid transaction status", models.ErrInvalidInput)
	}

	lockKey := fmt.Sprintf("transaction_lock:%s", id)
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

	result := database.DB.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.cache.Delete(ctx, r.getTransactionCacheKey(id))
}

func (r *TransactionRepository) getTransactionCacheKey(id string) string {
	return fmt.Sprintf("transaction_cache:%s", id)
}
