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
	OrderCacheExpiry = 7 * 24 * time.Hour
)

type OrderRepository struct {
	cache *cache.Cache
}

func NewOrderRepository(cache *cache.Cache) *OrderRepository {
	return &OrderRepository{cache: cache}
}

// Create admits and persists a pharmacy order for a patient.
//
// The admission check and the insert run inside one database transaction, so
// a failed check never leaves a partial order or payment record behind. The
// transaction alone cannot stop two concurrent checkouts from reading the
// same remaining prescription balance, so the whole admission is serialized
// per patient with a Redis lock.
func (r *OrderRepository) Create(ctx context.Context, patientID string, items []models.OrderItemRequest) (*models.Order, error) {
	lockKey := fmt.Sprintf("pharmacy_lock:%s", patientID)
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
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// Obtain the next sequence values outside the transaction
	var orderID string
	if err := database.DB.Raw("SELECT 'PO-' || LPAD(nextval('order_id_seq')::TEXT, 6, '0')").Scan(&orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to obtain next order sequence value: %w", err)
	}
	var transactionID string
	if err := database.DB.Raw("SELECT 'TX-' || LPAD(nextval('transaction_id_seq')::TEXT, 6, '0')").Scan(&transactionID).Error; err != nil {
		return nil, fmt.Errorf("failed to obtain next transaction sequence value: %w", err)
	}

	order := &models.Order{
		ID:        orderID,
		PatientID: patientID,
		Status:    models.OrderStatusPending,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Resolve every requested medicine
		medicineIDs := make([]string, 0, len(items))
		for _, item := range items {
			medicineIDs = append(medicineIDs, item.MedicineID)
		}
		var medicineRows []models.Medicine
		if err := tx.Where("id IN ?", medicineIDs).Find(&medicineRows).Error; err != nil {
			return fmt.Errorf("failed to resolve medicines: %w", err)
		}
		medicines := make(map[string]*models.Medicine, len(medicineRows))
		for i := range medicineRows {
			medicines[medicineRows[i].ID] = &medicineRows[i]
		}
		gated := make([]string, 0, len(items))
		for _, item := range items {
			medicine, ok := medicines[item.MedicineID]
			if !ok {
				return models.ErrNotFound
			}
			if medicine.RequiresPrescription {
				gated = append(gated, medicine.ID)
			}
		}

		// Accumulate remaining balance across every valid prescription that
		// mentions a gated medicine. Balances are derived fresh inside the
		// transaction; there is no stored running total.
		available := map[string]int{}
		if len(gated) > 0 {
			prescriptions, err := validPrescriptionsForMedicines(tx, patientID, gated, now)
			if err != nil {
				return err
			}
			balances := make([]*models.PrescriptionBalance, 0, len(prescriptions))
			for i := range prescriptions {
				orders, err := ordersInWindow(tx, patientID, prescriptions[i].CreatedAt, prescriptions[i].ExpiryDate)
				if err != nil {
					return err
				}
				balances = append(balances, prescriptions[i].Balance(orders, now))
			}
			available = models.AccumulateRemaining(balances)
		}

		if err := models.CheckOrderAdmission(items, medicines, available); err != nil {
			return err
		}

		order.TotalPrice = models.OrderTotal(items, medicines)
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				OrderID:    orderID,
				MedicineID: item.MedicineID,
				Quantity:   item.Quantity,
				UnitPrice:  medicines[item.MedicineID].Price,
			})
		}

		// Book the order together with its payment record
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		transaction := &models.Transaction{
			ID:        transactionID,
			OrderID:   orderID,
			PatientID: patientID,
			Type:      models.TransactionTypeOrder,
			Amount:    order.TotalPrice,
			Status:    models.TransactionStatusUnpaid,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is durably persisted at this point; a failed invalidation
	// must not fail the request.
	if err := r.cache.DeleteAll(ctx, r.getOrdersCacheKey(patientID)); err != nil {
		log.Printf("Failed to delete orders cache: %v", err)
	}
	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, patientID, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getOrderCacheKey(patientID, id)
	cachedOrder, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var order models.Order
		if err := json.Unmarshal([]byte(cachedOrder), &order); err == nil && order.ID != "" {
			return &order, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get order from cache: %v", err)
	}

	var order models.Order
	err = database.DB.
		Preload("Items").
		First(&order, "id = ? AND patient_id = ?", id, patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, orderJSON, OrderCacheExpiry); err != nil {
		log.Printf("Failed to set order in cache: %v", err)
	}

	return &order, nil
}

func (r *OrderRepository) GetAllByPatient(ctx context.Context, patientID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var orders []models.Order
	err := database.DB.
		Preload("Items").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) getOrderCacheKey(patientID, id string) string {
	return fmt.Sprintf("order_cache:%s:%s", patientID, id)
}

func (r *OrderRepository) getOrdersCacheKey(patientID string) string {
	return fmt.Sprintf("order_cache:%s:*", patientID)
}
