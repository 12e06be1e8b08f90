package models

import (
	"time"
)

// Medicine availability statuses.
const (
	MedicineStatusAvailable   = "available"
	MedicineStatusUnavailable = "unavailable"
)

// Medicine is an entry in the offered medicine catalog. It is read-only on
// the order path; stock and status are mutated by the inventory endpoints.
type Medicine struct {
	ID                   string    `gorm:"primaryKey;column:id" json:"id"`
	Name                 string    `gorm:"column:name;not null;unique;index" json:"name"`
	Price                float64   `gorm:"column:price;not null" json:"price"`
	RequiresPrescription bool      `gorm:"column:requires_prescription;not null" json:"requires_prescription"`
	Status               string    `gorm:"column:status;check:status IN ('available', 'unavailable');not null" json:"status"`
	Stock                int       `gorm:"column:stock;not null" json:"stock"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Medicine) TableName() string {
	return "medicine"
}

// Prescription is a doctor-issued allowance of medicine quantities, tied to a
// confirmed appointment (at most one per appointment) and valid between its
// creation and expiry. Immutable once created.
type Prescription struct {
	ID            string             `gorm:"primaryKey;column:id" json:"id"`
	AppointmentID uint               `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	ExpiryDate    time.Time          `gorm:"column:expiry_date;not null;index" json:"expiry_date"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Items         []PrescriptionItem `gorm:"foreignKey:PrescriptionID;references:ID" json:"items"`
	Appointment   Appointment        `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// PrescriptionItem grants a quantity of a single medicine.
type PrescriptionItem struct {
	ID             uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PrescriptionID string   `gorm:"column:prescription_id;not null;index" json:"prescription_id"`
	MedicineID     string   `gorm:"column:medicine_id;not null;index" json:"medicine_id"`
	Quantity       int      `gorm:"column:quantity;not null" json:"quantity"`
	Medicine       Medicine `gorm:"foreignKey:MedicineID;references:ID" json:"-"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_item"
}

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a pharmacy order. Quantities are fixed at creation; no partial
// fulfillment is modeled.
type Order struct {
	ID         string      `gorm:"primaryKey;column:id" json:"id"`
	PatientID  string      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Status     string      `gorm:"column:status;check:status IN ('pending', 'completed', 'cancelled');not null" json:"status"`
	TotalPrice float64     `gorm:"column:total_price;not null" json:"total_price"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	Patient    Patient     `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Order) TableName() string {
	return "pharmacy_order"
}

// OrderItem is one medicine line of an order. UnitPrice is the catalog price
// at the time the order was admitted.
type OrderItem struct {
	ID         uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID    string   `gorm:"column:order_id;not null;index" json:"order_id"`
	MedicineID string   `gorm:"column:medicine_id;not null;index" json:"medicine_id"`
	Quantity   int      `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  float64  `gorm:"column:unit_price;not null" json:"unit_price"`
	Medicine   Medicine `gorm:"foreignKey:MedicineID;references:ID" json:"-"`
}

func (OrderItem) TableName() string {
	return "pharmacy_order_item"
}

// Transaction types and statuses.
const (
	TransactionTypeOrder = "Order"

	TransactionStatusUnpaid = "unpaid"
	TransactionStatusPaid   = "paid"
)

// Transaction is the payment record booked together with an order.
type Transaction struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	OrderID   string    `gorm:"column:order_id;not null;index" json:"order_id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Type      string    `gorm:"column:type;not null" json:"type"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Status    string    `gorm:"column:status;check:status IN ('unpaid', 'paid');not null" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID" json:"-"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Transaction) TableName() string {
	return "payment_transaction"
}

// OrderItemRequest is one requested medicine line of a new order.
type OrderItemRequest struct {
	MedicineID string `json:"medicine"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest is the request body for placing a pharmacy order.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// PrescriptionItemRequest is one granted medicine line of a new prescription.
type PrescriptionItemRequest struct {
	MedicineID string `json:"medicine"`
	Quantity   int    `json:"quantity"`
}

// CreatePrescriptionRequest is the request body for issuing a prescription.
type CreatePrescriptionRequest struct {
	AppointmentID uint                      `json:"appointment_id"`
	ExpiryDate    time.Time                 `json:"expiry_date"`
	Items         []PrescriptionItemRequest `json:"items"`
}
