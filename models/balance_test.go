package models

import (
	"testing"
	"time"
)

func newTestPrescription(id string, created, expiry time.Time, items ...PrescriptionItem) *Prescription {
	return &Prescription{
		ID:            id,
		AppointmentID: 1,
		CreatedAt:     created,
		ExpiryDate:    expiry,
		Items:         items,
	}
}

func TestBalanceNoOrders(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now.Add(24*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 10},
		PrescriptionItem{MedicineID: "MD-000002", Quantity: 5},
	)

	balance := p.Balance(nil, now)

	if balance.Summary.TotalPrescribed != 15 {
		t.Errorf("expected total prescribed 15, got %d", balance.Summary.TotalPrescribed)
	}
	if balance.Summary.RemainingTotal != 15 {
		t.Errorf("expected remaining total 15, got %d", balance.Summary.RemainingTotal)
	}
	if balance.Summary.IsFullyUsed {
		t.Error("fresh prescription must not read as fully used")
	}
	if balance.Summary.IsExpired {
		t.Error("fresh prescription must not read as expired")
	}
}

func TestBalanceExpiredReadsAsFullyConsumed(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-48*time.Hour), now.Add(-time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 10},
	)

	// No order was ever placed; the remaining allowance is gone regardless.
	balance := p.Balance(nil, now)

	if !balance.Summary.IsExpired {
		t.Error("expected expired summary")
	}
	if !balance.Summary.IsFullyUsed {
		t.Error("expired prescription must read as fully used")
	}
	if balance.Summary.RemainingTotal != 0 {
		t.Errorf("expected remaining total 0, got %d", balance.Summary.RemainingTotal)
	}
	if balance.Summary.TotalOrdered != 0 {
		t.Errorf("expected ordered total 0, got %d", balance.Summary.TotalOrdered)
	}
	for _, mb := range balance.Medicines {
		if !mb.IsUsedUp {
			t.Errorf("medicine %s must read as used up on an expired prescription", mb.MedicineID)
		}
	}
}

// The expiry instant itself is still valid: expiry is strictly after.
func TestBalanceValidAtExactExpiryInstant(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now,
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 5},
	)

	if p.IsExpired(now) {
		t.Fatal("prescription must not read as expired at the exact expiry instant")
	}

	balance := p.Balance(nil, now)
	if balance.Summary.IsExpired {
		t.Error("balance must not read as expired at the exact expiry instant")
	}
	if balance.Summary.RemainingTotal != 5 {
		t.Errorf("expected remaining total 5, got %d", balance.Summary.RemainingTotal)
	}
}

func TestBalanceSubtractsQualifyingOrders(t *testing.T) {
	now := time.Now()
	created := now.Add(-72 * time.Hour)
	expiry := now.Add(72 * time.Hour)
	p := newTestPrescription("RX-000001", created, expiry,
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 10},
	)

	orders := []Order{
		{
			ID:        "PO-000001",
			Status:    OrderStatusPending,
			CreatedAt: now.Add(-24 * time.Hour),
			Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 4}},
		},
		{
			ID:        "PO-000002",
			Status:    OrderStatusCompleted,
			CreatedAt: now.Add(-12 * time.Hour),
			Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 3}},
		},
	}

	balance := p.Balance(orders, now)

	if balance.Medicines[0].OrderedQuantity != 7 {
		t.Errorf("expected ordered 7, got %d", balance.Medicines[0].OrderedQuantity)
	}
	if balance.Medicines[0].RemainingQuantity != 3 {
		t.Errorf("expected remaining 3, got %d", balance.Medicines[0].RemainingQuantity)
	}
}

func TestBalanceIgnoresOrdersOutsideWindowAndCancelled(t *testing.T) {
	now := time.Now()
	created := now.Add(-48 * time.Hour)
	expiry := now.Add(48 * time.Hour)
	p := newTestPrescription("RX-000001", created, expiry,
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 10},
	)

	tests := []struct {
		name  string
		order Order
	}{
		{
			name: "before prescription creation",
			order: Order{
				Status:    OrderStatusCompleted,
				CreatedAt: created.Add(-time.Hour),
				Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 5}},
			},
		},
		{
			name: "after prescription expiry",
			order: Order{
				Status:    OrderStatusCompleted,
				CreatedAt: expiry.Add(time.Hour),
				Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 5}},
			},
		},
		{
			name: "cancelled",
			order: Order{
				Status:    OrderStatusCancelled,
				CreatedAt: now.Add(-time.Hour),
				Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := p.Balance([]Order{tt.order}, now)
			if balance.Medicines[0].OrderedQuantity != 0 {
				t.Errorf("order must not count against the balance, got ordered %d", balance.Medicines[0].OrderedQuantity)
			}
			if balance.Medicines[0].RemainingQuantity != 10 {
				t.Errorf("expected remaining 10, got %d", balance.Medicines[0].RemainingQuantity)
			}
		})
	}
}

func TestBalanceClampsAtZero(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now.Add(24*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 5},
	)

	// Historical orders oversubscribe the prescription.
	orders := []Order{
		{
			Status:    OrderStatusCompleted,
			CreatedAt: now.Add(-2 * time.Hour),
			Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 8}},
		},
	}

	balance := p.Balance(orders, now)

	if balance.Medicines[0].RemainingQuantity != 0 {
		t.Errorf("expected remaining clamped at 0, got %d", balance.Medicines[0].RemainingQuantity)
	}
	if !balance.Medicines[0].IsUsedUp {
		t.Error("oversubscribed medicine must read as used up")
	}
	if balance.Summary.RemainingTotal != 0 {
		t.Errorf("expected remaining total 0, got %d", balance.Summary.RemainingTotal)
	}
}

func TestBalanceIgnoresUnprescribedMedicinesInOrders(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now.Add(24*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 5},
	)

	orders := []Order{
		{
			Status:    OrderStatusCompleted,
			CreatedAt: now.Add(-time.Hour),
			Items: []OrderItem{
				{MedicineID: "MD-000001", Quantity: 2},
				{MedicineID: "MD-000009", Quantity: 4},
			},
		},
	}

	balance := p.Balance(orders, now)

	if len(balance.Medicines) != 1 {
		t.Fatalf("expected 1 medicine line, got %d", len(balance.Medicines))
	}
	if balance.Medicines[0].RemainingQuantity != 3 {
		t.Errorf("expected remaining 3, got %d", balance.Medicines[0].RemainingQuantity)
	}
}

func TestAccumulateRemainingIsAdditive(t *testing.T) {
	now := time.Now()
	p1 := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now.Add(24*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 4},
	)
	p2 := newTestPrescription("RX-000002", now.Add(-12*time.Hour), now.Add(48*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 6},
		PrescriptionItem{MedicineID: "MD-000002", Quantity: 2},
	)

	available := AccumulateRemaining([]*PrescriptionBalance{
		p1.Balance(nil, now),
		p2.Balance(nil, now),
	})

	if available["MD-000001"] != 10 {
		t.Errorf("expected accumulated 10 for MD-000001, got %d", available["MD-000001"])
	}
	if available["MD-000002"] != 2 {
		t.Errorf("expected accumulated 2 for MD-000002, got %d", available["MD-000002"])
	}
}
