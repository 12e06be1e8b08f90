package models

import (
	"errors"
	"testing"
	"time"
)

func testCatalog() map[string]*Medicine {
	return map[string]*Medicine{
		"MD-000001": {ID: "MD-000001", Name: "Amoxicillin", Price: 12.50, RequiresPrescription: true, Status: MedicineStatusAvailable},
		"MD-000002": {ID: "MD-000002", Name: "Paracetamol", Price: 3.00, RequiresPrescription: false, Status: MedicineStatusAvailable},
		"MD-000003": {ID: "MD-000003", Name: "Insulin", Price: 45.00, RequiresPrescription: true, Status: MedicineStatusUnavailable},
	}
}

func TestCheckOrderAdmissionAllowsWithinBalance(t *testing.T) {
	items := []OrderItemRequest{
		{MedicineID: "MD-000001", Quantity: 3},
		{MedicineID: "MD-000002", Quantity: 10},
	}
	available := map[string]int{"MD-000001": 5}

	if err := CheckOrderAdmission(items, testCatalog(), available); err != nil {
		t.Errorf("expected admission, got %v", err)
	}
}

func TestCheckOrderAdmissionRejectsBeyondBalance(t *testing.T) {
	items := []OrderItemRequest{{MedicineID: "MD-000001", Quantity: 6}}
	available := map[string]int{"MD-000001": 5}

	err := CheckOrderAdmission(items, testCatalog(), available)

	var insufficient *InsufficientPrescriptionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientPrescriptionError, got %v", err)
	}
	if insufficient.Available != 5 || insufficient.Requested != 6 {
		t.Errorf("expected available 5 requested 6, got %d/%d", insufficient.Available, insufficient.Requested)
	}
	if insufficient.MedicineName != "Amoxicillin" {
		t.Errorf("expected medicine name in error, got %q", insufficient.MedicineName)
	}
}

// Duplicate lines for one gated medicine draw on a single balance, not each
// on the full balance.
func TestCheckOrderAdmissionSumsDuplicateLines(t *testing.T) {
	available := map[string]int{"MD-000001": 6}

	items := []OrderItemRequest{
		{MedicineID: "MD-000001", Quantity: 4},
		{MedicineID: "MD-000001", Quantity: 4},
	}
	err := CheckOrderAdmission(items, testCatalog(), available)

	var insufficient *InsufficientPrescriptionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected 4+4 against balance 6 to be rejected, got %v", err)
	}
	if insufficient.Requested != 8 || insufficient.Available != 6 {
		t.Errorf("expected requested 8 against available 6, got %d/%d", insufficient.Requested, insufficient.Available)
	}

	items = []OrderItemRequest{
		{MedicineID: "MD-000001", Quantity: 4},
		{MedicineID: "MD-000001", Quantity: 2},
	}
	if err := CheckOrderAdmission(items, testCatalog(), available); err != nil {
		t.Errorf("expected 4+2 against balance 6 to be admitted, got %v", err)
	}
}

func TestCheckOrderAdmissionUngatedMedicineNeedsNoBalance(t *testing.T) {
	items := []OrderItemRequest{{MedicineID: "MD-000002", Quantity: 100}}

	if err := CheckOrderAdmission(items, testCatalog(), map[string]int{}); err != nil {
		t.Errorf("expected admission for ungated medicine, got %v", err)
	}
}

func TestCheckOrderAdmissionUnavailableMedicine(t *testing.T) {
	items := []OrderItemRequest{{MedicineID: "MD-000003", Quantity: 1}}
	available := map[string]int{"MD-000003": 10}

	err := CheckOrderAdmission(items, testCatalog(), available)

	var unavailable *MedicineUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected MedicineUnavailableError, got %v", err)
	}
	if unavailable.MedicineID != "MD-000003" {
		t.Errorf("expected MD-000003, got %s", unavailable.MedicineID)
	}
}

// Prescription sufficiency is checked for every item before availability, so
// a request that fails both reports the prescription shortfall.
func TestCheckOrderAdmissionPrescriptionCheckedBeforeAvailability(t *testing.T) {
	items := []OrderItemRequest{
		{MedicineID: "MD-000003", Quantity: 1}, // unavailable, but covered
		{MedicineID: "MD-000001", Quantity: 9}, // available, but not covered
	}
	available := map[string]int{"MD-000003": 5, "MD-000001": 2}

	err := CheckOrderAdmission(items, testCatalog(), available)

	var insufficient *InsufficientPrescriptionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientPrescriptionError to win, got %v", err)
	}
	if insufficient.MedicineID != "MD-000001" {
		t.Errorf("expected MD-000001 in error, got %s", insufficient.MedicineID)
	}
}

// An unavailable medicine on a later line rejects the whole order. The
// admission check runs before the order or its payment record are created,
// so a rejection here means nothing is written.
func TestCheckOrderAdmissionLaterUnavailableItemRejectsWholeOrder(t *testing.T) {
	items := []OrderItemRequest{
		{MedicineID: "MD-000002", Quantity: 2}, // ungated, available
		{MedicineID: "MD-000003", Quantity: 1}, // covered, but unavailable
	}
	available := map[string]int{"MD-000003": 5}

	err := CheckOrderAdmission(items, testCatalog(), available)

	var unavailable *MedicineUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected MedicineUnavailableError, got %v", err)
	}
	if unavailable.MedicineID != "MD-000003" {
		t.Errorf("expected MD-000003 in rejection, got %s", unavailable.MedicineID)
	}
}

func TestCheckOrderAdmissionUnknownMedicine(t *testing.T) {
	items := []OrderItemRequest{{MedicineID: "MD-999999", Quantity: 1}}

	err := CheckOrderAdmission(items, testCatalog(), map[string]int{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// End to end over the pure pieces: a 10-unit prescription with 4 units
// already ordered admits a request for 6 but rejects one for 7.
func TestAdmissionAgainstDerivedBalance(t *testing.T) {
	now := time.Now()
	p := newTestPrescription("RX-000001", now.Add(-24*time.Hour), now.Add(24*time.Hour),
		PrescriptionItem{MedicineID: "MD-000001", Quantity: 10},
	)
	priorOrders := []Order{
		{
			Status:    OrderStatusCompleted,
			CreatedAt: now.Add(-time.Hour),
			Items:     []OrderItem{{MedicineID: "MD-000001", Quantity: 4}},
		},
	}
	available := AccumulateRemaining([]*PrescriptionBalance{p.Balance(priorOrders, now)})

	if err := CheckOrderAdmission([]OrderItemRequest{{MedicineID: "MD-000001", Quantity: 6}}, testCatalog(), available); err != nil {
		t.Errorf("expected order of 6 to be admitted, got %v", err)
	}

	err := CheckOrderAdmission([]OrderItemRequest{{MedicineID: "MD-000001", Quantity: 7}}, testCatalog(), available)
	var insufficient *InsufficientPrescriptionError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected order of 7 to be rejected, got %v", err)
	}
	if insufficient.Available != 6 {
		t.Errorf("expected available 6 in rejection, got %d", insufficient.Available)
	}
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItemRequest{
		{MedicineID: "MD-000001", Quantity: 2},
		{MedicineID: "MD-000002", Quantity: 3},
	}

	total := OrderTotal(items, testCatalog())
	if total != 34.00 {
		t.Errorf("expected total 34.00, got %.2f", total)
	}
}
