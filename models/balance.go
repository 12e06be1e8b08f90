package models

import (
	"time"
)

// MedicineBalance is the per-medicine slice of a prescription balance.
type MedicineBalance struct {
	MedicineID         string `json:"medicine_id"`
	PrescribedQuantity int    `json:"prescribed_quantity"`
	OrderedQuantity    int    `json:"ordered_quantity"`
	RemainingQuantity  int    `json:"remaining_quantity"`
	IsUsedUp           bool   `json:"is_used_up"`
}

// BalanceSummary aggregates a prescription balance across its medicines.
type BalanceSummary struct {
	TotalPrescribed int  `json:"total_prescribed"`
	TotalOrdered    int  `json:"total_ordered"`
	RemainingTotal  int  `json:"remaining_total"`
	IsFullyUsed     bool `json:"is_fully_used"`
	IsExpired       bool `json:"is_expired"`
}

// PrescriptionBalance is the derived view of how much of a prescription is
// left. It is recomputed from the prescription and its qualifying orders on
// every read and is never persisted or cached.
type PrescriptionBalance struct {
	PrescriptionID string            `json:"prescription_id"`
	ExpiryDate     time.Time         `json:"expiry_date"`
	Medicines      []MedicineBalance `json:"medicines"`
	Summary        BalanceSummary    `json:"summary"`
}

// IsExpired reports whether the prescription's expiry date has passed.
func (p *Prescription) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// countsAgainst reports whether an order consumes balance of this
// prescription: it must fall inside the validity window and not be cancelled.
func (p *Prescription) countsAgainst(o *Order) bool {
	if o.Status == OrderStatusCancelled {
		return false
	}
	if o.CreatedAt.Before(p.CreatedAt) {
		return false
	}
	if o.CreatedAt.After(p.ExpiryDate) {
		return false
	}
	return true
}

// Balance computes the remaining allowance of the prescription against the
// given orders. An expired prescription reports every medicine as used up,
// regardless of order history: remaining allowance does not carry over past
// expiry.
func (p *Prescription) Balance(orders []Order, now time.Time) *PrescriptionBalance {
	balance := &PrescriptionBalance{
		PrescriptionID: p.ID,
		ExpiryDate:     p.ExpiryDate,
		Medicines:      make([]MedicineBalance, 0, len(p.Items)),
	}

	if p.IsExpired(now) {
		for _, item := range p.Items {
			balance.Medicines = append(balance.Medicines, MedicineBalance{
				MedicineID:         item.MedicineID,
				PrescribedQuantity: item.Quantity,
				IsUsedUp:           true,
			})
			balance.Summary.TotalPrescribed += item.Quantity
		}
		balance.Summary.IsExpired = true
		balance.Summary.IsFullyUsed = true
		return balance
	}

	ordered := make(map[string]int)
	for i := range orders {
		if !p.countsAgainst(&orders[i]) {
			continue
		}
		for _, line := range orders[i].Items {
			ordered[line.MedicineID] += line.Quantity
		}
	}

	fullyUsed := true
	for _, item := range p.Items {
		remaining := item.Quantity - ordered[item.MedicineID]
		if remaining < 0 {
			// Concurrent historical orders may have oversubscribed the
			// medicine; the balance never goes negative.
			remaining = 0
		}
		mb := MedicineBalance{
			MedicineID:         item.MedicineID,
			PrescribedQuantity: item.Quantity,
			OrderedQuantity:    ordered[item.MedicineID],
			RemainingQuantity:  remaining,
			IsUsedUp:           remaining <= 0,
		}
		if !mb.IsUsedUp {
			fullyUsed = false
		}
		balance.Medicines = append(balance.Medicines, mb)
		balance.Summary.TotalPrescribed += mb.PrescribedQuantity
		balance.Summary.TotalOrdered += mb.OrderedQuantity
		balance.Summary.RemainingTotal += mb.RemainingQuantity
	}
	balance.Summary.IsFullyUsed = fullyUsed
	return balance
}

// AccumulateRemaining sums remaining quantities per medicine across several
// prescription balances. A patient may hold multiple valid prescriptions for
// the same medicine; their remaining balances are additive.
func AccumulateRemaining(balances []*PrescriptionBalance) map[string]int {
	available := make(map[string]int)
	for _, b := range balances {
		for _, mb := range b.Medicines {
			available[mb.MedicineID] += mb.RemainingQuantity
		}
	}
	return available
}

// CheckOrderAdmission decides whether the requested items may be ordered.
// Prescription-gated items are checked against the accumulated available
// balance first, then every item's medicine must be available. Requested
// quantities are summed per medicine, so duplicate lines for the same
// medicine cannot each draw on the full balance. medicines must contain an
// entry for every requested medicine ID.
func CheckOrderAdmission(items []OrderItemRequest, medicines map[string]*Medicine, available map[string]int) error {
	requested := make(map[string]int)
	for _, item := range items {
		medicine, ok := medicines[item.MedicineID]
		if !ok {
			return ErrNotFound
		}
		if medicine.RequiresPrescription {
			requested[item.MedicineID] += item.Quantity
		}
	}
	for _, item := range items {
		medicine := medicines[item.MedicineID]
		if !medicine.RequiresPrescription {
			continue
		}
		if requested[item.MedicineID] > available[item.MedicineID] {
			return &InsufficientPrescriptionError{
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
				Available:    available[item.MedicineID],
				Requested:    requested[item.MedicineID],
			}
		}
	}

	for _, item := range items {
		medicine := medicines[item.MedicineID]
		if medicine.Status != MedicineStatusAvailable {
			return &MedicineUnavailableError{
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
			}
		}
	}
	return nil
}

// OrderTotal computes the total price of the requested items at current
// catalog prices.
func OrderTotal(items []OrderItemRequest, medicines map[string]*Medicine) float64 {
	var total float64
	for _, item := range items {
		if medicine, ok := medicines[item.MedicineID]; ok {
			total += medicine.Price * float64(item.Quantity)
		}
	}
	return total
}
