package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the pharmacy order path. Handlers map each kind to
// its own HTTP status.
var (
	// ErrInvalidInput marks a malformed order or prescription request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an absent record. A prescription owned by a
	// different patient reads as not-found as well, so existence is never
	// leaked across patients.
	ErrNotFound = errors.New("record not found")
)

// InsufficientPrescriptionError is returned when a requested quantity of a
// prescription-gated medicine exceeds the patient's remaining balance across
// all valid prescriptions.
type InsufficientPrescriptionError struct {
	MedicineID   string
	MedicineName string
	Available    int
	Requested    int
}

func (e *InsufficientPrescriptionError) Error() string {
	return fmt.Sprintf("insufficient prescription balance for %s: available %d, requested %d",
		e.MedicineName, e.Available, e.Requested)
}

// MedicineUnavailableError is returned when an ordered medicine is not
// currently offered.
type MedicineUnavailableError struct {
	MedicineID   string
	MedicineName string
}

func (e *MedicineUnavailableError) Error() string {
	return fmt.Sprintf("medicine %s is currently unavailable", e.MedicineName)
}
