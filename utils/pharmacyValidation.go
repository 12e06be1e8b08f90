package utils

import (
	"CarePoint/models"
	"fmt"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateOrderRequest validates a new pharmacy order request using
// ozzo-validation. Failures are reported as models.ErrInvalidInput so the
// handler can map them to a 400.
func ValidateOrderRequest(req models.CreateOrderRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Items, validation.Required.Error("order must contain at least one item")),
	)
	if err == nil {
		for i, item := range req.Items {
			err = validation.ValidateStruct(&item,
				validation.Field(&item.MedicineID, validation.Required.Error("medicine reference is required")),
				validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
			)
			if err != nil {
				err = fmt.Errorf("item %d: %w", i, err)
				break
			}
		}
	}
	if err != nil {
		log.Printf("Order validation error: %v", err)
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}

// ValidatePrescriptionRequest validates a new prescription request.
func ValidatePrescriptionRequest(req models.CreatePrescriptionRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.AppointmentID, validation.Required),
		validation.Field(&req.Items, validation.Required.Error("prescription must contain at least one item")),
	)
	if err == nil && !req.ExpiryDate.After(time.Now()) {
		err = fmt.Errorf("expiry_date must be in the future")
	}
	if err == nil {
		for i, item := range req.Items {
			err = validation.ValidateStruct(&item,
				validation.Field(&item.MedicineID, validation.Required.Error("medicine reference is required")),
				validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
			)
			if err != nil {
				err = fmt.Errorf("item %d: %w", i, err)
				break
			}
		}
	}
	if err != nil {
		log.Printf("Prescription validation error: %v", err)
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}
