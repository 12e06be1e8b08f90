package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	service *services.PrescriptionService
}

func NewPrescriptionHandler(service *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// CreatePrescription issues a prescription for a confirmed appointment of
// the patient in the route.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	patientID := c.Param("patient_id")
	var request models.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	prescription, err := h.service.Create(c.Request.Context(), patientID, &request)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			c.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(201, prescription)
}

// GetPrescriptionByID loads a single prescription scoped to the patient in
// the route. Prescriptions of other patients read as not-found.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	patientID := c.Param("patient_id")
	id := c.Param("prescription_id")

	prescription, err := h.service.GetOwned(c.Request.Context(), id, patientID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Prescription not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, prescription)
}

func (h *PrescriptionHandler) GetPrescriptionsByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	prescriptions, err := h.service.GetAllByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, prescriptions)
}

// GetPrescriptionBalance reports the remaining allowance of a prescription.
// The balance is derived on every request; nothing is cached.
func (h *PrescriptionHandler) GetPrescriptionBalance(c *gin.Context) {
	patientID := c.Param("patient_id")
	id := c.Param("prescription_id")

	balance, err := h.service.CalculateBalance(c.Request.Context(), id, patientID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Prescription not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, balance)
}

// GetMyPrescriptions lists the prescriptions of the patient bound to the
// access token.
func (h *PrescriptionHandler) GetMyPrescriptions(c *gin.Context) {
	patientID, err := middlewares.ExtractPatientIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Patient identity not found"})
		return
	}

	prescriptions, err := h.service.GetAllByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, prescriptions)
}

// GetMyPrescriptionBalance reports the balance of one of the caller's own
// prescriptions.
func (h *PrescriptionHandler) GetMyPrescriptionBalance(c *gin.Context) {
	patientID, err := middlewares.ExtractPatientIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Patient identity not found"})
		return
	}
	id := c.Param("prescription_id")

	balance, err := h.service.CalculateBalance(c.Request.Context(), id, patientID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Prescription not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, balance)
}
