package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service        *services.OrderService
	patientService *services.PatientService
}

func NewOrderHandler(service *services.OrderService, patientService *services.PatientService) *OrderHandler {
	return &OrderHandler{service: service, patientService: patientService}
}

// respondOrderError maps the order-admission error kinds onto HTTP statuses.
// Prescription shortfalls and unavailable medicines carry enough detail for
// the client to correct the request.
func respondOrderError(c *gin.Context, err error) {
	var insufficient *models.InsufficientPrescriptionError
	var unavailable *models.MedicineUnavailableError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(403, gin.H{
			"error":     insufficient.Error(),
			"medicine":  insufficient.MedicineID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.As(err, &unavailable):
		c.JSON(409, gin.H{
			"error":    unavailable.Error(),
			"medicine": unavailable.MedicineID,
		})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}

func (h *OrderHandler) createOrder(c *gin.Context, patientID string) {
	var request models.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), patientID, &request)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	// Receipt delivery must not hold up the response.
	go h.sendReceipt(patientID, order)

	c.JSON(201, gin.H{
		"order":   order,
		"message": "Order placed. Payment is due on collection.",
	})
}

func (h *OrderHandler) sendReceipt(patientID string, order *models.Order) {
	patient, err := h.patientService.GetByID(context.Background(), patientID)
	if err != nil || patient == nil || patient.Email == "" {
		return
	}
	if err := utils.SendOrderReceiptEmail(patient.Email, order); err != nil {
		log.Printf("Failed to send order receipt email: %v", err)
	}
}

// CreateOrder places an order on behalf of the patient in the route (staff
// flow).
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	h.createOrder(c, c.Param("patient_id"))
}

// CreateMyOrder places an order for the patient bound to the access token.
func (h *OrderHandler) CreateMyOrder(c *gin.Context) {
	patientID, err := middlewares.ExtractPatientIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Patient identity not found"})
		return
	}
	h.createOrder(c, patientID)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	patientID := c.Param("patient_id")
	id := c.Param("order_id")

	order, err := h.service.GetByID(c.Request.Context(), patientID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, order)
}

func (h *OrderHandler) GetOrdersByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	orders, err := h.service.GetAllByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, orders)
}

// GetMyOrderByID loads one of the caller's own orders.
func (h *OrderHandler) GetMyOrderByID(c *gin.Context) {
	patientID, err := middlewares.ExtractPatientIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Patient identity not found"})
		return
	}
	id := c.Param("order_id")

	order, err := h.service.GetByID(c.Request.Context(), patientID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, order)
}

// GetMyOrders lists the orders of the patient bound to the access token.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	patientID, err := middlewares.ExtractPatientIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Patient identity not found"})
		return
	}

	orders, err := h.service.GetAllByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, orders)
}
