package handlers

import (
	"CarePoint/models"
	"CarePoint/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	service *services.TransactionService
}

func NewTransactionHandler(service *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id := c.Param("id")
	transaction, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transaction)
}

func (h *TransactionHandler) GetTransactionsByPatient(c *gin.Context) {
	patientID := c.Param("patient_id")
	transactions, err := h.service.GetAllByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transactions)
}

// UpdateTransactionStatus settles or reopens a payment record.
func (h *TransactionHandler) UpdateTransactionStatus(c *gin.Context) {
	id := c.Param("id")
	var data struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, data.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			c.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(404, gin.H{"error": "Transaction not found"})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(200)
}
