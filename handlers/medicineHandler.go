package handlers

import (
	"CarePoint/models"
	"CarePoint/services"

	"github.com/gin-gonic/gin"
)

type MedicineHandler struct {
	service *services.MedicineService
}

func NewMedicineHandler(service *services.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: service}
}

func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &medicine); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, medicine)
}

func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	id := c.Param("id")
	medicine, err := h.service.GetByID(c, id)
	if err != nil || medicine == nil {
		c.JSON(404, gin.H{"error": "Medicine not found"})
		return
	}
	c.JSON(200, medicine)
}

func (h *MedicineHandler) GetAllMedicines(c *gin.Context) {
	medicines, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, medicines)
}

func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	id := c.Param("id")
	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	medicine.ID = id
	if err := h.service.Update(c, &medicine); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, medicine)
}

func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Medicine deleted"})
}
