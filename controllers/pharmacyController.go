package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupPharmacyRoutes registers the medicine catalog, prescription, order and
// payment routes.
func SetupPharmacyRoutes(router *gin.Engine, medicineHandler *handlers.MedicineHandler, prescriptionHandler *handlers.PrescriptionHandler, orderHandler *handlers.OrderHandler, transactionHandler *handlers.TransactionHandler) {
	// Medicine catalog
	router.POST("/medicines", medicineHandler.CreateMedicine)
	router.GET("/medicines/:id", medicineHandler.GetMedicineByID)
	router.PUT("/medicines/:id", medicineHandler.UpdateMedicine)
	router.DELETE("/medicines/:id", medicineHandler.DeleteMedicine)
	router.GET("/medicines", medicineHandler.GetAllMedicines)

	// Prescriptions (staff flow, scoped by patient)
	router.POST("/patients/:patient_id/prescriptions", prescriptionHandler.CreatePrescription)
	router.GET("/patients/:patient_id/prescriptions", prescriptionHandler.GetPrescriptionsByPatient)
	router.GET("/patients/:patient_id/prescriptions/:prescription_id", prescriptionHandler.GetPrescriptionByID)
	router.GET("/patients/:patient_id/prescriptions/:prescription_id/balance", prescriptionHandler.GetPrescriptionBalance)

	// Orders and payment records (staff flow)
	router.POST("/patients/:patient_id/orders", orderHandler.CreateOrder)
	router.GET("/patients/:patient_id/orders", orderHandler.GetOrdersByPatient)
	router.GET("/patients/:patient_id/orders/:order_id", orderHandler.GetOrderByID)
	router.GET("/patients/:patient_id/transactions", transactionHandler.GetTransactionsByPatient)
	router.GET("/transactions/:id", transactionHandler.GetTransactionByID)
	router.PUT("/transactions/:id/status", transactionHandler.UpdateTransactionStatus)

	// Patient self-service: the token carries the acting patient ID
	orderGroup := router.Group("/orders").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Patient"),
	)
	{
		orderGroup.POST("", orderHandler.CreateMyOrder)
		orderGroup.GET("", orderHandler.GetMyOrders)
		orderGroup.GET("/:order_id", orderHandler.GetMyOrderByID)
	}

	selfGroup := router.Group("/my").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Patient"),
	)
	{
		selfGroup.GET("/prescriptions", prescriptionHandler.GetMyPrescriptions)
		selfGroup.GET("/prescriptions/:prescription_id/balance", prescriptionHandler.GetMyPrescriptionBalance)
	}
}
