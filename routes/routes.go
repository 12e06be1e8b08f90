package routes

import (
	"CarePoint/cache"
	"CarePoint/config"
	"CarePoint/controllers"
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/repositories"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	doctorRepo := repositories.NewDoctorRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	medicineRepo := repositories.NewMedicineRepository(cache)
	prescriptionRepo := repositories.NewPrescriptionRepository(cache)
	orderRepo := repositories.NewOrderRepository(cache)
	transactionRepo := repositories.NewTransactionRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	patientService := services.NewPatientService(patientRepo)
	userService := services.NewUserService(userRepo)

	doctorHandler := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo))
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(appointmentRepo))
	medicineHandler := handlers.NewMedicineHandler(services.NewMedicineService(medicineRepo))
	prescriptionHandler := handlers.NewPrescriptionHandler(services.NewPrescriptionService(prescriptionRepo))
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(orderRepo), patientService)
	transactionHandler := handlers.NewTransactionHandler(services.NewTransactionService(transactionRepo))
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupHospitalRoutes(router, doctorHandler, patientHandler, appointmentHandler)
	controllers.SetupPharmacyRoutes(router, medicineHandler, prescriptionHandler, orderHandler, transactionHandler)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
