package controllers

import (
	"CarePoint/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHospitalRoutes registers the doctor, patient and appointment routes.
func SetupHospitalRoutes(router *gin.Engine, doctorHandler *handlers.DoctorHandler, patientHandler *handlers.PatientHandler, appointmentHandler *handlers.AppointmentHandler) {
	// Define the routes directly on the router
	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/patients/:patient_id/appointments", appointmentHandler.CreateAppointment)
	router.GET("/patients/:patient_id/appointments", appointmentHandler.GetAppointmentsByPatient)
	router.GET("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	router.PUT("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	router.DELETE("/patients/:patient_id/appointments/:appointment_id", appointmentHandler.DeleteAppointment)
}
